package pipeline

import (
	"sync"
	"testing"
	"time"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

type countingObserver struct {
	mu   sync.Mutex
	runs map[string]int
	errs int
}

func (o *countingObserver) ObserveRun(op string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.runs == nil {
		o.runs = make(map[string]int)
	}
	o.runs[op]++
	if err != nil {
		o.errs++
	}
}

func TestService_CachesSuccessfulResults(t *testing.T) {
	t.Parallel()

	obs := &countingObserver{}
	svc := NewService(industryStore(), DefaultAxisMargin, WithCache(), WithObserver(obs))

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Industry(2019, model.MetricBonus); err != nil {
			t.Fatalf("industry: %v", err)
		}
	}
	_, axisMax, _ := svc.Industry(2019, model.MetricBonus)
	if axisMax != 168.5 {
		t.Fatalf("cached axisMax want=168.5 got=%v", axisMax)
	}
	if obs.runs[OpIndustry] != 1 {
		t.Fatalf("expected a single aggregator run, got %d", obs.runs[OpIndustry])
	}

	// 参数不同视为不同缓存键
	if _, _, err := svc.Industry(2019, model.MetricWage); err != nil {
		t.Fatalf("industry: %v", err)
	}
	if obs.runs[OpIndustry] != 2 {
		t.Fatalf("expected second run for new metric, got %d", obs.runs[OpIndustry])
	}

	// 错误不缓存
	for i := 0; i < 2; i++ {
		_, _, _ = svc.Industry(2099, model.MetricWage)
	}
	if obs.errs != 2 {
		t.Fatalf("errors should not be cached, observed %d", obs.errs)
	}
	if svc.cache.Len() != 2 {
		t.Fatalf("unexpected cache size: %d", svc.cache.Len())
	}
}

func TestService_ConcurrentReads(t *testing.T) {
	t.Parallel()

	svc := NewService(trendStore(), DefaultAxisMargin, WithCache())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Trend("東京都"); err != nil {
				t.Errorf("trend: %v", err)
			}
			_ = svc.Age()
		}()
	}
	wg.Wait()
}
