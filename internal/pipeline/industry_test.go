package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

func industryStore() *datastore.DataStore {
	return datastore.New(nil, []model.CategoryRow{
		{Year: 2019, Category: "建設業", Age: model.AllAges, Wage: 560.5, ScheduledWage: 380.25, Bonus: 100},
		{Year: 2019, Category: "製造業", Age: model.AllAges, Wage: 520, ScheduledWage: 350, Bonus: 118.5},
		{Year: 2019, Category: "建設業", Age: "20-24歳", Wage: 300, ScheduledWage: 240, Bonus: 40},
		{Year: 2018, Category: "建設業", Age: model.AllAges, Wage: 900, ScheduledWage: 700, Bonus: 200},
	}, nil, nil)
}

func TestIndustrySnapshot_AxisMaxTracksMetric(t *testing.T) {
	t.Parallel()

	agg := NewIndustryAggregator(industryStore(), DefaultAxisMargin)
	cases := []struct {
		metric model.MetricKind
		max    float64
	}{
		{model.MetricWage, 560.5},
		{model.MetricScheduledWage, 380.25},
		{model.MetricBonus, 118.5},
	}

	for _, tc := range cases {
		rows, axisMax, err := agg.Snapshot(2019, tc.metric)
		if err != nil {
			t.Fatalf("%s: %v", tc.metric, err)
		}
		if len(rows) != 3 {
			t.Fatalf("%s: unexpected rows %+v", tc.metric, rows)
		}
		top := math.Inf(-1)
		for _, r := range rows {
			top = math.Max(top, r.Value)
		}
		if top != tc.max {
			t.Fatalf("%s: max want=%v got=%v", tc.metric, tc.max, top)
		}
		if axisMax < top || math.Abs(axisMax-top-50) > 1e-9 {
			t.Fatalf("%s: axisMax=%v max=%v", tc.metric, axisMax, top)
		}
	}
}

func TestIndustrySnapshot_NoRowsForYear(t *testing.T) {
	t.Parallel()

	_, _, err := NewIndustryAggregator(industryStore(), 0).Snapshot(2099, model.MetricWage)
	var empty *EmptyResultError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}
	if empty.Year != 2099 {
		t.Fatalf("unexpected year: %d", empty.Year)
	}
}

func TestIndustrySnapshot_UnknownMetric(t *testing.T) {
	t.Parallel()

	_, _, err := NewIndustryAggregator(industryStore(), 0).Snapshot(2019, model.MetricKind("overtime"))
	var unknown *UnknownMetricError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMetricError, got %v", err)
	}
}
