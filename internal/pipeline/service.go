package pipeline

import (
	"errors"
	"time"

	"github.com/ma202004gh/jp-wage-dashboard/internal/logger"
	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

// 聚合器名称（日志与指标标签）
const (
	OpGeo      = "geo"
	OpTrend    = "trend"
	OpAge      = "age"
	OpIndustry = "industry"
)

// Observer 聚合器运行观测（由 metrics 实现）
type Observer interface {
	ObserveRun(op string, d time.Duration, err error)
}

// Service 组合四个聚合器，可选缓存、观测与日志
//
// 缓存返回的切片在多次调用间共享，调用方不得修改。
type Service struct {
	geo      *GeoAggregator
	trend    *TrendAggregator
	age      *AgeDistributionAggregator
	industry *IndustryAggregator

	cache *resultCache
	obs   Observer
	log   *logger.Logger
}

// Option Service 选项
type Option func(*Service)

// WithCache 启用参数级缓存
func WithCache() Option {
	return func(s *Service) { s.cache = newResultCache() }
}

// WithObserver 设置观测器
func WithObserver(o Observer) Option {
	return func(s *Service) { s.obs = o }
}

// WithLogger 设置日志器
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService 创建聚合服务
func NewService(src Tables, axisMargin float64, opts ...Option) *Service {
	s := &Service{
		geo:      NewGeoAggregator(src),
		trend:    NewTrendAggregator(src),
		age:      NewAgeDistributionAggregator(src),
		industry: NewIndustryAggregator(src, axisMargin),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Geo 见 GeoAggregator.Snapshot
func (s *Service) Geo(year int) ([]model.GeoRow, error) {
	key := cacheKey{op: OpGeo, year: year}
	if e, ok := s.lookup(key); ok {
		return e.value.([]model.GeoRow), nil
	}

	start := time.Now()
	rows, err := s.geo.Snapshot(year)
	s.done(key, time.Since(start), err, cacheEntry{value: rows})
	return rows, err
}

// Trend 见 TrendAggregator.Series
func (s *Service) Trend(prefecture string) ([]model.TrendRow, error) {
	key := cacheKey{op: OpTrend, prefecture: prefecture}
	if e, ok := s.lookup(key); ok {
		return e.value.([]model.TrendRow), nil
	}

	start := time.Now()
	rows, err := s.trend.Series(prefecture)
	s.done(key, time.Since(start), err, cacheEntry{value: rows})
	return rows, err
}

// Age 见 AgeDistributionAggregator.AgeSeries
func (s *Service) Age() []model.AgeRow {
	key := cacheKey{op: OpAge}
	if e, ok := s.lookup(key); ok {
		return e.value.([]model.AgeRow)
	}

	start := time.Now()
	rows := s.age.AgeSeries()
	s.done(key, time.Since(start), nil, cacheEntry{value: rows})
	return rows
}

// Industry 见 IndustryAggregator.Snapshot
func (s *Service) Industry(year int, metric model.MetricKind) ([]model.IndustryRow, float64, error) {
	key := cacheKey{op: OpIndustry, year: year, metric: metric}
	if e, ok := s.lookup(key); ok {
		return e.value.([]model.IndustryRow), e.axisMax, nil
	}

	start := time.Now()
	rows, axisMax, err := s.industry.Snapshot(year, metric)
	s.done(key, time.Since(start), err, cacheEntry{value: rows, axisMax: axisMax})
	return rows, axisMax, err
}

func (s *Service) lookup(key cacheKey) (cacheEntry, bool) {
	if s.cache == nil {
		return cacheEntry{}, false
	}
	return s.cache.get(key)
}

// done 记录观测与日志；只缓存无错误的结果
func (s *Service) done(key cacheKey, d time.Duration, err error, e cacheEntry) {
	if s.obs != nil {
		s.obs.ObserveRun(key.op, d, err)
	}

	var integrity *IntegrityError
	switch {
	case err == nil:
		if s.cache != nil {
			s.cache.put(key, e)
		}
	case errors.As(err, &integrity):
		s.log.Warn("源表键不一致，返回部分结果", "op", key.op, "year", integrity.Year, "unmatched", integrity.Unmatched)
	default:
		s.log.Info("聚合无结果", "op", key.op, "error", err)
	}
}
