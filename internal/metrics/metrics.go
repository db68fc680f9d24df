// Package metrics Prometheus 指标：聚合器运行、源表行数与 HTTP 请求
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/parser"
	"github.com/ma202004gh/jp-wage-dashboard/internal/pipeline"
)

const namespace = "wagedash"

// 聚合结果状态标签
const (
	StatusOK        = "ok"
	StatusIntegrity = "integrity"
	StatusEmpty     = "empty"
	StatusError     = "error"
)

// Metrics 全部指标及其注册表
type Metrics struct {
	registry *prometheus.Registry

	AggregationRuns     *prometheus.CounterVec
	AggregationDuration *prometheus.HistogramVec
	LoadedRows          *prometheus.GaugeVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// New 创建并注册指标（独立注册表，测试间互不干扰）
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		AggregationRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "aggregation",
				Name:      "runs_total",
				Help:      "Total number of aggregator runs",
			},
			[]string{"op", "status"},
		),

		AggregationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "aggregation",
				Name:      "duration_seconds",
				Help:      "Aggregator run duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),

		LoadedRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "datastore",
				Name:      "rows",
				Help:      "Rows loaded per source table",
			},
			[]string{"table"},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "code"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	m.registry.MustRegister(
		m.AggregationRuns,
		m.AggregationDuration,
		m.LoadedRows,
		m.HTTPRequests,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry 底层注册表
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun 实现 pipeline.Observer
func (m *Metrics) ObserveRun(op string, d time.Duration, err error) {
	m.AggregationRuns.WithLabelValues(op, statusOf(err)).Inc()
	m.AggregationDuration.WithLabelValues(op).Observe(d.Seconds())
}

// SetLoadedRows 记录各源表行数
func (m *Metrics) SetLoadedRows(s datastore.Summary) {
	m.LoadedRows.WithLabelValues(string(parser.TableNationalByIndustry)).Set(float64(s.NationalByIndustry))
	m.LoadedRows.WithLabelValues(string(parser.TableNationalByCategory)).Set(float64(s.NationalByCategory))
	m.LoadedRows.WithLabelValues(string(parser.TablePrefectureByIndustry)).Set(float64(s.PrefectureByIndustry))
	m.LoadedRows.WithLabelValues(string(parser.TableCoordinates)).Set(float64(s.Coordinates))
}

// ObserveRequest 记录一次 HTTP 请求
func (m *Metrics) ObserveRequest(method, route string, code int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

func statusOf(err error) string {
	var (
		integrity *pipeline.IntegrityError
		empty     *pipeline.EmptyResultError
	)
	switch {
	case err == nil:
		return StatusOK
	case errors.As(err, &integrity):
		return StatusIntegrity
	case errors.As(err, &empty):
		return StatusEmpty
	default:
		return StatusError
	}
}
