package pipeline

import "github.com/ma202004gh/jp-wage-dashboard/internal/model"

// DefaultAxisMargin 条形图横轴上限相对指标最大值的余量（万円）
const DefaultAxisMargin = 50

// IndustryAggregator 条形图：指定年份各产业大分类的所选指标
type IndustryAggregator struct {
	src    Tables
	margin float64
}

// NewIndustryAggregator 创建产业聚合器；margin <= 0 时使用 DefaultAxisMargin
func NewIndustryAggregator(src Tables, margin float64) *IndustryAggregator {
	if margin <= 0 {
		margin = DefaultAxisMargin
	}
	return &IndustryAggregator{src: src, margin: margin}
}

// Snapshot 返回 year 年的产业行与横轴上限（指标最大值 + 余量）
func (a *IndustryAggregator) Snapshot(year int, metric model.MetricKind) ([]model.IndustryRow, float64, error) {
	if !metric.Valid() {
		return nil, 0, &UnknownMetricError{Metric: string(metric)}
	}

	var (
		rows []model.IndustryRow
		top  float64
	)
	for _, r := range a.src.NationalByCategory() {
		if r.Year != year {
			continue
		}
		v := r.Metric(metric)
		if len(rows) == 0 || v > top {
			top = v
		}
		rows = append(rows, model.IndustryRow{
			Category: r.Category,
			Age:      r.Age,
			Value:    v,
		})
	}

	if len(rows) == 0 {
		return nil, 0, &EmptyResultError{Table: tableNationalByCategory, Year: year}
	}
	return rows, top + a.margin, nil
}
