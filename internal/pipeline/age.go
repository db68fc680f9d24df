package pipeline

import "github.com/ma202004gh/jp-wage-dashboard/internal/model"

// AgeDistributionAggregator 气泡图：全国各年龄段（不含年龄计）
type AgeDistributionAggregator struct {
	src Tables
}

// NewAgeDistributionAggregator 创建年龄分布聚合器
func NewAgeDistributionAggregator(src Tables) *AgeDistributionAggregator {
	return &AgeDistributionAggregator{src: src}
}

// AgeSeries 返回全部非年龄计行，空结果合法
func (a *AgeDistributionAggregator) AgeSeries() []model.AgeRow {
	rows := make([]model.AgeRow, 0)
	for _, r := range a.src.NationalByIndustry() {
		if r.Age == model.AllAges {
			continue
		}
		rows = append(rows, model.AgeRow{
			Year:          r.Year,
			Age:           r.Age,
			Wage:          r.Wage,
			Bonus:         r.Bonus,
			ScheduledWage: r.ScheduledWage,
		})
	}
	return rows
}
