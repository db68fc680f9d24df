package pipeline

import (
	"sort"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

// TrendAggregator 推移图：全国平均 vs 所选都道府县（年龄计）
type TrendAggregator struct {
	src Tables
}

// NewTrendAggregator 创建推移聚合器
func NewTrendAggregator(src Tables) *TrendAggregator {
	return &TrendAggregator{src: src}
}

// Series 按集计年升序返回两条序列
//
// prefecture 不在经纬度对照表中时返回 *UnknownPrefectureError；
// 某年只有一侧有数据时该年被省略。
func (a *TrendAggregator) Series(prefecture string) ([]model.TrendRow, error) {
	if !a.src.HasPrefecture(prefecture) {
		return nil, &UnknownPrefectureError{Prefecture: prefecture}
	}

	national := make(map[int]float64)
	for _, r := range a.src.NationalByIndustry() {
		if r.Age != model.AllAges {
			continue
		}
		if _, ok := national[r.Year]; !ok {
			national[r.Year] = r.Wage
		}
	}

	seen := make(map[int]struct{})
	rows := make([]model.TrendRow, 0, len(national))
	for _, r := range a.src.PrefectureByIndustry() {
		if r.Age != model.AllAges || r.Prefecture != prefecture {
			continue
		}
		nw, ok := national[r.Year]
		if !ok {
			continue
		}
		if _, dup := seen[r.Year]; dup {
			continue
		}
		seen[r.Year] = struct{}{}
		rows = append(rows, model.TrendRow{
			Year:           r.Year,
			NationalWage:   nw,
			PrefectureWage: r.Wage,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows, nil
}
