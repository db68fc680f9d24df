package pipeline

import "github.com/ma202004gh/jp-wage-dashboard/internal/model"

// GeoAggregator 热力图：指定年份各都道府县的年龄计工资 + 经纬度 + 归一化权重
type GeoAggregator struct {
	src Tables
}

// NewGeoAggregator 创建热力图聚合器
func NewGeoAggregator(src Tables) *GeoAggregator {
	return &GeoAggregator{src: src}
}

// Snapshot 计算 year 年的都道府县快照
//
// 没有匹配行时返回 *EmptyResultError。存在找不到经纬度的都道府县时，
// 丢弃这些行并同时返回剩余结果与 *IntegrityError。
func (g *GeoAggregator) Snapshot(year int) ([]model.GeoRow, error) {
	var (
		rows      []model.GeoRow
		unmatched []string
		matched   int
	)

	for _, r := range g.src.PrefectureByIndustry() {
		if r.Age != model.AllAges || r.Year != year {
			continue
		}
		matched++

		c, ok := g.src.Coordinate(r.Prefecture)
		if !ok {
			unmatched = append(unmatched, r.Prefecture)
			continue
		}
		rows = append(rows, model.GeoRow{
			Prefecture: r.Prefecture,
			Longitude:  c.Longitude,
			Latitude:   c.Latitude,
			Wage:       r.Wage,
		})
	}

	if matched == 0 {
		return nil, &EmptyResultError{Table: tablePrefectureByIndustry, Year: year}
	}

	normalizeWeights(rows)

	if len(unmatched) > 0 {
		return rows, &IntegrityError{Year: year, Unmatched: unmatched}
	}
	return rows, nil
}

// normalizeWeights 最小值0、最大值1归一化；全部相同时权重均为0
func normalizeWeights(rows []model.GeoRow) {
	if len(rows) == 0 {
		return
	}

	lo, hi := rows[0].Wage, rows[0].Wage
	for _, r := range rows[1:] {
		if r.Wage < lo {
			lo = r.Wage
		}
		if r.Wage > hi {
			hi = r.Wage
		}
	}

	span := hi - lo
	for i := range rows {
		if span == 0 {
			rows[i].Weight = 0
			continue
		}
		rows[i].Weight = (rows[i].Wage - lo) / span
	}
}
