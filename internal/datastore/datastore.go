package datastore

import (
	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

// DataStore 启动时加载的四张源表，加载后只读
//
// 访问器返回的切片与 DataStore 共享底层数组，调用方不得修改。
type DataStore struct {
	national   []model.NationalRow
	category   []model.CategoryRow
	prefecture []model.PrefectureRow
	coords     []model.Coordinate

	coordIndex map[string]model.Coordinate
}

// New 由已解析的表构造 DataStore（拷贝输入）
func New(national []model.NationalRow, category []model.CategoryRow, prefecture []model.PrefectureRow, coords []model.Coordinate) *DataStore {
	ds := &DataStore{
		national:   append([]model.NationalRow(nil), national...),
		category:   append([]model.CategoryRow(nil), category...),
		prefecture: append([]model.PrefectureRow(nil), prefecture...),
		coords:     append([]model.Coordinate(nil), coords...),
		coordIndex: make(map[string]model.Coordinate, len(coords)),
	}
	for _, c := range ds.coords {
		if _, ok := ds.coordIndex[c.Prefecture]; !ok {
			ds.coordIndex[c.Prefecture] = c
		}
	}
	return ds
}

// NationalByIndustry 全国·全产业表
func (d *DataStore) NationalByIndustry() []model.NationalRow { return d.national }

// NationalByCategory 全国·产业大分类表
func (d *DataStore) NationalByCategory() []model.CategoryRow { return d.category }

// PrefectureByIndustry 都道府县·全产业表
func (d *DataStore) PrefectureByIndustry() []model.PrefectureRow { return d.prefecture }

// Coordinates 都道府县经纬度对照表
func (d *DataStore) Coordinates() []model.Coordinate { return d.coords }

// Coordinate 按都道府县名查经纬度
func (d *DataStore) Coordinate(prefecture string) (model.Coordinate, bool) {
	c, ok := d.coordIndex[prefecture]
	return c, ok
}

// HasPrefecture 是否属于经纬度对照表中的都道府县
func (d *DataStore) HasPrefecture(name string) bool {
	_, ok := d.coordIndex[name]
	return ok
}

// Prefectures 都道府县下拉框候选：PrefectureByIndustry 中出现的都道府县名（按首次出现顺序）
func (d *DataStore) Prefectures() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.prefecture {
		if r.Age != model.AllAges {
			continue
		}
		if _, ok := seen[r.Prefecture]; ok {
			continue
		}
		seen[r.Prefecture] = struct{}{}
		out = append(out, r.Prefecture)
	}
	return out
}

// CategoryYears 集计年下拉框候选：NationalByCategory 中出现的集计年（按首次出现顺序）
func (d *DataStore) CategoryYears() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range d.category {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	return out
}

// Summary 各源表行数
type Summary struct {
	NationalByIndustry   int `json:"nationalByIndustry"`
	NationalByCategory   int `json:"nationalByCategory"`
	PrefectureByIndustry int `json:"prefectureByIndustry"`
	Coordinates          int `json:"coordinates"`
}

// Summary 返回行数统计
func (d *DataStore) Summary() Summary {
	return Summary{
		NationalByIndustry:   len(d.national),
		NationalByCategory:   len(d.category),
		PrefectureByIndustry: len(d.prefecture),
		Coordinates:          len(d.coords),
	}
}
