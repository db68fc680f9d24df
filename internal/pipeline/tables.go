package pipeline

import "github.com/ma202004gh/jp-wage-dashboard/internal/model"

// Tables 聚合器读取的只读源表（由 *datastore.DataStore 实现）
type Tables interface {
	NationalByIndustry() []model.NationalRow
	NationalByCategory() []model.CategoryRow
	PrefectureByIndustry() []model.PrefectureRow
	Coordinate(prefecture string) (model.Coordinate, bool)
	HasPrefecture(name string) bool
}

// 源表名称（用于错误信息）
const (
	tableNationalByCategory   = "NationalByCategory"
	tablePrefectureByIndustry = "PrefectureByIndustry"
)
