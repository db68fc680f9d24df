package model

// AllAges 年龄列中表示“全部年龄合计”的哨兵值
const AllAges = "年齢計"

// 源数据列名（与 RESAS 导出的 CSV 表头一致）
const (
	ColumnYear          = "集計年"
	ColumnPrefecture    = "都道府県名"
	ColumnCategory      = "産業大分類名"
	ColumnAge           = "年齢"
	ColumnWage          = "一人当たり賃金（万円）"
	ColumnScheduledWage = "所定内給与額（万円）"
	ColumnBonus         = "年間賞与その他特別給与額（万円）"
	ColumnLongitude     = "lon"
	ColumnLatitude      = "lat"

	// ColumnNationalWage 推移图中全国平均序列的名称
	ColumnNationalWage = "全国_" + ColumnWage
)

// NationalRow 全国·全产业按年龄段的工资（NationalByIndustry 一行）
type NationalRow struct {
	Year          int     `json:"year"`
	Age           string  `json:"age"`
	Wage          float64 `json:"wage"`
	ScheduledWage float64 `json:"scheduledWage"`
	Bonus         float64 `json:"bonus"`
}

// CategoryRow 全国·按产业大分类的工资（NationalByCategory 一行）
type CategoryRow struct {
	Year          int     `json:"year"`
	Category      string  `json:"category"`
	Age           string  `json:"age"`
	Wage          float64 `json:"wage"`
	ScheduledWage float64 `json:"scheduledWage"`
	Bonus         float64 `json:"bonus"`
}

// Metric 取出指定指标的值
func (r CategoryRow) Metric(m MetricKind) float64 {
	switch m {
	case MetricScheduledWage:
		return r.ScheduledWage
	case MetricBonus:
		return r.Bonus
	default:
		return r.Wage
	}
}

// PrefectureRow 都道府县·全产业按年龄段的工资（PrefectureByIndustry 一行）
type PrefectureRow struct {
	Year       int     `json:"year"`
	Prefecture string  `json:"prefecture"`
	Age        string  `json:"age"`
	Wage       float64 `json:"wage"`
}

// Coordinate 都道府县经纬度
type Coordinate struct {
	Prefecture string  `json:"prefecture"`
	Longitude  float64 `json:"lon"`
	Latitude   float64 `json:"lat"`
}

// GeoRow 热力图派生行
type GeoRow struct {
	Prefecture string  `json:"prefecture"`
	Longitude  float64 `json:"lon"`
	Latitude   float64 `json:"lat"`
	Wage       float64 `json:"wage"`
	Weight     float64 `json:"weight"` // 最小值0、最大值1归一化后的工资
}

// TrendRow 推移折线图派生行（每个集计年一行）
type TrendRow struct {
	Year           int     `json:"year"`
	NationalWage   float64 `json:"nationalWage"`
	PrefectureWage float64 `json:"prefectureWage"`
}

// AgeRow 气泡图派生行
type AgeRow struct {
	Year          int     `json:"year"`
	Age           string  `json:"age"`
	Wage          float64 `json:"wage"`
	Bonus         float64 `json:"bonus"`
	ScheduledWage float64 `json:"scheduledWage"`
}

// IndustryRow 横向条形图派生行
type IndustryRow struct {
	Category string  `json:"category"`
	Age      string  `json:"age"`
	Value    float64 `json:"value"`
}
