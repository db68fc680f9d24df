package presentation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
	"github.com/ma202004gh/jp-wage-dashboard/internal/pipeline"
)

// 图表名称
const (
	ChartHeatmap = "heatmap"
	ChartTrend   = "trend"
	ChartBubble  = "bubble"
	ChartBar     = "bar"
)

// Aggregations 适配器依赖的聚合结果（由 *pipeline.Service 实现）
type Aggregations interface {
	Geo(year int) ([]model.GeoRow, error)
	Trend(prefecture string) ([]model.TrendRow, error)
	Age() []model.AgeRow
	Industry(year int, metric model.MetricKind) ([]model.IndustryRow, float64, error)
}

// Config 图表展示配置
type Config struct {
	View             ViewState
	HeatmapOpacity   float64
	HeatmapThreshold float64
	BubbleRangeX     [2]float64
	BubbleRangeY     [2]float64
	BubbleSizeMax    float64
	BarWidth         int
	BarHeight        int
}

// DefaultConfig 默认展示配置（以东京附近为地图中心）
func DefaultConfig() Config {
	return Config{
		View:             ViewState{Longitude: 139.69, Latitude: 35.69, Zoom: 4, Pitch: 40.5},
		HeatmapOpacity:   0.4,
		HeatmapThreshold: 0.3,
		BubbleRangeX:     [2]float64{150, 700},
		BubbleRangeY:     [2]float64{0, 150},
		BubbleSizeMax:    38,
		BarWidth:         800,
		BarHeight:        500,
	}
}

// Adapter 把聚合结果映射为图表参数
type Adapter struct {
	cfg  Config
	aggs Aggregations
}

// NewAdapter 创建展示适配器
func NewAdapter(aggs Aggregations, cfg Config) *Adapter {
	return &Adapter{cfg: cfg, aggs: aggs}
}

// Heatmap 热力图参数
func (a *Adapter) Heatmap(year int, rows []model.GeoRow) *HeatmapSpec {
	points := make([]HeatmapPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, HeatmapPoint{
			Position:   [2]float64{r.Longitude, r.Latitude},
			Weight:     r.Weight,
			Prefecture: r.Prefecture,
			Wage:       r.Wage,
		})
	}
	return &HeatmapSpec{
		Title:     fmt.Sprintf("%d年:一人当たり平均賃金のヒートマップ", year),
		Layer:     "HeatmapLayer",
		Opacity:   a.cfg.HeatmapOpacity,
		Threshold: a.cfg.HeatmapThreshold,
		View:      a.cfg.View,
		Points:    points,
	}
}

// Line 折线图参数
func (a *Adapter) Line(prefecture string, rows []model.TrendRow) *LineSpec {
	x := make([]int, 0, len(rows))
	national := make([]float64, 0, len(rows))
	pref := make([]float64, 0, len(rows))
	for _, r := range rows {
		x = append(x, r.Year)
		national = append(national, r.NationalWage)
		pref = append(pref, r.PrefectureWage)
	}
	return &LineSpec{
		Title: "集計年別の一人当たり賃金（万円）の推移",
		Index: model.ColumnYear,
		X:     x,
		Series: []LineSeries{
			{Name: model.ColumnNationalWage, Values: national},
			{Name: prefecture + "_" + model.ColumnWage, Values: pref},
		},
	}
}

// Bubble 气泡图参数；动画帧按集计年升序
func (a *Adapter) Bubble(rows []model.AgeRow) *BubbleSpec {
	points := make([]BubblePoint, 0, len(rows))
	seen := make(map[int]struct{})
	frames := make([]int, 0)
	for _, r := range rows {
		points = append(points, BubblePoint{
			X:     r.Wage,
			Y:     r.Bonus,
			Size:  r.ScheduledWage,
			Color: r.Age,
			Frame: r.Year,
			Group: r.Age,
		})
		if _, ok := seen[r.Year]; !ok {
			seen[r.Year] = struct{}{}
			frames = append(frames, r.Year)
		}
	}
	sort.Ints(frames)

	return &BubbleSpec{
		Title:      "年齢階層別の全国一人当たり平均賃金（万円）",
		XField:     model.ColumnWage,
		YField:     model.ColumnBonus,
		SizeField:  model.ColumnScheduledWage,
		ColorField: model.ColumnAge,
		FrameField: model.ColumnYear,
		GroupField: model.ColumnAge,
		RangeX:     a.cfg.BubbleRangeX,
		RangeY:     a.cfg.BubbleRangeY,
		SizeMax:    a.cfg.BubbleSizeMax,
		Frames:     frames,
		Points:     points,
	}
}

// Bar 横向条形图参数；动画帧按年龄段首次出现顺序
func (a *Adapter) Bar(metric model.MetricKind, rows []model.IndustryRow, axisMax float64) *BarSpec {
	bars := make([]BarPoint, 0, len(rows))
	seen := make(map[string]struct{})
	frames := make([]string, 0)
	for _, r := range rows {
		bars = append(bars, BarPoint{
			X:     r.Value,
			Y:     r.Category,
			Color: r.Category,
			Frame: r.Age,
		})
		if _, ok := seen[r.Age]; !ok {
			seen[r.Age] = struct{}{}
			frames = append(frames, r.Age)
		}
	}

	return &BarSpec{
		Title:       "産業別の賃金推移",
		Metric:      metric,
		XField:      metric.Label(),
		YField:      model.ColumnCategory,
		ColorField:  model.ColumnCategory,
		FrameField:  model.ColumnAge,
		Orientation: "h",
		RangeX:      [2]float64{0, axisMax},
		Width:       a.cfg.BarWidth,
		Height:      a.cfg.BarHeight,
		Frames:      frames,
		Bars:        bars,
	}
}

// messageFor 把聚合错误转换为用户提示
func messageFor(chart string, err error) *ChartMessage {
	if err == nil {
		return nil
	}

	var (
		integrity *pipeline.IntegrityError
		empty     *pipeline.EmptyResultError
	)
	level := LevelError
	switch {
	case errors.As(err, &integrity):
		level = LevelWarning
	case errors.As(err, &empty):
		level = LevelInfo
	}
	return &ChartMessage{Chart: chart, Level: level, Text: err.Error()}
}
