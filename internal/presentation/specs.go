package presentation

import "github.com/ma202004gh/jp-wage-dashboard/internal/model"

// ViewState 地图初始视角
type ViewState struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
}

// HeatmapPoint 热力图点
type HeatmapPoint struct {
	Position   [2]float64 `json:"position"` // [lon, lat]
	Weight     float64    `json:"weight"`
	Prefecture string     `json:"prefecture"`
	Wage       float64    `json:"wage"`
}

// HeatmapSpec 3D 地图热力图层参数
type HeatmapSpec struct {
	Title     string         `json:"title"`
	Layer     string         `json:"layer"`
	Opacity   float64        `json:"opacity"`
	Threshold float64        `json:"threshold"`
	View      ViewState      `json:"initialViewState"`
	Points    []HeatmapPoint `json:"points"`
}

// LineSeries 折线序列
type LineSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// LineSpec 折线图参数：以集计年为索引的两条序列
type LineSpec struct {
	Title  string       `json:"title"`
	Index  string       `json:"index"`
	X      []int        `json:"x"`
	Series []LineSeries `json:"series"`
}

// BubblePoint 气泡
type BubblePoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Frame int     `json:"frame"`
	Group string  `json:"group"`
}

// BubbleSpec 动画气泡图参数
type BubbleSpec struct {
	Title      string        `json:"title"`
	XField     string        `json:"xField"`
	YField     string        `json:"yField"`
	SizeField  string        `json:"sizeField"`
	ColorField string        `json:"colorField"`
	FrameField string        `json:"animationFrame"`
	GroupField string        `json:"animationGroup"`
	RangeX     [2]float64    `json:"rangeX"`
	RangeY     [2]float64    `json:"rangeY"`
	SizeMax    float64       `json:"sizeMax"`
	Frames     []int         `json:"frames"`
	Points     []BubblePoint `json:"points"`
}

// BarPoint 条形
type BarPoint struct {
	X     float64 `json:"x"`
	Y     string  `json:"y"`
	Color string  `json:"color"`
	Frame string  `json:"frame"`
}

// BarSpec 动画横向条形图参数
type BarSpec struct {
	Title       string           `json:"title"`
	Metric      model.MetricKind `json:"metric"`
	XField      string           `json:"xField"`
	YField      string           `json:"yField"`
	ColorField  string           `json:"colorField"`
	FrameField  string           `json:"animationFrame"`
	Orientation string           `json:"orientation"`
	RangeX      [2]float64       `json:"rangeX"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Frames      []string         `json:"frames"`
	Bars        []BarPoint       `json:"bars"`
}

// 提示级别
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ChartMessage 展示给用户的图表提示
type ChartMessage struct {
	Chart string `json:"chart"`
	Level string `json:"level"`
	Text  string `json:"text"`
}
