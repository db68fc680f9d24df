package presentation

import "github.com/ma202004gh/jp-wage-dashboard/internal/model"

// Attribution 数据出处
var Attribution = []string{
	"出典：RESAS（地域経済分析システム）",
	"本結果は、RESAS（地域経済分析システム）を加工して作成",
}

// Title 仪表盘标题
const Title = "日本の賃金データのダッシュボード"

// Selection 界面控件的当前取值
type Selection struct {
	Prefecture string           `json:"prefecture"`
	Year       int              `json:"year"`
	Metric     model.MetricKind `json:"metric"`
	GeoYear    int              `json:"geoYear"`
	ShowTable  bool             `json:"showTable"`
}

// Dashboard 四张图的参数与提示
type Dashboard struct {
	Title       string         `json:"title"`
	Selection   Selection      `json:"selection"`
	Heatmap     *HeatmapSpec   `json:"heatmap,omitempty"`
	Trend       *LineSpec      `json:"trend,omitempty"`
	Bubble      *BubbleSpec    `json:"bubble,omitempty"`
	Bar         *BarSpec       `json:"bar,omitempty"`
	RawTable    []model.GeoRow `json:"rawTable,omitempty"`
	Messages    []ChartMessage `json:"messages"`
	Attribution []string       `json:"attribution"`
}

// HeatmapChart 计算热力图；IntegrityError 时仍返回部分结果
func (a *Adapter) HeatmapChart(year int) (*HeatmapSpec, []model.GeoRow, *ChartMessage) {
	rows, err := a.aggs.Geo(year)
	if rows == nil {
		return nil, nil, messageFor(ChartHeatmap, err)
	}
	return a.Heatmap(year, rows), rows, messageFor(ChartHeatmap, err)
}

// TrendChart 计算推移折线图
func (a *Adapter) TrendChart(prefecture string) (*LineSpec, *ChartMessage) {
	rows, err := a.aggs.Trend(prefecture)
	if err != nil {
		return nil, messageFor(ChartTrend, err)
	}
	return a.Line(prefecture, rows), nil
}

// BubbleChart 计算气泡图
func (a *Adapter) BubbleChart() *BubbleSpec {
	return a.Bubble(a.aggs.Age())
}

// BarChart 计算条形图
func (a *Adapter) BarChart(year int, metric model.MetricKind) (*BarSpec, *ChartMessage) {
	rows, axisMax, err := a.aggs.Industry(year, metric)
	if err != nil {
		return nil, messageFor(ChartBar, err)
	}
	return a.Bar(metric, rows, axisMax), nil
}

// Build 按当前选择重新计算全部图表
func (a *Adapter) Build(sel Selection) *Dashboard {
	d := &Dashboard{
		Title:       Title,
		Selection:   sel,
		Messages:    []ChartMessage{},
		Attribution: Attribution,
	}

	addMessage := func(m *ChartMessage) {
		if m != nil {
			d.Messages = append(d.Messages, *m)
		}
	}

	var geoRows []model.GeoRow
	var msg *ChartMessage
	d.Heatmap, geoRows, msg = a.HeatmapChart(sel.GeoYear)
	addMessage(msg)
	if sel.ShowTable {
		d.RawTable = geoRows
	}

	d.Trend, msg = a.TrendChart(sel.Prefecture)
	addMessage(msg)

	d.Bubble = a.BubbleChart()

	d.Bar, msg = a.BarChart(sel.Year, sel.Metric)
	addMessage(msg)

	return d
}
