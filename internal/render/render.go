// Package render 把图表参数绘制为 PNG 静态图
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ma202004gh/jp-wage-dashboard/internal/presentation"
)

var (
	// ErrNoData 图表没有可绘制的数据
	ErrNoData = errors.New("没有可绘制的数据")
	// ErrUnknownFrame 动画帧不存在
	ErrUnknownFrame = errors.New("动画帧不存在")
)

// 默认画布尺寸
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// Renderer PNG 渲染器
type Renderer struct {
	width    vg.Length
	height   vg.Length
	typeface font.Typeface // 为空时使用 gonum 默认字体
}

// New 创建渲染器；尺寸 <= 0 时使用默认值
func New(width, height vg.Length) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{width: width, height: height}
}

// FromPixels 按 96dpi 把像素换算为画布长度
func FromPixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}

// Heatmap 以经纬度散点近似地图热力图，颜色与半径随权重变化
func (r *Renderer) Heatmap(w io.Writer, spec *presentation.HeatmapSpec) error {
	if spec == nil || len(spec.Points) == 0 {
		return ErrNoData
	}

	p := r.newPlot(spec.Title, "経度", "緯度")
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(0)
	cmap.SetMax(1)

	xys := make(plotter.XYs, len(spec.Points))
	labels := make([]string, len(spec.Points))
	for i, pt := range spec.Points {
		xys[i].X = pt.Position[0]
		xys[i].Y = pt.Position[1]
		labels[i] = pt.Prefecture
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("创建散点失败: %w", err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		weight := spec.Points[i].Weight
		c, err := cmap.At(weight)
		if err != nil {
			c = plotutil.Color(0)
		}
		return draw.GlyphStyle{
			Color:  c,
			Radius: vg.Points(4 + 10*weight),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(plotter.NewGrid(), sc)

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("创建标签失败: %w", err)
	}
	r.applyLabelFont(lbl)
	p.Add(lbl)

	return r.encode(w, p)
}

// Line 折线图，每条序列一种颜色
func (r *Renderer) Line(w io.Writer, spec *presentation.LineSpec) error {
	if spec == nil || len(spec.X) == 0 {
		return ErrNoData
	}

	p := r.newPlot(spec.Title, spec.Index, "万円")
	for i, s := range spec.Series {
		xys := make(plotter.XYs, len(spec.X))
		for j, year := range spec.X {
			xys[j].X = float64(year)
			if j < len(s.Values) {
				xys[j].Y = s.Values[j]
			}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("创建折线 %s 失败: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}
	p.Add(plotter.NewGrid())
	p.X.Tick.Marker = yearTicks(spec.X)
	p.Legend.Top = true

	return r.encode(w, p)
}

// Bubble 气泡图的单个动画帧；frame 为 0 时取最后一帧
func (r *Renderer) Bubble(w io.Writer, spec *presentation.BubbleSpec, frame int) error {
	if spec == nil || len(spec.Frames) == 0 {
		return ErrNoData
	}
	if frame == 0 {
		frame = spec.Frames[len(spec.Frames)-1]
	}
	if !containsInt(spec.Frames, frame) {
		return fmt.Errorf("%w: %d", ErrUnknownFrame, frame)
	}

	p := r.newPlot(fmt.Sprintf("%s %d", spec.Title, frame), spec.XField, spec.YField)
	p.X.Min, p.X.Max = spec.RangeX[0], spec.RangeX[1]
	p.Y.Min, p.Y.Max = spec.RangeY[0], spec.RangeY[1]
	p.Add(plotter.NewGrid())

	maxSize := 0.0
	for _, pt := range spec.Points {
		if pt.Size > maxSize {
			maxSize = pt.Size
		}
	}

	i := 0
	for _, pt := range spec.Points {
		if pt.Frame != frame {
			continue
		}
		sc, err := plotter.NewScatter(plotter.XYs{{X: pt.X, Y: pt.Y}})
		if err != nil {
			return fmt.Errorf("创建气泡失败: %w", err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = bubbleRadius(pt.Size, maxSize, spec.SizeMax)
		p.Add(sc)
		p.Legend.Add(pt.Group, sc)
		i++
	}
	p.Legend.Top = true

	return r.encode(w, p)
}

// Bar 横向条形图的单个动画帧；frame 为空时取第一帧
func (r *Renderer) Bar(w io.Writer, spec *presentation.BarSpec, frame string) error {
	if spec == nil || len(spec.Frames) == 0 {
		return ErrNoData
	}
	if frame == "" {
		frame = spec.Frames[0]
	}
	if !containsString(spec.Frames, frame) {
		return fmt.Errorf("%w: %s", ErrUnknownFrame, frame)
	}

	colors := categoryColors(spec.Bars)
	p := r.newPlot(fmt.Sprintf("%s %s", spec.Title, frame), spec.XField, "")

	// 每个产业一根条形，颜色按产业固定，切换帧时不变
	var names []string
	for _, b := range spec.Bars {
		if b.Frame != frame {
			continue
		}
		bar, err := plotter.NewBarChart(plotter.Values{b.X}, vg.Points(14))
		if err != nil {
			return fmt.Errorf("创建条形图失败: %w", err)
		}
		bar.Horizontal = true
		bar.XMin = float64(len(names))
		bar.Color = colors[b.Color]
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
		names = append(names, b.Y)
	}
	p.NominalY(names...)
	p.X.Min, p.X.Max = spec.RangeX[0], spec.RangeX[1]

	return r.encode(w, p)
}

func (r *Renderer) encode(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("生成 PNG 失败: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("写出 PNG 失败: %w", err)
	}
	return nil
}

func (r *Renderer) newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	r.applyFont(p)
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

// categoryColors 按颜色键首次出现顺序分配色相
func categoryColors(bars []presentation.BarPoint) map[string]color.Color {
	var keys []string
	seen := make(map[string]struct{})
	for _, b := range bars {
		if _, ok := seen[b.Color]; ok {
			continue
		}
		seen[b.Color] = struct{}{}
		keys = append(keys, b.Color)
	}

	n := len(keys)
	if n < 2 {
		n = 2
	}
	pal := palette.Rainbow(n, palette.Red, palette.Magenta, 0.6, 0.85, 1).Colors()
	out := make(map[string]color.Color, len(keys))
	for i, k := range keys {
		out[k] = pal[i]
	}
	return out
}

// bubbleRadius 按最大气泡尺寸线性缩放
func bubbleRadius(size, maxSize, sizeMax float64) vg.Length {
	if maxSize <= 0 || sizeMax <= 0 {
		return vg.Points(4)
	}
	return vg.Points(2 + sizeMax/2*size/maxSize)
}

// yearTicks 每个集计年一个刻度
func yearTicks(years []int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(years))
	for i, y := range years {
		ticks[i] = plot.Tick{Value: float64(y), Label: strconv.Itoa(y)}
	}
	return ticks
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
