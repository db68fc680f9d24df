package render

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
)

// ErrNoJapaneseFont 候选路径中没有包含日文字形的字体
var ErrNoJapaneseFont = errors.New("未找到包含日文字形的字体")

// japaneseSample 判断字体是否可用的样本字符（产业名、都道府县名、集计年）
const japaneseSample = "建都年齢賃金"

// typefacePrefix 注册到 gonum 字体缓存时的字体名前缀
const typefacePrefix = "wagedash-"

// DefaultFontPaths 常见系统中的日文字体位置
var DefaultFontPaths = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/opentype/ipaexfont-gothic/ipaexg.ttf",
	"/usr/share/fonts/truetype/fonts-japanese-gothic.ttf",
	"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	`C:\Windows\Fonts\YuGothM.ttc`,
	`C:\Windows\Fonts\msgothic.ttc`,
}

// LoadFont 读取 TTF/OTF/TTC；字体集合取第一个覆盖日文的字体
func LoadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件失败: %w", err)
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", path, err)
	}
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			return nil, fmt.Errorf("解析字体 %s 第%d个字体失败: %w", path, i, err)
		}
		if HasGlyphs(f, japaneseSample) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNoJapaneseFont)
}

// FindFont 依次尝试 paths，返回第一个可用字体及其路径
func FindFont(paths []string) (*opentype.Font, string, error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		f, err := LoadFont(p)
		if err != nil {
			continue
		}
		return f, p, nil
	}
	return nil, "", ErrNoJapaneseFont
}

// HasGlyphs 字体是否包含 s 中的全部字符
func HasGlyphs(f *opentype.Font, s string) bool {
	if f == nil {
		return false
	}
	var buf sfnt.Buffer
	for _, r := range s {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			return false
		}
	}
	return true
}

// UseFont 之后绘制的所有文字改用 f
func (r *Renderer) UseFont(f *opentype.Font) {
	name := typefacePrefix + "jp"
	if full, err := f.Name(nil, sfnt.NameIDFull); err == nil && full != "" {
		name = typefacePrefix + full
	}
	typeface := font.Typeface(name)
	font.DefaultCache.Add(font.Collection{{
		Font: font.Font{Typeface: typeface},
		Face: f,
	}})
	r.typeface = typeface
}

// Face 当前用于绘制文字的字体
func (r *Renderer) Face() font.Face {
	return font.DefaultCache.Lookup(r.textFont(plot.DefaultFont), plotter.DefaultFontSize)
}

// CoversText 当前字体能否显示 s
func (r *Renderer) CoversText(s string) bool {
	return HasGlyphs(r.Face().Face, s)
}

func (r *Renderer) textFont(f font.Font) font.Font {
	if r.typeface == "" {
		return f
	}
	f.Typeface = r.typeface
	f.Variant = ""
	return f
}

func (r *Renderer) setStyle(s *text.Style) {
	s.Font = r.textFont(s.Font)
}

// applyFont 标题、坐标轴、刻度与图例统一使用渲染器字体
func (r *Renderer) applyFont(p *plot.Plot) {
	if r.typeface == "" {
		return
	}
	r.setStyle(&p.Title.TextStyle)
	r.setStyle(&p.X.Label.TextStyle)
	r.setStyle(&p.Y.Label.TextStyle)
	r.setStyle(&p.X.Tick.Label)
	r.setStyle(&p.Y.Tick.Label)
	r.setStyle(&p.Legend.TextStyle)
}

func (r *Renderer) applyLabelFont(l *plotter.Labels) {
	if r.typeface == "" {
		return
	}
	for i := range l.TextStyle {
		r.setStyle(&l.TextStyle[i])
	}
}
