package exporter

import (
	"errors"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
	"github.com/ma202004gh/jp-wage-dashboard/internal/pipeline"
)

// 可导出的派生表
const (
	TableGeo      = "geo"
	TableTrend    = "trend"
	TableAge      = "age"
	TableIndustry = "industry"
)

// Tables 可导出的派生表名称
var Tables = []string{TableGeo, TableTrend, TableAge, TableIndustry}

const warningSheet = "警告"

// Aggregations 导出所需的聚合结果（由 *pipeline.Service 实现）
type Aggregations interface {
	Geo(year int) ([]model.GeoRow, error)
	Trend(prefecture string) ([]model.TrendRow, error)
	Age() []model.AgeRow
	Industry(year int, metric model.MetricKind) ([]model.IndustryRow, float64, error)
}

// Exporter 派生表 Excel 导出器
type Exporter struct {
	aggs Aggregations
}

// NewExporter 创建导出器
func NewExporter(aggs Aggregations) *Exporter {
	return &Exporter{aggs: aggs}
}

// ExportOptions 导出选项；各表只使用自己需要的参数
type ExportOptions struct {
	Table      string
	Year       int
	Prefecture string
	Metric     model.MetricKind
}

// FileName 下载文件名
func FileName(opts ExportOptions) string {
	switch opts.Table {
	case TableGeo:
		return fmt.Sprintf("geo_%d.xlsx", opts.Year)
	case TableTrend:
		return fmt.Sprintf("trend_%s.xlsx", opts.Prefecture)
	case TableIndustry:
		return fmt.Sprintf("industry_%d_%s.xlsx", opts.Year, opts.Metric)
	default:
		return opts.Table + ".xlsx"
	}
}

// sheetData 一张工作表的内容
type sheetData struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// Export 计算派生表并写入新的工作簿
//
// 键不一致（IntegrityError）时仍导出部分结果，并在“警告”工作表中写明未匹配的键。
func (e *Exporter) Export(opts ExportOptions, progress ProgressFunc) (*excelize.File, error) {
	progress.emit(ProgressEvent{Table: opts.Table, Stage: StageAggregate})

	data, warning, err := e.collect(opts)
	if err != nil {
		return nil, err
	}
	progress.emit(ProgressEvent{Table: opts.Table, Stage: StageWrite, Rows: len(data.rows), Warning: warning})

	f := excelize.NewFile()
	if err := writeSheet(f, data); err != nil {
		_ = f.Close()
		return nil, err
	}
	if warning != "" {
		if err := writeWarning(f, warning); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	progress.emit(ProgressEvent{Table: opts.Table, Stage: StageDone, Rows: len(data.rows), Warning: warning})
	return f, nil
}

// collect 计算派生表；第二个返回值为可降级的警告
func (e *Exporter) collect(opts ExportOptions) (*sheetData, string, error) {
	switch opts.Table {
	case TableGeo:
		rows, err := e.aggs.Geo(opts.Year)
		var integrity *pipeline.IntegrityError
		if errors.As(err, &integrity) {
			return geoSheet(opts.Year, rows), integrity.Error(), nil
		}
		if err != nil {
			return nil, "", err
		}
		return geoSheet(opts.Year, rows), "", nil

	case TableTrend:
		rows, err := e.aggs.Trend(opts.Prefecture)
		if err != nil {
			return nil, "", err
		}
		return trendSheet(opts.Prefecture, rows), "", nil

	case TableAge:
		return ageSheet(e.aggs.Age()), "", nil

	case TableIndustry:
		rows, _, err := e.aggs.Industry(opts.Year, opts.Metric)
		if err != nil {
			return nil, "", err
		}
		return industrySheet(opts.Year, opts.Metric, rows), "", nil
	}
	return nil, "", fmt.Errorf("不支持导出的表: %q", opts.Table)
}

func geoSheet(year int, rows []model.GeoRow) *sheetData {
	d := &sheetData{
		name:    fmt.Sprintf("ヒートマップ_%d", year),
		headers: []string{model.ColumnPrefecture, model.ColumnLongitude, model.ColumnLatitude, model.ColumnWage, "weight"},
	}
	for _, r := range rows {
		d.rows = append(d.rows, []interface{}{r.Prefecture, r.Longitude, r.Latitude, r.Wage, roundHalfUp(r.Weight, 4)})
	}
	return d
}

func trendSheet(prefecture string, rows []model.TrendRow) *sheetData {
	d := &sheetData{
		name:    "推移_" + prefecture,
		headers: []string{model.ColumnYear, model.ColumnNationalWage, prefecture + "_" + model.ColumnWage},
	}
	for _, r := range rows {
		d.rows = append(d.rows, []interface{}{r.Year, r.NationalWage, r.PrefectureWage})
	}
	return d
}

func ageSheet(rows []model.AgeRow) *sheetData {
	d := &sheetData{
		name:    "年齢階層別",
		headers: []string{model.ColumnYear, model.ColumnAge, model.ColumnWage, model.ColumnScheduledWage, model.ColumnBonus},
	}
	for _, r := range rows {
		d.rows = append(d.rows, []interface{}{r.Year, r.Age, r.Wage, r.ScheduledWage, r.Bonus})
	}
	return d
}

func industrySheet(year int, metric model.MetricKind, rows []model.IndustryRow) *sheetData {
	d := &sheetData{
		name:    fmt.Sprintf("産業別_%d", year),
		headers: []string{model.ColumnCategory, model.ColumnAge, metric.Label()},
	}
	for _, r := range rows {
		d.rows = append(d.rows, []interface{}{r.Category, r.Age, r.Value})
	}
	return d
}

func writeSheet(f *excelize.File, d *sheetData) error {
	name := sheetName(d.name)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("重命名工作表失败: %w", err)
	}

	header := make([]interface{}, len(d.headers))
	for i, h := range d.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式失败: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(d.headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("设置表头样式失败: %w", err)
	}
	if err := f.SetColWidth(name, "A", lastCol, 22); err != nil {
		return fmt.Errorf("设置列宽失败: %w", err)
	}

	for i, row := range d.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("写入第%d行失败: %w", i+2, err)
		}
	}
	return nil
}

func writeWarning(f *excelize.File, warning string) error {
	if _, err := f.NewSheet(warningSheet); err != nil {
		return fmt.Errorf("创建警告工作表失败: %w", err)
	}
	return setCellValue(f, warningSheet, "A1", warning)
}

// sheetName 工作表名最长 31 个字符
func sheetName(name string) string {
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}

func setCellValue(f *excelize.File, sheet, cell string, value interface{}) error {
	return f.SetCellValue(sheet, cell, value)
}

func roundHalfUp(v float64, digits int) float64 {
	if digits < 0 {
		return v
	}
	scale := math.Pow10(digits)
	x := v * scale
	if x >= 0 {
		return math.Floor(x+0.5) / scale
	}
	return -math.Floor(-x+0.5) / scale
}
