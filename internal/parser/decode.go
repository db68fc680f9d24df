package parser

import (
	"fmt"
	"strings"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

// SchemaError 表头缺少必需列
type SchemaError struct {
	Name    string
	Kind    TableKind
	Missing []Field
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s: 列不匹配 (%s), 缺少: %s", e.Name, e.Kind, strings.Join(names, ", "))
}

// rowReader 按映射读取单元格
type rowReader struct {
	name     string
	mappings map[Field]FieldMapping
}

func newRowReader(t *Table, kind TableKind) (*rowReader, error) {
	mappings := NewColumnMapper().Map(t.Headers)
	if missing := MissingFields(kind, mappings); len(missing) > 0 {
		return nil, &SchemaError{Name: t.Name, Kind: kind, Missing: missing}
	}
	return &rowReader{name: t.Name, mappings: mappings}, nil
}

func (r *rowReader) text(rec []string, f Field) string {
	idx := r.mappings[f].ColumnIndex
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func (r *rowReader) year(rec []string, line int) (int, error) {
	v, err := ParseYear(r.text(rec, FieldYear))
	if err != nil {
		return 0, fmt.Errorf("%s 第%d行: %w", r.name, line, err)
	}
	return v, nil
}

func (r *rowReader) number(rec []string, f Field, line int) (float64, error) {
	v, err := ParseNumber(r.text(rec, f))
	if err != nil {
		return 0, fmt.Errorf("%s 第%d行 %s: %w", r.name, line, f, err)
	}
	return v, nil
}

// lineNo 数据行在文件中的行号（表头为第1行）
func lineNo(i int) int { return i + 2 }

// DecodeNationalByIndustry 解析全国·全产业表
func DecodeNationalByIndustry(t *Table) ([]model.NationalRow, error) {
	r, err := newRowReader(t, TableNationalByIndustry)
	if err != nil {
		return nil, err
	}

	out := make([]model.NationalRow, 0, len(t.Rows))
	for i, rec := range t.Rows {
		line := lineNo(i)
		row := model.NationalRow{Age: r.text(rec, FieldAge)}
		if row.Year, err = r.year(rec, line); err != nil {
			return nil, err
		}
		if row.Wage, err = r.number(rec, FieldWage, line); err != nil {
			return nil, err
		}
		if row.ScheduledWage, err = r.number(rec, FieldScheduledWage, line); err != nil {
			return nil, err
		}
		if row.Bonus, err = r.number(rec, FieldBonus, line); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// DecodeNationalByCategory 解析全国·产业大分类表
func DecodeNationalByCategory(t *Table) ([]model.CategoryRow, error) {
	r, err := newRowReader(t, TableNationalByCategory)
	if err != nil {
		return nil, err
	}

	out := make([]model.CategoryRow, 0, len(t.Rows))
	for i, rec := range t.Rows {
		line := lineNo(i)
		row := model.CategoryRow{
			Category: r.text(rec, FieldCategory),
			Age:      r.text(rec, FieldAge),
		}
		if row.Year, err = r.year(rec, line); err != nil {
			return nil, err
		}
		if row.Wage, err = r.number(rec, FieldWage, line); err != nil {
			return nil, err
		}
		if row.ScheduledWage, err = r.number(rec, FieldScheduledWage, line); err != nil {
			return nil, err
		}
		if row.Bonus, err = r.number(rec, FieldBonus, line); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// DecodePrefectureByIndustry 解析都道府县·全产业表
func DecodePrefectureByIndustry(t *Table) ([]model.PrefectureRow, error) {
	r, err := newRowReader(t, TablePrefectureByIndustry)
	if err != nil {
		return nil, err
	}

	out := make([]model.PrefectureRow, 0, len(t.Rows))
	for i, rec := range t.Rows {
		line := lineNo(i)
		row := model.PrefectureRow{
			Prefecture: r.text(rec, FieldPrefecture),
			Age:        r.text(rec, FieldAge),
		}
		if row.Year, err = r.year(rec, line); err != nil {
			return nil, err
		}
		if row.Wage, err = r.number(rec, FieldWage, line); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// DecodeCoordinates 解析都道府县经纬度对照表
func DecodeCoordinates(t *Table) ([]model.Coordinate, error) {
	r, err := newRowReader(t, TableCoordinates)
	if err != nil {
		return nil, err
	}

	out := make([]model.Coordinate, 0, len(t.Rows))
	for i, rec := range t.Rows {
		line := lineNo(i)
		row := model.Coordinate{Prefecture: r.text(rec, FieldPrefecture)}
		if row.Longitude, err = r.number(rec, FieldLongitude, line); err != nil {
			return nil, err
		}
		if row.Latitude, err = r.number(rec, FieldLatitude, line); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
