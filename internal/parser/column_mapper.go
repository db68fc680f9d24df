package parser

import (
	"strings"
)

// ColumnMapper 列名 → 逻辑字段映射器
type ColumnMapper struct{}

// NewColumnMapper 创建列映射器
func NewColumnMapper() *ColumnMapper {
	return &ColumnMapper{}
}

// Map 映射表头，同一逻辑字段只取第一个匹配列
func (m *ColumnMapper) Map(columnNames []string) map[Field]FieldMapping {
	mappings := make(map[Field]FieldMapping)

	for idx, raw := range columnNames {
		col := NormalizeColumnName(raw)
		if col == "" {
			continue
		}

		field, ok := m.mapColumn(col)
		if !ok {
			continue
		}
		if _, exists := mappings[field]; exists {
			continue
		}
		mappings[field] = FieldMapping{
			ColumnIndex: idx,
			ColumnName:  col,
			Field:       field,
		}
	}

	return mappings
}

// mapColumn 映射单个列
func (m *ColumnMapper) mapColumn(col string) (Field, bool) {
	lower := strings.ToLower(col)

	switch {
	case col == "集計年" || col == "年" || col == "年度" || lower == "year":
		return FieldYear, true

	// 经纬度对照表中的 pref_name 统一为 都道府県名
	case col == "都道府県名" || col == "都道府県" || lower == "pref_name" || lower == "prefecture":
		return FieldPrefecture, true

	// 产业大分类：排除 “産業大分類コード”
	case strings.HasPrefix(col, "産業大分類") && !strings.Contains(col, "コード"):
		return FieldCategory, true

	case col == "年齢" || col == "年齢階級" || lower == "age":
		return FieldAge, true

	case strings.HasPrefix(col, "一人当たり賃金"):
		return FieldWage, true
	case strings.HasPrefix(col, "所定内給与額"):
		return FieldScheduledWage, true
	case strings.HasPrefix(col, "年間賞与"):
		return FieldBonus, true

	case lower == "lon" || lower == "lng" || lower == "longitude" || col == "経度":
		return FieldLongitude, true
	case lower == "lat" || lower == "latitude" || col == "緯度":
		return FieldLatitude, true
	}

	return "", false
}

// MissingFields 返回 kind 所需但未映射到的字段
func MissingFields(kind TableKind, mappings map[Field]FieldMapping) []Field {
	var missing []Field
	for _, f := range requiredFields[kind] {
		if _, ok := mappings[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}
