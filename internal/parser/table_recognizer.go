package parser

import (
	"strings"
)

// TableRecognizer 源表类型识别器
type TableRecognizer struct {
	mapper *ColumnMapper
}

// NewTableRecognizer 创建识别器
func NewTableRecognizer() *TableRecognizer {
	return &TableRecognizer{mapper: NewColumnMapper()}
}

// Recognize 根据文件名与表头识别源表类型
func (r *TableRecognizer) Recognize(name string, columnNames []string) TableRecognitionResult {
	mappings := r.mapper.Map(columnNames)
	_, hasPref := mappings[FieldPrefecture]
	_, hasCategory := mappings[FieldCategory]
	_, hasLon := mappings[FieldLongitude]

	// 依次尝试各种类型：具备区分性字段的优先
	var candidates []TableKind
	switch {
	case hasLon:
		candidates = []TableKind{TableCoordinates}
	case hasCategory:
		candidates = []TableKind{TableNationalByCategory}
	case hasPref:
		candidates = []TableKind{TablePrefectureByIndustry}
	default:
		candidates = []TableKind{TableNationalByIndustry}
	}

	best := TableRecognitionResult{Name: name, Kind: TableUnknown}
	for _, kind := range candidates {
		confidence := r.score(kind, mappings) + nameBoost(kind, name)
		if confidence > 1 {
			confidence = 1
		}
		if confidence > best.Confidence {
			best.Kind = kind
			best.Confidence = confidence
		}
	}

	if best.Confidence < 0.5 {
		best.Kind = TableUnknown
	}
	return best
}

// score 必需字段的命中率
func (r *TableRecognizer) score(kind TableKind, mappings map[Field]FieldMapping) float64 {
	required := requiredFields[kind]
	if len(required) == 0 {
		return 0
	}
	matchCount := 0
	for _, f := range required {
		if _, ok := mappings[f]; ok {
			matchCount++
		}
	}
	return float64(matchCount) / float64(len(required))
}

// nameBoost 文件名辅助判定
func nameBoost(kind TableKind, name string) float64 {
	switch kind {
	case TableCoordinates:
		if ContainsAny(strings.ToLower(name), []string{"lat_lon", "latlon", "緯度"}) {
			return 0.2
		}
	case TableNationalByCategory:
		if strings.Contains(name, "大分類") {
			return 0.2
		}
	case TablePrefectureByIndustry:
		if strings.Contains(name, "都道府県") {
			return 0.2
		}
	case TableNationalByIndustry:
		if strings.Contains(name, "全国") && strings.Contains(name, "全産業") {
			return 0.2
		}
	}
	return 0
}
