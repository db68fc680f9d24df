package parser

// TableKind 源表类型
type TableKind string

const (
	TableNationalByIndustry   TableKind = "national_by_industry"
	TableNationalByCategory   TableKind = "national_by_category"
	TablePrefectureByIndustry TableKind = "prefecture_by_industry"
	TableCoordinates          TableKind = "prefecture_coordinates"
	TableUnknown              TableKind = "unknown"
)

// Field 逻辑字段
type Field string

const (
	FieldYear          Field = "year"
	FieldPrefecture    Field = "prefecture"
	FieldCategory      Field = "category"
	FieldAge           Field = "age"
	FieldWage          Field = "wage"
	FieldScheduledWage Field = "scheduled_wage"
	FieldBonus         Field = "bonus"
	FieldLongitude     Field = "longitude"
	FieldLatitude      Field = "latitude"
)

// requiredFields 每种源表必须具备的字段
var requiredFields = map[TableKind][]Field{
	TableNationalByIndustry:   {FieldYear, FieldAge, FieldWage, FieldScheduledWage, FieldBonus},
	TableNationalByCategory:   {FieldYear, FieldCategory, FieldAge, FieldWage, FieldScheduledWage, FieldBonus},
	TablePrefectureByIndustry: {FieldYear, FieldPrefecture, FieldAge, FieldWage},
	TableCoordinates:          {FieldPrefecture, FieldLongitude, FieldLatitude},
}

// Table 读入后的原始表（表头 + 文本单元格）
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// TableRecognitionResult 表类型识别结果
type TableRecognitionResult struct {
	Name       string    `json:"name"`
	Kind       TableKind `json:"kind"`
	Confidence float64   `json:"confidence"` // 置信度 0-1
}

// FieldMapping 字段映射结果
type FieldMapping struct {
	ColumnIndex int    `json:"columnIndex"` // 列索引
	ColumnName  string `json:"columnName"`  // 规范化后的列名
	Field       Field  `json:"field"`       // 逻辑字段
}
