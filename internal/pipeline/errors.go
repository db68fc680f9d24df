package pipeline

import (
	"fmt"
	"strings"
)

// IntegrityError 应当一一对应的表之间出现未匹配的键；可恢复，结果仍可部分使用
type IntegrityError struct {
	Year      int
	Unmatched []string // 经纬度对照表中找不到的都道府县名
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%d年: %d 个都道府县缺少经纬度: %s", e.Year, len(e.Unmatched), strings.Join(e.Unmatched, ", "))
}

// EmptyResultError 参数看似合法但筛选结果为空
type EmptyResultError struct {
	Table string
	Year  int
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s 中没有 %d 年的数据", e.Table, e.Year)
}

// UnknownPrefectureError 都道府县名不在经纬度对照表中
type UnknownPrefectureError struct {
	Prefecture string
}

func (e *UnknownPrefectureError) Error() string {
	return fmt.Sprintf("未知的都道府县: %q", e.Prefecture)
}

// UnknownMetricError 指标不在可选范围内
type UnknownMetricError struct {
	Metric string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("未知的指标: %q", e.Metric)
}
