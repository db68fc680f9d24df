package model

import "fmt"

// MetricKind 可选的工资指标种类
type MetricKind string

const (
	MetricWage          MetricKind = "wage"
	MetricScheduledWage MetricKind = "scheduledWage"
	MetricBonus         MetricKind = "bonus"
)

// Metrics 下拉框中的显示顺序
var Metrics = []MetricKind{MetricWage, MetricScheduledWage, MetricBonus}

// Valid 是否为已定义的指标
func (m MetricKind) Valid() bool {
	switch m {
	case MetricWage, MetricScheduledWage, MetricBonus:
		return true
	}
	return false
}

// Label 界面显示用的列名
func (m MetricKind) Label() string {
	switch m {
	case MetricWage:
		return ColumnWage
	case MetricScheduledWage:
		return ColumnScheduledWage
	case MetricBonus:
		return ColumnBonus
	}
	return string(m)
}

// ParseMetric 根据 key 或列名解析指标
func ParseMetric(s string) (MetricKind, error) {
	for _, m := range Metrics {
		if s == string(m) || s == m.Label() {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric: %q", s)
}
