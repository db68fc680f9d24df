package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	yearRe       = regexp.MustCompile(`^(\d{4})(年|年度)?$`)
)

// NormalizeColumnName 规范化列名，去除空格和特殊字符
func NormalizeColumnName(name string) string {
	// 去除 UTF-8 BOM 与首尾空格
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.TrimSpace(name)
	// 去除换行符和制表符
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\t", "")
	// 全角括号统一
	name = strings.ReplaceAll(name, "(", "（")
	name = strings.ReplaceAll(name, ")", "）")
	return whitespaceRe.ReplaceAllString(name, "")
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseYear 解析集计年
// 支持格式: "2019" / "2019年" / "2019年度"
func ParseYear(text string) (int, error) {
	text = strings.TrimSpace(text)
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("invalid year: %q", text)
	}
	return strconv.Atoi(m[1])
}

// ParseNumber 解析数值单元格（允许千分位逗号）
func ParseNumber(text string) (float64, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "" {
		return 0, fmt.Errorf("empty number")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %q", text)
	}
	return v, nil
}
