package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadOptions 源文件读取选项
type ReadOptions struct {
	Encoding  string // 文本编码，如 shift_jis / utf-8（仅 CSV）
	Delimiter rune   // 分隔符，默认逗号（仅 CSV）
	Sheet     string // 工作表名，默认第一个（仅 xlsx）
}

// ReadFile 按扩展名读取 CSV 或 xlsx 源文件
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path, opts)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("打开文件失败: %w", err)
		}
		defer f.Close()

		t, err := ReadDelimited(f, opts)
		if err != nil {
			return nil, err
		}
		t.Name = filepath.Base(path)
		return t, nil
	}
}

// ReadDelimited 读取分隔文本，首行为表头
func ReadDelimited(r io.Reader, opts ReadOptions) (*Table, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())))
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析分隔文本失败: %w", err)
	}
	return newTable(records)
}

func readWorkbook(path string, opts ReadOptions) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("工作簿中没有工作表")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}

	t, err := newTable(rows)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New("缺少表头")
	}
	t := &Table{Headers: records[0]}
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("不支持的编码 %q: %w", name, err)
	}
	return enc, nil
}
