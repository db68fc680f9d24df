package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ma202004gh/jp-wage-dashboard/internal/exporter"
	"github.com/ma202004gh/jp-wage-dashboard/internal/pipeline"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export 导出派生表
// GET /api/export?table=geo|trend|age|industry&prefecture=&year=&metric=&geoYear=
func (h *Handler) Export(c *gin.Context) {
	sel, err := h.resolveSelection(c)
	if err != nil {
		badRequest(c, "invalid query: "+err.Error())
		return
	}

	opts := exporter.ExportOptions{
		Table:      c.Query("table"),
		Year:       sel.Year,
		Prefecture: sel.Prefecture,
		Metric:     sel.Metric,
	}
	if opts.Table == exporter.TableGeo {
		opts.Year = sel.GeoYear
	}
	if !validTable(opts.Table) {
		badRequest(c, fmt.Sprintf("unknown table: %q", opts.Table))
		return
	}

	f, err := h.exporter.Export(opts, h.exportProgress())
	if err != nil {
		c.JSON(exportErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		h.log.Error("写出 Excel 失败", "table", opts.Table, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("派生表已导出", "table", opts.Table, "bytes", buf.Len())
	c.Header("Content-Disposition", buildExportContentDisposition(exporter.FileName(opts)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// exportProgress 记录导出各阶段；部分结果的警告以 Warn 级别输出
func (h *Handler) exportProgress() exporter.ProgressFunc {
	return func(ev exporter.ProgressEvent) {
		if ev.Warning != "" && ev.Stage == exporter.StageDone {
			h.log.Warn("导出部分结果", "table", ev.Table, "rows", ev.Rows, "warning", ev.Warning)
			return
		}
		h.log.Debug("导出进度", "table", ev.Table, "stage", string(ev.Stage), "rows", ev.Rows)
	}
}

func validTable(name string) bool {
	for _, t := range exporter.Tables {
		if t == name {
			return true
		}
	}
	return false
}

func exportErrorStatus(err error) int {
	var (
		empty  *pipeline.EmptyResultError
		pref   *pipeline.UnknownPrefectureError
		metric *pipeline.UnknownMetricError
	)
	switch {
	case errors.As(err, &empty):
		return http.StatusNotFound
	case errors.As(err, &pref), errors.As(err, &metric):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// buildExportContentDisposition ASCII 回退名 + RFC 5987 编码的原始文件名
func buildExportContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", asciiFallback(filename), url.PathEscape(filename))
}

func asciiFallback(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}
