package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
	"github.com/ma202004gh/jp-wage-dashboard/internal/presentation"
)

// defaultSelection 各下拉框的第一个候选值
func (h *Handler) defaultSelection() presentation.Selection {
	sel := presentation.Selection{Metric: model.MetricWage, GeoYear: h.geoYear}
	if prefs := h.data.Prefectures(); len(prefs) > 0 {
		sel.Prefecture = prefs[0]
	}
	if years := h.data.CategoryYears(); len(years) > 0 {
		sel.Year = years[0]
	}
	return sel
}

// persistedSelection 上次保存的选择；读取失败时退回默认值
func (h *Handler) persistedSelection(c *gin.Context) presentation.Selection {
	def := h.defaultSelection()
	if h.state == nil {
		return def
	}
	sel, err := h.state.LoadSelection(c.Request.Context(), def)
	if err != nil {
		h.log.Warn("读取界面选择失败", "error", err)
		return def
	}
	return sel
}

// resolveSelection 查询参数优先，其次为已保存的选择
func (h *Handler) resolveSelection(c *gin.Context) (presentation.Selection, error) {
	sel := h.persistedSelection(c)

	if v, ok := c.GetQuery("prefecture"); ok && v != "" {
		sel.Prefecture = v
	}
	if v, ok := c.GetQuery("year"); ok && v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return sel, err
		}
		sel.Year = year
	}
	if v, ok := c.GetQuery("geoYear"); ok && v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return sel, err
		}
		sel.GeoYear = year
	}
	if v, ok := c.GetQuery("metric"); ok && v != "" {
		sel.Metric = parseMetric(v)
	}
	if v, ok := c.GetQuery("showTable"); ok && v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return sel, err
		}
		sel.ShowTable = show
	}
	return sel, nil
}

// parseMetric 接受 key 或列名；无法识别时原样保留，由聚合器报告 UnknownMetricError
func parseMetric(v string) model.MetricKind {
	if m, err := model.ParseMetric(v); err == nil {
		return m
	}
	return model.MetricKind(v)
}

// GetSelection 获取当前选择
// GET /api/selection
func (h *Handler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, h.persistedSelection(c))
}

// SaveSelection 保存当前选择
// POST /api/selection
func (h *Handler) SaveSelection(c *gin.Context) {
	sel := h.persistedSelection(c)
	if err := c.ShouldBindJSON(&sel); err != nil {
		badRequest(c, "invalid json")
		return
	}
	m, err := model.ParseMetric(string(sel.Metric))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	sel.Metric = m
	if sel.Prefecture != "" && !h.data.HasPrefecture(sel.Prefecture) {
		badRequest(c, "unknown prefecture: "+sel.Prefecture)
		return
	}

	if h.state != nil {
		if err := h.state.SaveSelection(c.Request.Context(), sel); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	h.log.Info("界面选择已保存", "prefecture", sel.Prefecture, "year", sel.Year, "metric", sel.Metric)
	c.JSON(http.StatusOK, sel)
}
