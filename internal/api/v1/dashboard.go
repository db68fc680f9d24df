package v1

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ma202004gh/jp-wage-dashboard/internal/presentation"
	"github.com/ma202004gh/jp-wage-dashboard/internal/render"
)

// ChartResponse 单图响应
type ChartResponse struct {
	Chart   string                     `json:"chart"`
	Spec    any                        `json:"spec"`
	Message *presentation.ChartMessage `json:"message,omitempty"`
}

// GetDashboard 按选择计算全部图表
// GET /api/dashboard?prefecture=&year=&metric=&geoYear=&showTable=
func (h *Handler) GetDashboard(c *gin.Context) {
	sel, err := h.resolveSelection(c)
	if err != nil {
		badRequest(c, "invalid query: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.adapter.Build(sel))
}

// GetChart 单图参数；名称以 .png 结尾时返回渲染后的图片
// GET /api/charts/:name
func (h *Handler) GetChart(c *gin.Context) {
	name := c.Param("name")
	if base, ok := strings.CutSuffix(name, ".png"); ok {
		h.getChartPNG(c, base)
		return
	}

	sel, err := h.resolveSelection(c)
	if err != nil {
		badRequest(c, "invalid query: "+err.Error())
		return
	}

	resp := ChartResponse{Chart: name}
	switch name {
	case presentation.ChartHeatmap:
		spec, _, msg := h.adapter.HeatmapChart(sel.GeoYear)
		resp.Spec, resp.Message = spec, msg
	case presentation.ChartTrend:
		spec, msg := h.adapter.TrendChart(sel.Prefecture)
		resp.Spec, resp.Message = spec, msg
	case presentation.ChartBubble:
		resp.Spec = h.adapter.BubbleChart()
	case presentation.ChartBar:
		spec, msg := h.adapter.BarChart(sel.Year, sel.Metric)
		resp.Spec, resp.Message = spec, msg
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart: " + name})
		return
	}

	c.JSON(messageStatus(resp.Message), resp)
}

func (h *Handler) getChartPNG(c *gin.Context, name string) {
	sel, err := h.resolveSelection(c)
	if err != nil {
		badRequest(c, "invalid query: "+err.Error())
		return
	}

	var (
		buf bytes.Buffer
		msg *presentation.ChartMessage
	)
	switch name {
	case presentation.ChartHeatmap:
		var spec *presentation.HeatmapSpec
		spec, _, msg = h.adapter.HeatmapChart(sel.GeoYear)
		if spec != nil {
			err = h.renderer.Heatmap(&buf, spec)
		}
	case presentation.ChartTrend:
		var spec *presentation.LineSpec
		spec, msg = h.adapter.TrendChart(sel.Prefecture)
		if spec != nil {
			err = h.renderer.Line(&buf, spec)
		}
	case presentation.ChartBubble:
		frame := 0
		if v := c.Query("frame"); v != "" {
			if frame, err = strconv.Atoi(v); err != nil {
				badRequest(c, "invalid frame")
				return
			}
		}
		err = h.renderer.Bubble(&buf, h.adapter.BubbleChart(), frame)
	case presentation.ChartBar:
		var spec *presentation.BarSpec
		spec, msg = h.adapter.BarChart(sel.Year, sel.Metric)
		if spec != nil {
			err = h.renderer.Bar(&buf, spec, c.Query("frame"))
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart: " + name})
		return
	}

	if buf.Len() == 0 && err == nil && msg != nil {
		c.JSON(messageStatus(msg), gin.H{"error": msg.Text, "level": msg.Level})
		return
	}
	switch {
	case errors.Is(err, render.ErrUnknownFrame):
		badRequest(c, err.Error())
		return
	case errors.Is(err, render.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.log.Error("渲染图表失败", "chart", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// messageStatus 提示级别对应的 HTTP 状态码
func messageStatus(msg *presentation.ChartMessage) int {
	if msg == nil {
		return http.StatusOK
	}
	switch msg.Level {
	case presentation.LevelError:
		return http.StatusBadRequest
	case presentation.LevelInfo:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}
