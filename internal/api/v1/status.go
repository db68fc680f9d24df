package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
	"github.com/ma202004gh/jp-wage-dashboard/internal/presentation"
	"github.com/ma202004gh/jp-wage-dashboard/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Rows       datastore.Summary      `json:"rows"`       // 各源表行数
	Selection  presentation.Selection `json:"selection"`  // 当前选择
	Ingestions []store.IngestionLog   `json:"ingestions"` // 最近的加载记录
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	resp := StatusResponse{
		Rows:       h.data.Summary(),
		Selection:  h.persistedSelection(c),
		Ingestions: []store.IngestionLog{},
	}

	if h.state != nil {
		logs, err := h.state.ListIngestions(ctx, 20)
		if err != nil {
			h.log.Warn("读取加载记录失败", "error", err)
		} else {
			resp.Ingestions = logs
		}
	}

	c.JSON(http.StatusOK, resp)
}

// MetricOption 指标下拉框选项
type MetricOption struct {
	Key   model.MetricKind `json:"key"`
	Label string           `json:"label"`
}

// OptionsResponse 控件候选值
type OptionsResponse struct {
	Prefectures []string       `json:"prefectures"`
	Years       []int          `json:"years"`
	Metrics     []MetricOption `json:"metrics"`
	GeoYear     int            `json:"geoYear"`
}

// GetOptions 获取控件候选值
// GET /api/options
func (h *Handler) GetOptions(c *gin.Context) {
	metrics := make([]MetricOption, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		metrics = append(metrics, MetricOption{Key: m, Label: m.Label()})
	}

	resp := OptionsResponse{
		Prefectures: h.data.Prefectures(),
		Years:       h.data.CategoryYears(),
		Metrics:     metrics,
		GeoYear:     h.geoYear,
	}
	if resp.Prefectures == nil {
		resp.Prefectures = []string{}
	}
	if resp.Years == nil {
		resp.Years = []int{}
	}
	c.JSON(http.StatusOK, resp)
}
