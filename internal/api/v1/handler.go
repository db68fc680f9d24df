package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/exporter"
	"github.com/ma202004gh/jp-wage-dashboard/internal/logger"
	"github.com/ma202004gh/jp-wage-dashboard/internal/presentation"
	"github.com/ma202004gh/jp-wage-dashboard/internal/render"
	"github.com/ma202004gh/jp-wage-dashboard/internal/store"
)

// StateStore 界面选择与加载记录的持久化（由 *store.Store 实现）
type StateStore interface {
	LoadSelection(ctx context.Context, def presentation.Selection) (presentation.Selection, error)
	SaveSelection(ctx context.Context, sel presentation.Selection) error
	ListIngestions(ctx context.Context, limit int) ([]store.IngestionLog, error)
}

// Deps 处理器依赖
type Deps struct {
	Data     *datastore.DataStore
	Adapter  *presentation.Adapter
	Exporter *exporter.Exporter
	Renderer *render.Renderer
	State    StateStore // 可为 nil：不持久化选择
	GeoYear  int
	Logger   *logger.Logger
}

// Handler V1 API 处理器
type Handler struct {
	data     *datastore.DataStore
	adapter  *presentation.Adapter
	exporter *exporter.Exporter
	renderer *render.Renderer
	state    StateStore
	geoYear  int
	log      *logger.Logger
}

// NewHandler 创建 V1 API 处理器
func NewHandler(d Deps) *Handler {
	h := &Handler{
		data:     d.Data,
		adapter:  d.Adapter,
		exporter: d.Exporter,
		renderer: d.Renderer,
		state:    d.State,
		geoYear:  d.GeoYear,
		log:      d.Logger,
	}
	if h.log == nil {
		h.log = logger.Nop()
	}
	if h.renderer == nil {
		h.renderer = render.New(0, 0)
	}
	return h
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态与控件候选
	router.GET("/status", h.GetStatus)
	router.GET("/options", h.GetOptions)

	// 仪表盘与单图
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/charts/:name", h.GetChart)

	// 界面选择
	router.GET("/selection", h.GetSelection)
	router.POST("/selection", h.SaveSelection)

	// 派生表导出
	router.GET("/export", h.Export)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
