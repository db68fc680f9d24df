package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/ma202004gh/jp-wage-dashboard/internal/api/v1"
	"github.com/ma202004gh/jp-wage-dashboard/internal/config"
	"github.com/ma202004gh/jp-wage-dashboard/internal/logger"
	"github.com/ma202004gh/jp-wage-dashboard/internal/metrics"
)

//go:embed web
var staticFiles embed.FS

// devFrontend 开发模式下的前端开发服务器
const devFrontend = "http://localhost:5173"

// Options 服务器依赖
type Options struct {
	Config  *config.AppConfig
	API     *v1.Handler
	Metrics *metrics.Metrics // 可为 nil
	Logger  *logger.Logger
}

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	api    *v1.Handler
	http   *http.Server
	log    *logger.Logger
}

// NewServer 创建服务器
func NewServer(opts Options) *Server {
	devMode := opts.Config.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		router: gin.New(),
		api:    opts.API,
		log:    log,
	}
	s.setupRoutes(opts.Config, opts.Metrics)
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(cfg *config.AppConfig, m *metrics.Metrics) {
	s.router.Use(gin.Recovery(), RequestLogger(s.log), Metrics(m), corsMiddleware(cfg.Server.CORSOrigins))

	// V1 API 路由
	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}

	if m != nil {
		s.router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// 静态资源
	if cfg.Server.DevMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.Redirect(http.StatusTemporaryRedirect, devFrontend+c.Request.URL.Path)
		})
		return
	}

	// 生产模式：使用embed的页面
	sub, _ := fs.Sub(staticFiles, "web")
	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		index(c)
	})
}

// corsMiddleware 未配置来源时允许任意来源（本地单机使用）
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// Handler 路由（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，阻塞直到 Shutdown
func (s *Server) Run() error {
	s.log.Info("HTTP 服务已启动", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
