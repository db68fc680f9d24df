package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/ma202004gh/jp-wage-dashboard/internal/api/v1"
	"github.com/ma202004gh/jp-wage-dashboard/internal/config"
	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/exporter"
	"github.com/ma202004gh/jp-wage-dashboard/internal/logger"
	"github.com/ma202004gh/jp-wage-dashboard/internal/metrics"
	"github.com/ma202004gh/jp-wage-dashboard/internal/pipeline"
	"github.com/ma202004gh/jp-wage-dashboard/internal/presentation"
	"github.com/ma202004gh/jp-wage-dashboard/internal/render"
	"github.com/ma202004gh/jp-wage-dashboard/internal/server"
	"github.com/ma202004gh/jp-wage-dashboard/internal/store"
	"github.com/ma202004gh/jp-wage-dashboard/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  日本の賃金データのダッシュボード")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败，使用默认配置: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
		cfg.Log.Mode = "development"
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("服务异常退出", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("数据目录", "path", config.ResolveDataDir(cfg))

	st, err := store.New(config.DatabasePath(cfg))
	if err != nil {
		return fmt.Errorf("初始化数据库失败: %w", err)
	}
	defer st.Close()

	// 源数据加载失败时不启动服务
	loader := datastore.NewLoader(log,
		datastore.WithRecorder(st),
		datastore.WithDelimiter(config.DelimiterRune(cfg)),
	)
	ds, err := loader.Load(ctx, sources(cfg))
	if err != nil {
		var ingestion *datastore.IngestionError
		if errors.As(err, &ingestion) {
			return fmt.Errorf("源数据不可用，请检查 %s: %w", ingestion.Path, err)
		}
		return err
	}

	m := metrics.New()
	m.SetLoadedRows(ds.Summary())

	opts := []pipeline.Option{pipeline.WithObserver(m), pipeline.WithLogger(log)}
	if cfg.Chart.Cache {
		opts = append(opts, pipeline.WithCache())
	}
	svc := pipeline.NewService(ds, cfg.Chart.AxisMargin, opts...)

	api := v1.NewHandler(v1.Deps{
		Data:     ds,
		Adapter:  presentation.NewAdapter(svc, presentationConfig(cfg)),
		Exporter: exporter.NewExporter(svc),
		Renderer: newRenderer(cfg, log),
		State:    st,
		GeoYear:  cfg.Chart.GeoYear,
		Logger:   log,
	})
	srv := server.NewServer(server.Options{Config: cfg, API: api, Metrics: m, Logger: log})

	url := util.LocalURL(cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	// 打开浏览器
	if !cfg.Server.DevMode && cfg.Server.OpenBrowser {
		log.Info("正在打开浏览器", "url", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			log.Warn("无法自动打开浏览器，请手动访问", "url", url)
		}
	} else {
		log.Info("请访问", "url", url)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("正在关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func sources(cfg *config.AppConfig) datastore.Sources {
	file := func(s config.SourceConfig) datastore.SourceFile {
		return datastore.SourceFile{Path: config.SourcePath(cfg, s), Encoding: s.Encoding}
	}
	return datastore.Sources{
		NationalByIndustry:   file(cfg.Data.NationalByIndustry),
		NationalByCategory:   file(cfg.Data.NationalByCategory),
		PrefectureByIndustry: file(cfg.Data.PrefectureByIndustry),
		Coordinates:          file(cfg.Data.Coordinates),
	}
}

// newRenderer PNG 渲染器；找不到日文字体时退回默认字体
func newRenderer(cfg *config.AppConfig, log *logger.Logger) *render.Renderer {
	r := render.New(render.FromPixels(cfg.Chart.PNGWidth), render.FromPixels(cfg.Chart.PNGHeight))

	paths := render.DefaultFontPaths
	if cfg.Chart.FontPath != "" {
		paths = append([]string{cfg.Chart.FontPath}, paths...)
	}
	f, path, err := render.FindFont(paths)
	if err != nil {
		log.Warn("未找到日文字体，PNG 中的日文无法显示；请设置 chart.font_path", "error", err)
		return r
	}
	r.UseFont(f)
	log.Info("PNG 字体", "path", path)
	return r
}

func presentationConfig(cfg *config.AppConfig) presentation.Config {
	c := cfg.Chart
	return presentation.Config{
		View: presentation.ViewState{
			Longitude: c.Longitude,
			Latitude:  c.Latitude,
			Zoom:      c.Zoom,
			Pitch:     c.Pitch,
		},
		HeatmapOpacity:   c.HeatmapOpacity,
		HeatmapThreshold: c.HeatmapThreshold,
		BubbleRangeX:     c.BubbleRangeX,
		BubbleRangeY:     c.BubbleRangeY,
		BubbleSizeMax:    c.BubbleSizeMax,
		BarWidth:         c.BarWidth,
		BarHeight:        c.BarHeight,
	}
}
