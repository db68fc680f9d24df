package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, info, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if info.PortSpecified {
		t.Fatalf("port should not be marked as specified")
	}
	if cfg.Chart.AxisMargin != 50 || cfg.Chart.GeoYear != 2019 {
		t.Fatalf("unexpected chart defaults: %+v", cfg.Chart)
	}
	if cfg.Data.NationalByIndustry.Encoding != "shift_jis" || cfg.Data.Coordinates.Encoding != "utf-8" {
		t.Fatalf("unexpected encodings: %+v", cfg.Data)
	}
	if cfg.Chart.PNGWidth != 768 || cfg.Chart.PNGHeight != 480 || cfg.Chart.FontPath != "" {
		t.Fatalf("unexpected png defaults: %+v", cfg.Chart)
	}
}

func TestLoadFile_PNGSizeIndependentOfBar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[chart]
bar_width = 1200
png_height = 600
font_path = "/fonts/a.ttc"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WAGEDASH_FONT", "/fonts/ipaexg.ttf")

	cfg, _, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Chart.BarWidth != 1200 || cfg.Chart.PNGWidth != 768 || cfg.Chart.PNGHeight != 600 {
		t.Fatalf("png size should not follow bar size: %+v", cfg.Chart)
	}
	if cfg.Chart.FontPath != "/fonts/ipaexg.ttf" {
		t.Fatalf("env font path not applied: %q", cfg.Chart.FontPath)
	}
}

func TestLoadFile_OverridesAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 18080

[data]
delimiter = "\t"

[data.coordinates]
path = "coords.xlsx"

[chart]
axis_margin = 80
bubble_range_x = [100.0, 800.0]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WAGEDASH_DATA_DIR", "/srv/resas")

	cfg, info, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !info.PortSpecified || cfg.Server.Port != 18080 {
		t.Fatalf("port not applied: %+v %+v", info, cfg.Server)
	}
	if cfg.Chart.AxisMargin != 80 || cfg.Chart.BubbleRangeX != [2]float64{100, 800} {
		t.Fatalf("chart overrides not applied: %+v", cfg.Chart)
	}
	// 未覆盖的字段保持默认
	if cfg.Chart.GeoYear != 2019 || cfg.Data.Coordinates.Encoding != "utf-8" {
		t.Fatalf("defaults lost: %+v", cfg.Chart)
	}
	if DelimiterRune(cfg) != '\t' {
		t.Fatalf("delimiter want tab, got %q", DelimiterRune(cfg))
	}
	if got := SourcePath(cfg, cfg.Data.Coordinates); got != filepath.Join("/srv/resas", "coords.xlsx") {
		t.Fatalf("source path: %s", got)
	}
}
