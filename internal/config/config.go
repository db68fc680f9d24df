package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Chart  ChartConfig  `toml:"chart"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int      `toml:"port"`
	DevMode     bool     `toml:"dev_mode"`
	OpenBrowser bool     `toml:"open_browser"`
	CORSOrigins []string `toml:"cors_origins"`
}

// SourceConfig 单个源文件（相对路径基于 data_dir）
type SourceConfig struct {
	Path     string `toml:"path"`
	Encoding string `toml:"encoding"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir              string       `toml:"data_dir"`
	Database             string       `toml:"database"`
	Delimiter            string       `toml:"delimiter"`
	NationalByIndustry   SourceConfig `toml:"national_by_industry"`
	NationalByCategory   SourceConfig `toml:"national_by_category"`
	PrefectureByIndustry SourceConfig `toml:"prefecture_by_industry"`
	Coordinates          SourceConfig `toml:"coordinates"`
}

// ChartConfig 图表配置
type ChartConfig struct {
	AxisMargin       float64    `toml:"axis_margin"`
	GeoYear          int        `toml:"geo_year"`
	Cache            bool       `toml:"cache"`
	Longitude        float64    `toml:"longitude"`
	Latitude         float64    `toml:"latitude"`
	Zoom             float64    `toml:"zoom"`
	Pitch            float64    `toml:"pitch"`
	HeatmapOpacity   float64    `toml:"heatmap_opacity"`
	HeatmapThreshold float64    `toml:"heatmap_threshold"`
	BubbleRangeX     [2]float64 `toml:"bubble_range_x"`
	BubbleRangeY     [2]float64 `toml:"bubble_range_y"`
	BubbleSizeMax    float64    `toml:"bubble_size_max"`
	BarWidth         int        `toml:"bar_width"`
	BarHeight        int        `toml:"bar_height"`
	PNGWidth         int        `toml:"png_width"`  // 服务端 PNG 渲染尺寸（像素）
	PNGHeight        int        `toml:"png_height"`
	FontPath         string     `toml:"font_path"` // PNG 使用的日文字体；为空时搜索系统字体
}

// LogConfig 日志配置
type LogConfig struct {
	Mode  string `toml:"mode"`
	Level string `toml:"level"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir:   "csv_data",
			Database:  "wagedash.db",
			Delimiter: ",",
			NationalByIndustry: SourceConfig{
				Path:     "雇用_医療福祉_一人当たり賃金_全国_全産業.csv",
				Encoding: "shift_jis",
			},
			NationalByCategory: SourceConfig{
				Path:     "雇用_医療福祉_一人当たり賃金_全国_大分類.csv",
				Encoding: "shift_jis",
			},
			PrefectureByIndustry: SourceConfig{
				Path:     "雇用_医療福祉_一人当たり賃金_都道府県_全産業.csv",
				Encoding: "shift_jis",
			},
			Coordinates: SourceConfig{
				Path:     "pref_lat_lon.csv",
				Encoding: "utf-8",
			},
		},
		Chart: ChartConfig{
			AxisMargin:       50,
			GeoYear:          2019,
			Cache:            true,
			Longitude:        139.69,
			Latitude:         35.69,
			Zoom:             4,
			Pitch:            40.5,
			HeatmapOpacity:   0.4,
			HeatmapThreshold: 0.3,
			BubbleRangeX:     [2]float64{150, 700},
			BubbleRangeY:     [2]float64{0, 150},
			BubbleSizeMax:    38,
			BarWidth:         800,
			BarHeight:        500,
			PNGWidth:         768,
			PNGHeight:        480,
		},
		Log: LogConfig{
			Mode:  "production",
			Level: "info",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录下的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadFile(filepath.Join(exeDir, "config.toml"))
}

// LoadFile 从指定路径加载配置；文件不存在时使用默认配置
func LoadFile(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	case err != nil:
		return nil, info, err
	default:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := strings.TrimSpace(os.Getenv("WAGEDASH_DATA_DIR")); v != "" {
		config.Data.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("WAGEDASH_LOG_LEVEL")); v != "" {
		config.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("WAGEDASH_FONT")); v != "" {
		config.Chart.FontPath = v
	}

	return config, info, nil
}

// ResolveDataDir 数据目录的绝对路径；相对路径基于可执行文件目录
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// SourcePath 源文件的完整路径
func SourcePath(config *AppConfig, src SourceConfig) string {
	if filepath.IsAbs(src.Path) {
		return src.Path
	}
	return filepath.Join(ResolveDataDir(config), src.Path)
}

// DatabasePath SQLite 数据库路径
func DatabasePath(config *AppConfig) string {
	if filepath.IsAbs(config.Data.Database) {
		return config.Data.Database
	}
	return filepath.Join(ResolveDataDir(config), config.Data.Database)
}

// DelimiterRune 分隔符的首字符；为空或 "\t" 时分别返回逗号与制表符
func DelimiterRune(config *AppConfig) rune {
	switch d := config.Data.Delimiter; d {
	case "":
		return ','
	case `\t`, "tab":
		return '\t'
	default:
		return []rune(d)[0]
	}
}
