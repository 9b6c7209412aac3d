// Package config 提供了统一的配置加载与管理能力.
// 生成摘要:
// 1) 求解器容差与默认优化方向可配置。
// 2) 批量求解并发度可配置。
// 3) 支持 TOML 文件 + 环境变量覆盖 + fsnotify 热更新。
// 假设:
// 1) 热更新只影响日志级别与回调钩子，已拟合的管道不受影响。
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/wyfcoding/optpipe/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 全局顶级配置结构.
type Config struct {
	Log     LogConfig     `mapstructure:"log"     toml:"log"`
	Solver  SolverConfig  `mapstructure:"solver"  toml:"solver"`
	Batch   BatchConfig   `mapstructure:"batch"   toml:"batch"`
	Chart   ChartConfig   `mapstructure:"chart"   toml:"chart"`
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing" toml:"tracing"`
}

// LogConfig 日志配置.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"       validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file"        toml:"file"`
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"    validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"     validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"    toml:"compress"`
}

// SolverConfig 求解器配置.
type SolverConfig struct {
	Tolerance    float64 `mapstructure:"tolerance"     toml:"tolerance"     validate:"gte=0"`
	DefaultSense string  `mapstructure:"default_sense" toml:"default_sense" validate:"omitempty,oneof=minimize maximize"`
}

// BatchConfig 批量求解配置.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" toml:"concurrency" validate:"gte=0"`
}

// ChartConfig 图表渲染配置.
type ChartConfig struct {
	Title string `mapstructure:"title" toml:"title"`
}

// MetricsConfig 指标暴露配置.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Port    string `mapstructure:"port"    toml:"port"`
}

// TracingConfig 链路追踪配置.
type TracingConfig struct {
	Enabled      bool   `mapstructure:"enabled"       toml:"enabled"`
	ServiceName  string `mapstructure:"service_name"  toml:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" toml:"otlp_endpoint"`
}

var (
	vInstance = viper.New()

	hooksMu  sync.Mutex
	onReload []func(*Config)
)

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	onReload = append(onReload, hook)
}

// Load 读取并校验 TOML 配置文件，随后开启 fsnotify 热更新监听。
// 环境变量以 OPTPIPE_ 为前缀覆盖同名配置项。
func Load(path string, conf *Config) error {
	vInstance.SetConfigFile(path)
	vInstance.SetConfigType("toml")

	vInstance.SetEnvPrefix("OPTPIPE")
	vInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vInstance.AutomaticEnv()

	if err := vInstance.ReadInConfig(); err != nil {
		return fmt.Errorf("read config error: %w", err)
	}

	if err := vInstance.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	vInstance.WatchConfig()
	vInstance.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		if unmarshalErr := vInstance.Unmarshal(conf); unmarshalErr != nil {
			slog.Error("reload config unmarshal failed", "error", unmarshalErr)

			return
		}

		// 配置中带日志级别时，自动更新全局日志级别
		if conf.Log.Level != "" {
			logging.SetLevel(conf.Log.Level)
		}

		if validateErr := validate.Struct(conf); validateErr != nil {
			slog.Error("reload config validation failed", "error", validateErr)
		} else {
			slog.Info("config hot-reloaded and validated successfully")
		}

		hooksMu.Lock()
		hooks := append([](func(*Config))(nil), onReload...)
		hooksMu.Unlock()
		for _, hook := range hooks {
			hook(conf)
		}
	})

	return nil
}

// GetViper 返回底层 viper 实例，便于测试或高级用法。
func GetViper() *viper.Viper {
	return vInstance
}
