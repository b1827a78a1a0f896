package config

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/user/pagesmith/internal/logging"
)

// Settings holds the application settings. The page configuration itself
// lives in the page file named by Page.
type Settings struct {
	Locale  string          `mapstructure:"locale" yaml:"locale" validate:"oneof=zh-CN en"`
	Page    string          `mapstructure:"page" yaml:"page" validate:"required"`
	Render  RenderSettings  `mapstructure:"render" yaml:"render"`
	Preview PreviewSettings `mapstructure:"preview" yaml:"preview"`
	Export  ExportSettings  `mapstructure:"export" yaml:"export"`
	Logging LoggingSettings `mapstructure:"logging" yaml:"logging"`
}

// RenderSettings holds renderer options
type RenderSettings struct {
	NarrativeMarkdown bool `mapstructure:"narrative_markdown" yaml:"narrative_markdown"`
}

// PreviewSettings holds live-preview host configuration
type PreviewSettings struct {
	Addr           string   `mapstructure:"addr" yaml:"addr" validate:"hostname_port"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins" validate:"dive,required"`
	Watch          bool     `mapstructure:"watch" yaml:"watch"`
	CacheSize      int      `mapstructure:"cache_size" yaml:"cache_size" validate:"gte=0"`
	ReadTimeout    int      `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gte=0"`   // seconds
	WriteTimeout   int      `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gte=0"` // seconds
}

// ExportSettings holds batch export configuration
type ExportSettings struct {
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
	MaxWorkers int    `mapstructure:"max_workers" yaml:"max_workers" validate:"gte=0"` // 0 = CPU count
}

// LoggingSettings holds logging configuration
type LoggingSettings struct {
	LogDir       string `mapstructure:"log_dir" yaml:"log_dir"`
	FileLevel    string `mapstructure:"file_level" yaml:"file_level" validate:"oneof=debug info warn warning error"`
	ConsoleLevel string `mapstructure:"console_level" yaml:"console_level" validate:"oneof=debug info warn warning error"`
}

// GetReadTimeout returns the read timeout as a time.Duration; 0 disables it
func (p *PreviewSettings) GetReadTimeout() time.Duration {
	return time.Duration(p.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a time.Duration; 0 disables it
func (p *PreviewSettings) GetWriteTimeout() time.Duration {
	return time.Duration(p.WriteTimeout) * time.Second
}

// GetMaxWorkers returns the worker count, defaulting to the CPU count
func (e *ExportSettings) GetMaxWorkers() int {
	if e.MaxWorkers == 0 {
		return runtime.NumCPU()
	}
	return e.MaxWorkers
}

// LoggerConfig builds the logger configuration for a project directory
func (l *LoggingSettings) LoggerConfig(projectDir string) *logging.Config {
	cfg := logging.DefaultConfig()
	if l.LogDir != "" {
		cfg.LogDir = l.LogDir
	} else {
		cfg.LogDir = filepath.Join(projectDir, ProjectDirName, "logs")
	}
	cfg.FileLevel = logging.LevelFromString(l.FileLevel)
	cfg.ConsoleLevel = logging.LevelFromString(l.ConsoleLevel)
	return cfg
}
