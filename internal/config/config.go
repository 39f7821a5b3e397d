// Package config loads worker configuration using viper: flags and
// environment variables layer over an optional YAML file, matching the
// root-key-plus-env-prefix convention this codebase uses elsewhere.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"frakt-worker/internal/log"
)

// WorkerConfig is everything a Runner needs to dial the dispatcher and run
// its rounds.
type WorkerConfig struct {
	ServerHost  string    `mapstructure:"server_host"`
	ServerPort  int       `mapstructure:"server_port"`
	WorkerName  string    `mapstructure:"worker_name"`
	MaxWorkload uint32    `mapstructure:"max_workload"`
	Rounds      int       `mapstructure:"rounds"`
	Log         LogConfig `mapstructure:"log"`
}

// LogConfig selects logging level, format, and an optional rotating file
// destination.
type LogConfig struct {
	Level  string     `mapstructure:"level"`
	Format string     `mapstructure:"format"`
	File   FileConfig `mapstructure:"file"`
}

// FileConfig mirrors log.FileAppenderOpt so internal/config does not need
// to know about lumberjack's field names directly.
type FileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerConfig converts c into the shape internal/log.Init expects.
func (c LogConfig) ToLoggerConfig() *log.LoggerConfig {
	cfg := &log.LoggerConfig{Level: c.Level, Format: c.Format}
	if c.File.Enabled && c.File.Filename != "" {
		cfg.File = &log.FileAppenderOpt{
			Filename:   c.File.Filename,
			MaxSize:    c.File.MaxSize,
			MaxBackups: c.File.MaxBackups,
			MaxAge:     c.File.MaxAge,
			Compress:   c.File.Compress,
		}
	}
	return cfg
}

type configRoot struct {
	FraktWorker WorkerConfig `mapstructure:"frakt-worker"`
}

// Load builds a WorkerConfig from defaults, an optional YAML file at path
// (skipped entirely when path is empty), and environment variables with
// the FRAKT_WORKER_ prefix (e.g. FRAKT_WORKER_SERVER_HOST).
func Load(path string) (*WorkerConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading file %q: %w", path, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	cfg := root.FraktWorker

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("frakt-worker.server_host", "127.0.0.1")
	v.SetDefault("frakt-worker.server_port", 8787)
	v.SetDefault("frakt-worker.worker_name", "go-worker")
	v.SetDefault("frakt-worker.max_workload", 1)
	v.SetDefault("frakt-worker.rounds", 0)

	v.SetDefault("frakt-worker.log.level", "info")
	v.SetDefault("frakt-worker.log.format", "text")
	v.SetDefault("frakt-worker.log.file.enabled", false)
	v.SetDefault("frakt-worker.log.file.max_size", 100)
	v.SetDefault("frakt-worker.log.file.max_age", 30)
	v.SetDefault("frakt-worker.log.file.max_backups", 5)
	v.SetDefault("frakt-worker.log.file.compress", true)
}

// Validate checks the invariants the worker run loop depends on: a
// non-empty name and a positive workload, matching the WorkerRequest
// invariants in the wire protocol.
func (c WorkerConfig) Validate() error {
	if c.ServerHost == "" {
		return fmt.Errorf("server_host must be non-empty")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server_port %d out of range", c.ServerPort)
	}
	if c.WorkerName == "" {
		return fmt.Errorf("worker_name must be non-empty")
	}
	if c.MaxWorkload == 0 {
		return fmt.Errorf("max_workload must be > 0")
	}
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must be >= 0")
	}
	return nil
}
