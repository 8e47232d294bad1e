package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr string

	// 启动时载入的 .proof 文档，为空时使用默认文档
	DocPath string
	// 覆盖文档中的校准值，0 表示不覆盖
	PixelsPerInch float64

	FontDir string

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Addr: envOr("TRUESCALE_ADDR", ":8080"),

		DocPath:       os.Getenv("TRUESCALE_DOC"),
		PixelsPerInch: envFloat("TRUESCALE_PPI", 0),

		FontDir: os.Getenv("TRUESCALE_FONT_DIR"),

		LogLevel:  envOr("TRUESCALE_LOG_LEVEL", "info"),
		LogFormat: envOr("TRUESCALE_LOG_FORMAT", "text"),

		ShutdownTimeout: envDuration("TRUESCALE_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.PixelsPerInch < 0 {
		cfg.PixelsPerInch = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("TRUESCALE_ADDR is required")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("TRUESCALE_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// NewLogger 按配置构造 slog 日志器。
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("TRUESCALE_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
