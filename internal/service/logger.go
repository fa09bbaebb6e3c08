package service

import (
	"log/slog"
	"os"
	"strings"
)

// LogFormat 日志格式
type LogFormat string

const (
	LogFormatText LogFormat = "text" // 文本格式
	LogFormatJSON LogFormat = "json" // JSON格式
)

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level  string    // 日志级别 debug/info/warn/error
	Format LogFormat // 日志格式
}

// NewLogger 根据配置创建结构化日志器
func NewLogger(config *LoggerConfig) *slog.Logger {
	if config == nil {
		config = &LoggerConfig{}
	}

	level := slog.LevelInfo
	switch strings.ToLower(config.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if config.Format == LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
