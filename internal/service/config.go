package service

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig 应用配置
type AppConfig struct {
	Port         string // 监听端口
	GinMode      string // gin运行模式
	LogLevel     string // 日志级别
	LogFormat    string // 日志格式 text/json
	HistoryLimit int    // 历史快照上限
}

// LoadConfig 加载应用配置
//
// 优先读取.env文件（不存在时忽略），再读取环境变量，均未设置时用默认值。
func LoadConfig() *AppConfig {
	_ = godotenv.Load()

	return &AppConfig{
		Port:         envOrDefault("PORT", "8080"),
		GinMode:      envOrDefault("GIN_MODE", "release"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		LogFormat:    envOrDefault("LOG_FORMAT", "text"),
		HistoryLimit: envIntOrDefault("HISTORY_LIMIT", DefaultHistoryLimit),
	}
}

// envOrDefault 读取环境变量，未设置时返回默认值
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envIntOrDefault 读取整型环境变量，未设置或非法时返回默认值
func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
