package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"familytree_go/internal/handler"
	"familytree_go/internal/middleware"
	"familytree_go/internal/service"
)

func main() {
	// 加载配置
	cfg := service.LoadConfig()

	// 初始化结构化日志
	logger := service.NewLogger(&service.LoggerConfig{
		Level:  cfg.LogLevel,
		Format: service.LogFormat(cfg.LogFormat),
	})

	// 初始化gin
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))

	// 初始化服务
	history := service.NewHistoryService(&service.HistoryConfig{Limit: cfg.HistoryLimit})
	trees := service.NewTreeService(logger, history)
	shares := service.NewShareService(logger)

	// 注册路由
	handler.NewTreeHandler(trees, shares, logger).RegisterRoutes(r)

	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
