package main

import (
	"log"

	"github.com/Dipraise1/publicfund/internal/chain"
	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/Dipraise1/publicfund/internal/logger"
	"github.com/Dipraise1/publicfund/internal/notify"
	"github.com/Dipraise1/publicfund/internal/repository"
	"github.com/Dipraise1/publicfund/internal/router"
	"github.com/Dipraise1/publicfund/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	}

	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化资产转移客户端（未启用链上模式时仅记账）
	var mover chain.AssetMover
	if cfg.Chain.Enabled {
		client, err := chain.Init(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize chain client: %v", err)
		}
		mover = client
	} else {
		mover = chain.NewLedgerMover()
	}

	// 初始化事件通知器
	notifier, err := notify.NewNotifier(db, 8)
	if err != nil {
		logger.Fatal("Failed to initialize notifier: %v", err)
	}
	defer notifier.Close()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, mover, notifier, cfg)

	// 启动定时任务
	manager := task.Start(db, mover, notifier, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
