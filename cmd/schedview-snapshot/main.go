package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"schedview-snapshot/internal/config"
	"schedview-snapshot/internal/httpapi"
	"schedview-snapshot/internal/logger"
	"schedview-snapshot/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化Logger
	zapLogger, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "schedview-snapshot")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting schedview-snapshot service",
		zap.String("uploads_stream", cfg.Snapshot.Streams.Uploads),
		zap.String("output_stream", cfg.Snapshot.Streams.Output),
		zap.String("http_addr", cfg.HTTP.Addr),
	)

	// 创建服务
	snapshotService, err := service.NewSnapshotService(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create snapshot service", zap.Error(err))
	}

	// HTTP 路由
	router := httpapi.NewRouter(zapLogger)
	router.RegisterScheduleRoutes(httpapi.NewScheduleHandler(snapshotService, zapLogger))
	httpServer := service.NewServer(cfg.HTTP.Addr, router, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 在 goroutine 中启动流消费与 HTTP 服务
	go func() {
		if err := snapshotService.Start(ctx); err != nil {
			zapLogger.Fatal("Failed to start snapshot service", zap.Error(err))
		}
	}()
	go func() {
		if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	zapLogger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	// 优雅关闭
	cancel()
	if err := httpServer.Stop(context.Background()); err != nil {
		zapLogger.Error("Error stopping HTTP server", zap.Error(err))
	}
	if err := snapshotService.Stop(context.Background()); err != nil {
		zapLogger.Error("Error during shutdown", zap.Error(err))
	}

	zapLogger.Info("Service stopped")
}
