// Package service 装配并驱动快照服务的各组件
package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	_ "github.com/lib/pq"

	"schedview-snapshot/internal/config"
	"schedview-snapshot/internal/consumer"
	"schedview-snapshot/internal/models"
	"schedview-snapshot/internal/repository"
	"schedview-snapshot/internal/store"
	"schedview-snapshot/internal/transformer"
)

// SnapshotService 排班快照服务
//
// 持有转换管道与全部协作方：当前快照的 KV 存储、
// 上传归档仓库、上传事件流消费者、可选的源 API 拉取客户端。
type SnapshotService struct {
	config       *config.Config
	logger       *zap.Logger
	db           *sql.DB
	redisClient  *redis.Client
	trans        *transformer.SnapshotTransformer
	kv           store.SnapshotKV
	repo         *repository.SnapshotRepository
	consumer     *consumer.StreamConsumer
	sourceClient *SourceClient
}

// NewSnapshotService 创建快照服务
func NewSnapshotService(cfg *config.Config, logger *zap.Logger) (*SnapshotService, error) {
	// 初始化数据库
	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 初始化Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	svc := &SnapshotService{
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		trans:       transformer.NewSnapshotTransformer(logger),
		kv:          store.NewRedisSnapshotKV(redisClient, time.Duration(cfg.Snapshot.SnapshotTTL)*time.Second),
		repo:        repository.NewSnapshotRepository(db, logger),
	}
	svc.consumer = consumer.NewStreamConsumer(cfg, redisClient, svc, logger)

	if cfg.Source.Enabled {
		svc.sourceClient = NewSourceClient(cfg.Source.BaseURL, cfg.Source.Token, logger)
	}

	return svc, nil
}

// ProcessUpload 执行一次上传的完整处理
//
// 转换 → 写入当前快照 KV → 归档 → 发布完成通知。
// 任一错误都使本次上传整体失败，不持久化部分结果。
func (s *SnapshotService) ProcessUpload(ctx context.Context, uploadID string, payload []byte) (*models.ScheduleSnapshot, error) {
	snapshot, err := s.trans.Transform(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to transform upload %s: %w", uploadID, err)
	}

	if err := s.kv.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot for upload %s: %w", uploadID, err)
	}

	if err := s.repo.Insert(uploadID, snapshot); err != nil {
		return nil, fmt.Errorf("failed to archive upload %s: %w", uploadID, err)
	}

	s.publishSnapshotReady(ctx, uploadID, snapshot)

	return snapshot, nil
}

// CurrentSnapshot 读取当前快照（KV 未命中时回退到归档）
func (s *SnapshotService) CurrentSnapshot(ctx context.Context) (*models.ScheduleSnapshot, error) {
	snapshot, err := s.kv.Load(ctx)
	if err == nil {
		return snapshot, nil
	}
	if err != store.ErrMiss {
		return nil, err
	}
	return s.repo.GetLatestSnapshot()
}

// ListUploads 上传历史
func (s *SnapshotService) ListUploads(limit int) ([]repository.UploadRecord, error) {
	return s.repo.ListUploads(limit)
}

// PullAndProcess 从排班 API 拉取导出并处理
func (s *SnapshotService) PullAndProcess(ctx context.Context, uploadID string) (*models.ScheduleSnapshot, error) {
	if s.sourceClient == nil {
		return nil, fmt.Errorf("source API pull is not configured")
	}
	payload, err := s.sourceClient.FetchExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch export: %w", err)
	}
	return s.ProcessUpload(ctx, uploadID, payload)
}

// publishSnapshotReady 向输出流发布快照完成通知
//
// 通知失败不影响已完成的上传，只记日志。
func (s *SnapshotService) publishSnapshotReady(ctx context.Context, uploadID string, snapshot *models.ScheduleSnapshot) {
	err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: s.config.Snapshot.Streams.Output,
		Values: map[string]interface{}{
			"upload_id":   uploadID,
			"data_format": snapshot.Metadata.DataFormat,
			"total_jobs":  snapshot.Metadata.Stats.TotalJobs,
			"updated_at":  snapshot.Metadata.LastUpdated.Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		s.logger.Error("Failed to publish snapshot notification",
			zap.String("upload_id", uploadID),
			zap.Error(err),
		)
	}
}

// Start 启动服务（阻塞消费上传流）
func (s *SnapshotService) Start(ctx context.Context) error {
	s.logger.Info("Starting snapshot service components")

	if err := s.consumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start stream consumer: %w", err)
	}

	s.logger.Info("Snapshot service started successfully")
	return nil
}

// Stop 停止服务
func (s *SnapshotService) Stop(ctx context.Context) error {
	s.logger.Info("Stopping snapshot service")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Error closing Redis client", zap.Error(err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Error closing database", zap.Error(err))
		}
	}
	return nil
}
