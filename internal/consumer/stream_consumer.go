// Package consumer 实现上传事件的 Redis Streams 消费
package consumer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"schedview-snapshot/internal/config"
	"schedview-snapshot/internal/models"
)

// UploadProcessor 上传处理器（由 service 层实现）
type UploadProcessor interface {
	ProcessUpload(ctx context.Context, uploadID string, payload []byte) (*models.ScheduleSnapshot, error)
}

// StreamConsumer 上传事件流消费者
//
// 网关把用户上传的导出 JSON 写入 uploads 流，本消费者
// 逐条取出执行标准化管道。处理失败的消息记日志后照常
// ACK：poison 消息不能卡住整个流，上传本身已整体失败，
// 不会有任何部分结果被持久化。
type StreamConsumer struct {
	config      *config.Config
	redisClient *redis.Client
	processor   UploadProcessor
	logger      *zap.Logger
}

// NewStreamConsumer 创建上传流消费者
func NewStreamConsumer(
	cfg *config.Config,
	redisClient *redis.Client,
	processor UploadProcessor,
	logger *zap.Logger,
) *StreamConsumer {
	return &StreamConsumer{
		config:      cfg,
		redisClient: redisClient,
		processor:   processor,
		logger:      logger,
	}
}

// Start 启动消费循环
func (c *StreamConsumer) Start(ctx context.Context) error {
	stream := c.config.Snapshot.Streams.Uploads
	group := c.config.Snapshot.ConsumerGroup

	if err := createConsumerGroup(ctx, c.redisClient, stream, group); err != nil {
		return fmt.Errorf("failed to create consumer group for %s: %w", stream, err)
	}

	c.logger.Info("Upload stream consumer started",
		zap.String("stream", stream),
		zap.String("consumer_group", group),
		zap.String("consumer_name", c.config.Snapshot.ConsumerName),
	)

	// 消费循环：流读取失败时指数退避
	backoffDuration := time.Second
	maxBackoff := 30 * time.Second

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := c.consumeOnce(ctx, stream, group); err != nil {
				c.logger.Error("Failed to consume upload stream",
					zap.Error(err),
					zap.Duration("backoff", backoffDuration),
				)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(backoffDuration):
					backoffDuration *= 2
					if backoffDuration > maxBackoff {
						backoffDuration = maxBackoff
					}
				}
			} else {
				backoffDuration = time.Second
			}
		}
	}
}

// consumeOnce 读取并处理一批消息
func (c *StreamConsumer) consumeOnce(ctx context.Context, stream, group string) error {
	results, err := c.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: c.config.Snapshot.ConsumerName,
		Streams:  []string{stream, ">"},
		Count:    10,
		Block:    2 * time.Second,
	}).Result()
	if err != nil {
		if err == redis.Nil || err == context.Canceled {
			return nil
		}
		return err
	}

	for _, streamResult := range results {
		for _, message := range streamResult.Messages {
			c.handleMessage(ctx, message)

			if err := c.redisClient.XAck(ctx, stream, group, message.ID).Err(); err != nil {
				c.logger.Error("Failed to ack message",
					zap.String("message_id", message.ID),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// handleMessage 处理单条上传消息
func (c *StreamConsumer) handleMessage(ctx context.Context, message redis.XMessage) {
	upload, err := models.ParseUploadMessage(message.Values)
	if err != nil {
		c.logger.Error("Invalid upload message",
			zap.String("message_id", message.ID),
			zap.Error(err),
		)
		return
	}

	if upload.UploadID == "" {
		upload.UploadID = uuid.NewString()
	}

	if _, err := c.processor.ProcessUpload(ctx, upload.UploadID, upload.Payload); err != nil {
		c.logger.Error("Failed to process upload",
			zap.String("upload_id", upload.UploadID),
			zap.String("message_id", message.ID),
			zap.Error(err),
		)
		return
	}

	c.logger.Info("Processed upload from stream",
		zap.String("upload_id", upload.UploadID),
		zap.String("message_id", message.ID),
	)
}

// createConsumerGroup 创建消费者组（已存在时忽略 BUSYGROUP）
func createConsumerGroup(ctx context.Context, client *redis.Client, stream, group string) error {
	err := client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}
