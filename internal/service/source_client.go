package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SourceClient 外部排班 API 客户端
//
// 除用户手工上传外，服务也可以直接从排班 API 拉取导出。
// 返回的是原始导出 JSON 文本，不在这里解析——解析与格式
// 检测统一交给转换管道。
type SourceClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewSourceClient 创建排班 API 客户端
func NewSourceClient(baseURL, token string, logger *zap.Logger) *SourceClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second). // 全量导出可能较大
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json").
		SetAuthToken(token)

	return &SourceClient{
		httpClient: client,
		logger:     logger,
	}
}

// FetchExport 拉取全量排班导出
func (c *SourceClient) FetchExport(ctx context.Context) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get("/api/schedule/export")
	if err != nil {
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("export request returned status %d", resp.StatusCode())
	}

	c.logger.Info("Fetched schedule export",
		zap.Int("bytes", len(resp.Body())),
	)
	return resp.Body(), nil
}
