package models

import (
	"errors"
	"fmt"
)

// 转换管道的错误分类
//
// 三类错误对当前上传都是终止性的：管道不做逐条跳过，
// 一条坏记录使整批上传失败。
var (
	// ErrMalformedInput 输入不是合法 JSON
	ErrMalformedInput = errors.New("malformed input: not valid JSON")

	// ErrUnrecognizedFormat Result 形状不匹配任何已知格式
	ErrUnrecognizedFormat = errors.New("unrecognized export format")

	// ErrMissingPayload 流消息缺少 payload 字段
	ErrMissingPayload = errors.New("stream message missing payload")

	// ErrSnapshotNotFound KV 存储中不存在当前快照
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// TransformError 记录级转换失败（无法安全默认的结构性错误）
type TransformError struct {
	Format string // FormatFlat / FormatGrouped
	Index  int    // 原始记录在批次中的序号
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform failed (%s record %d): %s", e.Format, e.Index, e.Reason)
}

// NewTransformError 创建记录级转换错误
func NewTransformError(format string, index int, reason string) *TransformError {
	return &TransformError{Format: format, Index: index, Reason: reason}
}
