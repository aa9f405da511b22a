package models

// StreamMessage Redis Streams 消息
type StreamMessage struct {
	StreamID   string
	StreamName string
	Values     map[string]interface{}
}

// UploadMessage 上传事件（从 Redis Streams 解析）
//
// 字段约定：
// - upload_id: 上传事件 ID（网关生成，缺失时由本服务补发）
// - payload:   原始导出 JSON 文本（未解析）
type UploadMessage struct {
	UploadID string
	Payload  []byte
}

// ParseUploadMessage 从 Redis Streams 消息解析上传事件
func ParseUploadMessage(values map[string]interface{}) (*UploadMessage, error) {
	payload, ok := values["payload"].(string)
	if !ok || payload == "" {
		return nil, ErrMissingPayload
	}

	msg := &UploadMessage{Payload: []byte(payload)}
	if id, ok := values["upload_id"].(string); ok {
		msg.UploadID = id
	}
	return msg, nil
}
