package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schedview-snapshot/internal/models"
	"schedview-snapshot/internal/policy"
	"schedview-snapshot/internal/repository"
)

// maxUploadBytes 上传体积上限（全量导出实测在几 MB 以内）
const maxUploadBytes = 32 << 20

// SnapshotAPI handler 依赖的服务能力
type SnapshotAPI interface {
	ProcessUpload(ctx context.Context, uploadID string, payload []byte) (*models.ScheduleSnapshot, error)
	CurrentSnapshot(ctx context.Context) (*models.ScheduleSnapshot, error)
	ListUploads(limit int) ([]repository.UploadRecord, error)
}

// ScheduleHandler 排班快照相关的 HTTP handler
type ScheduleHandler struct {
	api    SnapshotAPI
	logger *zap.Logger
}

// NewScheduleHandler 创建排班快照 handler
func NewScheduleHandler(api SnapshotAPI, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{api: api, logger: logger}
}

// UploadResult 上传响应体
type UploadResult struct {
	UploadID string                  `json:"uploadId"`
	Metadata models.SnapshotMetadata `json:"metadata"`
}

// Upload POST /api/v1/schedule/upload
//
// 请求体为原始导出 JSON。格式/记录类错误返回 400，
// 其余错误返回 500。
func (h *ScheduleHandler) Upload(w http.ResponseWriter, req *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(req.Body, maxUploadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("failed to read request body"))
		return
	}

	uploadID := uuid.NewString()
	snapshot, err := h.api.ProcessUpload(req.Context(), uploadID, payload)
	if err != nil {
		status := http.StatusInternalServerError
		var transformErr *models.TransformError
		if errors.Is(err, models.ErrMalformedInput) ||
			errors.Is(err, models.ErrUnrecognizedFormat) ||
			errors.As(err, &transformErr) {
			status = http.StatusBadRequest
		}
		h.logger.Warn("Upload rejected",
			zap.String("upload_id", uploadID),
			zap.Int("status", status),
			zap.Error(err),
		)
		writeJSON(w, status, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(UploadResult{
		UploadID: uploadID,
		Metadata: snapshot.Metadata,
	}))
}

// GetSnapshot GET /api/v1/schedule/snapshot
func (h *ScheduleHandler) GetSnapshot(w http.ResponseWriter, req *http.Request) {
	snapshot, err := h.currentSnapshot(req)
	if err != nil {
		if errors.Is(err, models.ErrSnapshotNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("no snapshot available"))
			return
		}
		h.logger.Error("Failed to load snapshot", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load snapshot"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(snapshot))
}

// ListUploads GET /api/v1/schedule/uploads?limit=
func (h *ScheduleHandler) ListUploads(w http.ResponseWriter, req *http.Request) {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	records, err := h.api.ListUploads(limit)
	if err != nil {
		h.logger.Error("Failed to list uploads", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list uploads"))
		return
	}
	if records == nil {
		records = []repository.UploadRecord{}
	}
	writeJSON(w, http.StatusOK, Ok(records))
}

// VisibilityResult 字段可见性响应体
type VisibilityResult struct {
	ViewMode string `json:"viewMode"`
	Field    string `json:"field"`
	Hidden   bool   `json:"hidden"`
}

// FieldVisibility GET /api/v1/schedule/field-visibility?viewMode=&field=
//
// 用当前快照携带的功能开关评估字段可见性。
func (h *ScheduleHandler) FieldVisibility(w http.ResponseWriter, req *http.Request) {
	viewMode := req.URL.Query().Get("viewMode")
	field := req.URL.Query().Get("field")
	if viewMode != policy.ViewModeOffice && viewMode != policy.ViewModeTechnician {
		writeJSON(w, http.StatusBadRequest, Fail("viewMode must be 'office' or 'technician'"))
		return
	}

	var toggles models.FeatureToggleSet
	if snapshot, err := h.currentSnapshot(req); err == nil {
		toggles = snapshot.Metadata.FeatureToggles
	}

	writeJSON(w, http.StatusOK, Ok(VisibilityResult{
		ViewMode: viewMode,
		Field:    field,
		Hidden:   policy.ShouldHideField(viewMode, field, toggles),
	}))
}

// DeepCleanDue GET /api/v1/schedule/deep-clean-due?jobId=
//
// 对单个任务的房间列表按类型执行深度清洁判定。
func (h *ScheduleHandler) DeepCleanDue(w http.ResponseWriter, req *http.Request) {
	jobID := req.URL.Query().Get("jobId")
	if jobID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("jobId is required"))
		return
	}

	snapshot, err := h.currentSnapshot(req)
	if err != nil {
		if errors.Is(err, models.ErrSnapshotNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("no snapshot available"))
			return
		}
		h.logger.Error("Failed to load snapshot", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load snapshot"))
		return
	}

	for _, job := range snapshot.Jobs {
		if job.ID == jobID {
			groups := policy.GroupDeepCleanDue(job.Rooms)
			if groups == nil {
				groups = []policy.RoomGroup{}
			}
			writeJSON(w, http.StatusOK, Ok(groups))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, Fail("job not found"))
}

func (h *ScheduleHandler) currentSnapshot(req *http.Request) (*models.ScheduleSnapshot, error) {
	return h.api.CurrentSnapshot(req.Context())
}
