// Package repository 提供快照上传归档的 PostgreSQL 访问层
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"schedview-snapshot/internal/models"
)

// UploadRecord 一次上传的归档行（不含完整快照）
type UploadRecord struct {
	UploadID       string    `json:"uploadId"`
	CompanyName    string    `json:"companyName"`
	DataFormat     string    `json:"dataFormat"`
	UploadedAt     time.Time `json:"uploadedAt"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	TotalJobs      int       `json:"totalJobs"`
	TotalTeams     int       `json:"totalTeams"`
	TotalEmployees int       `json:"totalEmployees"`
}

// SnapshotRepository 快照归档仓库
//
// 每次成功处理的上传写入一行：元数据列 + 完整快照（JSONB）。
// KV 存储只保留当前快照，历史追溯靠这里。
type SnapshotRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSnapshotRepository 创建快照归档仓库
func NewSnapshotRepository(db *sql.DB, logger *zap.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		logger: logger,
	}
}

// Insert 归档一次上传
func (r *SnapshotRepository) Insert(uploadID string, snapshot *models.ScheduleSnapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO schedule_uploads (
			upload_id,
			company_name,
			data_format,
			uploaded_at,
			start_date,
			end_date,
			total_jobs,
			total_teams,
			total_employees,
			snapshot
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err = r.db.Exec(
		query,
		uploadID,
		snapshot.Metadata.CompanyName,
		snapshot.Metadata.DataFormat,
		snapshot.Metadata.LastUpdated,
		snapshot.Metadata.DataRange.StartDate,
		snapshot.Metadata.DataRange.EndDate,
		snapshot.Metadata.Stats.TotalJobs,
		snapshot.Metadata.Stats.TotalTeams,
		snapshot.Metadata.Stats.TotalEmployees,
		snapshotJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload %s: %w", uploadID, err)
	}
	return nil
}

// GetLatestSnapshot 读取最近一次上传的完整快照
func (r *SnapshotRepository) GetLatestSnapshot() (*models.ScheduleSnapshot, error) {
	query := `
		SELECT snapshot
		FROM schedule_uploads
		ORDER BY uploaded_at DESC
		LIMIT 1
	`

	var snapshotJSON []byte
	err := r.db.QueryRow(query).Scan(&snapshotJSON)
	if err == sql.ErrNoRows {
		return nil, models.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	var snapshot models.ScheduleSnapshot
	if err := json.Unmarshal(snapshotJSON, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archived snapshot: %w", err)
	}
	return &snapshot, nil
}

// ListUploads 按时间倒序列出上传历史
func (r *SnapshotRepository) ListUploads(limit int) ([]UploadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			upload_id,
			company_name,
			data_format,
			uploaded_at,
			start_date,
			end_date,
			total_jobs,
			total_teams,
			total_employees
		FROM schedule_uploads
		ORDER BY uploaded_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	var records []UploadRecord
	for rows.Next() {
		var rec UploadRecord
		if err := rows.Scan(
			&rec.UploadID,
			&rec.CompanyName,
			&rec.DataFormat,
			&rec.UploadedAt,
			&rec.StartDate,
			&rec.EndDate,
			&rec.TotalJobs,
			&rec.TotalTeams,
			&rec.TotalEmployees,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
