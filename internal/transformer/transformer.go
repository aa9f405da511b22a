package transformer

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"schedview-snapshot/internal/models"
)

// transformResult 单次格式转换的中间产物（由装配器补齐元数据）
type transformResult struct {
	companyName string
	companies   []models.Company
	teams       []models.Team
	jobs        []models.Job
	employees   []models.Employee
	toggles     models.FeatureToggleSet
}

// SnapshotTransformer 快照装配器：标准化管道的入口
//
// 管道是同步的纯调用链：检测格式 → 按格式转换 →
// 计算元数据 → 装配快照。同一输入重复转换除
// lastUpdated 外逐字段相等。
type SnapshotTransformer struct {
	flat    *FlatTransformer
	grouped *GroupedTransformer
	logger  *zap.Logger

	// now 可注入时钟（测试用）；默认 time.Now
	now func() time.Time
}

// NewSnapshotTransformer 创建快照装配器
func NewSnapshotTransformer(logger *zap.Logger) *SnapshotTransformer {
	return &SnapshotTransformer{
		flat:    NewFlatTransformer(logger),
		grouped: NewGroupedTransformer(logger),
		logger:  logger,
		now:     time.Now,
	}
}

// Transform 将一份原始导出 JSON 转换为标准化快照
//
// 错误都是终止性的：一条坏记录使整批上传失败，
// 不做逐条跳过（poison 记录由调用方整体丢弃）。
func (t *SnapshotTransformer) Transform(raw []byte) (*models.ScheduleSnapshot, error) {
	format, err := DetectFormat(raw)
	if err != nil {
		return nil, err
	}

	var envelope models.RawEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, models.ErrMalformedInput
	}

	var result *transformResult
	switch format {
	case models.FormatFlat:
		result, err = t.flat.Transform(envelope.Result)
	case models.FormatGrouped:
		result, err = t.grouped.Transform(envelope.Result)
	}
	if err != nil {
		return nil, err
	}

	snapshot := &models.ScheduleSnapshot{
		Metadata: models.SnapshotMetadata{
			CompanyName:    result.companyName,
			LastUpdated:    t.now(),
			DataFormat:     format,
			DataRange:      ComputeDataRange(result.jobs),
			Stats:          ComputeStats(result.jobs, result.teams, result.employees),
			FeatureToggles: result.toggles,
		},
		Companies: result.companies,
		Teams:     result.teams,
		Jobs:      result.jobs,
		Employees: result.employees,
	}

	t.logger.Info("Transformed schedule export",
		zap.String("format", format),
		zap.Int("jobs", snapshot.Metadata.Stats.TotalJobs),
		zap.Int("teams", snapshot.Metadata.Stats.TotalTeams),
		zap.Int("employees", snapshot.Metadata.Stats.TotalEmployees),
	)

	return snapshot, nil
}
