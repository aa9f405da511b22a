package transformer

import (
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"schedview-snapshot/internal/models"
	"schedview-snapshot/internal/policy"
)

// FlatTransformer Format A（flat）格式转换器
//
// Result 为任务数组，每条记录自带团队/员工/费率，
// 不携带公司分组与功能开关。
type FlatTransformer struct {
	logger *zap.Logger
}

// NewFlatTransformer 创建 flat 格式转换器
func NewFlatTransformer(logger *zap.Logger) *FlatTransformer {
	return &FlatTransformer{logger: logger}
}

// Transform 转换 flat 格式的 Result 数组
//
// 转换流程：
// 1. 解析任务数组
// 2. 逐条记录：登记团队、提取字段、聚合员工班次
// 3. 输出任务/团队/员工集合（元数据由上层装配器计算）
func (t *FlatTransformer) Transform(result json.RawMessage) (*transformResult, error) {
	var rawJobs []models.RawFlatJob
	if err := json.Unmarshal(result, &rawJobs); err != nil {
		return nil, models.ErrMalformedInput
	}

	teams := NewTeamRegistry()
	employees := NewEmployeeRegistry()
	jobs := make([]models.Job, 0, len(rawJobs))

	for i, raw := range rawJobs {
		if raw.JobID == 0 {
			return nil, models.NewTransformError(models.FormatFlat, i, "record has no usable job identity")
		}

		job := t.buildJob(raw, teams)
		jobs = append(jobs, job)

		for _, staff := range raw.Employees {
			employees.Observe(
				staff.EmployeeID,
				strings.TrimSpace(staff.FirstName+" "+staff.LastName),
				staff.PositionCode,
				strconv.Itoa(staff.TeamID),
				models.Shift{
					JobID:     job.ID,
					Date:      raw.Date,
					StartTime: raw.StartTime,
					EndTime:   raw.EndTime,
				},
			)
		}
	}

	return &transformResult{
		companies: []models.Company{},
		teams:     teams.Teams(),
		jobs:      jobs,
		employees: employees.Employees(),
	}, nil
}

// buildJob 将一条 flat 记录映射为标准化任务
func (t *FlatTransformer) buildJob(raw models.RawFlatJob, teams *TeamRegistry) models.Job {
	job := models.Job{
		ID:           strconv.Itoa(raw.JobID),
		CustomerName: raw.CustomerName,
		Address:      buildAddress([]string{raw.Address1, raw.Address2}, raw.City, raw.State, raw.Zip),
		ServiceType:  raw.ServiceType,
		ServiceScope: raw.ServiceScope,
		Schedule: models.Schedule{
			Date:      raw.Date,
			StartTime: raw.StartTime,
			EndTime:   raw.EndTime,
		},
		ScheduledTeams:      teams.TeamIDs(raw.Teams),
		ContactInfo:         extractContact(raw.Phone, raw.MobilePhone, raw.Emails),
		AccessInfo:          raw.AccessInfo,
		InternalMemo:        raw.InternalMemo,
		SpecialInstructions: raw.SpecialInstructions,
		Tags:                collectTags(raw.JobTags, raw.HomeTags, raw.CustomerTags, raw.ServiceSetTags),
		Rooms:               extractRooms(raw.Rooms),
		HomeStats:           extractHomeStats(raw.HomeStats),
		BillRate:            raw.BillRate,
		BaseFee:             convertBaseFee(raw.BaseFee),
		ServiceSetRateMods:  convertRateMods(raw.ServiceSetRateMods),
		JobRateMods:         convertRateMods(raw.JobRateMods),
	}

	// 源记录未给出账单金额时，由基础费用和周期性修正预计算
	if job.BillRate == 0 && job.BaseFee != nil {
		breakdown := policy.ComputeRateBreakdown(job.BaseFee, job.ServiceSetRateMods, nil, true, false)
		job.BillRate = breakdown.TotalAmount
	}

	return job
}
