package transformer

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"schedview-snapshot/internal/models"
	"schedview-snapshot/internal/policy"
)

// GroupedTransformer DR-All-Data（grouped）格式转换器
//
// Result.ServiceCompanyGroups 按公司分组，任务嵌套在分组内；
// 每组携带功能开关，合并时首个公司的取值优先。
type GroupedTransformer struct {
	logger *zap.Logger
}

// NewGroupedTransformer 创建 grouped 格式转换器
func NewGroupedTransformer(logger *zap.Logger) *GroupedTransformer {
	return &GroupedTransformer{logger: logger}
}

// Transform 转换 grouped 格式的 Result 对象
func (t *GroupedTransformer) Transform(result json.RawMessage) (*transformResult, error) {
	var grouped models.RawGroupedResult
	if err := json.Unmarshal(result, &grouped); err != nil {
		return nil, models.ErrMalformedInput
	}

	teams := NewTeamRegistry()
	employees := NewEmployeeRegistry()
	companies := make([]models.Company, 0, len(grouped.ServiceCompanyGroups))
	toggles := models.FeatureToggleSet{}
	var jobs []models.Job

	recordIndex := 0
	for _, group := range grouped.ServiceCompanyGroups {
		companies = append(companies, models.Company{
			ID:   strconv.Itoa(group.CompanyID),
			Name: group.CompanyName,
		})

		// 合并功能开关：首个携带某开关的公司胜出
		for name, value := range group.FeatureToggles {
			if _, exists := toggles[name]; !exists {
				toggles[name] = value
			}
		}

		for _, raw := range group.Jobs {
			if raw.ID == 0 {
				return nil, models.NewTransformError(models.FormatGrouped, recordIndex, "record has no usable job identity")
			}

			job := t.buildJob(raw, teams)
			jobs = append(jobs, job)

			for _, staff := range raw.Staff {
				employees.Observe(
					staff.ID,
					staff.Name,
					staff.Position,
					strconv.Itoa(staff.TeamID),
					models.Shift{
						JobID:     job.ID,
						Date:      job.Schedule.Date,
						StartTime: job.Schedule.StartTime,
						EndTime:   job.Schedule.EndTime,
					},
				)
			}
			recordIndex++
		}
	}

	if jobs == nil {
		jobs = []models.Job{}
	}

	return &transformResult{
		companyName: grouped.CompanyName,
		companies:   companies,
		teams:       teams.Teams(),
		jobs:        jobs,
		employees:   employees.Employees(),
		toggles:     toggles,
	}, nil
}

// buildJob 将一条 grouped 记录映射为标准化任务
//
// 所有嵌套块都可能缺失，逐块判空后再取字段。
func (t *GroupedTransformer) buildJob(raw models.RawGroupedJob, teams *TeamRegistry) models.Job {
	job := models.Job{
		ID:             strconv.Itoa(raw.ID),
		ServiceType:    raw.ServiceType,
		ServiceScope:   raw.ServiceScope,
		ScheduledTeams: teams.TeamIDs(raw.AssignedTeams),
		Rooms:          extractRooms(raw.Rooms),
		HomeStats:      extractHomeStats(raw.HomeStats),
	}

	if raw.Customer != nil {
		job.CustomerName = raw.Customer.Name
		job.ContactInfo = extractContact(raw.Customer.Phone, raw.Customer.MobilePhone, raw.Customer.Emails)
	}

	if raw.Location != nil {
		job.Address = buildAddress(raw.Location.AddressLines, raw.Location.City, raw.Location.Region, raw.Location.PostalCode)
	} else {
		job.Address = "Unknown Address"
	}

	if raw.Schedule != nil {
		job.Schedule = models.Schedule{
			Date:      raw.Schedule.Date,
			StartTime: raw.Schedule.Start,
			EndTime:   raw.Schedule.End,
		}
	}

	if raw.Notes != nil {
		job.AccessInfo = raw.Notes.Access
		job.InternalMemo = raw.Notes.Internal
		job.SpecialInstructions = raw.Notes.Special
	}

	if raw.Tags != nil {
		job.Tags = collectTags(raw.Tags.Job, raw.Tags.Home, raw.Tags.Customer, raw.Tags.ServiceSet)
	} else {
		job.Tags = []models.Tag{}
	}

	if raw.Rates != nil {
		job.BillRate = raw.Rates.BillRate
		job.BaseFee = convertBaseFee(raw.Rates.BaseFee)
		job.ServiceSetRateMods = convertRateMods(raw.Rates.Recurring)
		job.JobRateMods = convertRateMods(raw.Rates.OneTime)
	} else {
		job.ServiceSetRateMods = []models.RateModifier{}
		job.JobRateMods = []models.RateModifier{}
	}

	if job.BillRate == 0 && job.BaseFee != nil {
		breakdown := policy.ComputeRateBreakdown(job.BaseFee, job.ServiceSetRateMods, nil, true, false)
		job.BillRate = breakdown.TotalAmount
	}

	return job
}
