package transformer

import (
	"time"

	"schedview-snapshot/internal/models"
)

// dateLayout 源数据的日期格式
const dateLayout = "2006-01-02"

// ComputeDataRange 计算快照覆盖的日期范围
//
// 只考虑日期非空的任务；日期按日历日期解析后比较，
// 不做字典序比较。无可用日期时两端均为空串。
func ComputeDataRange(jobs []models.Job) models.DataRange {
	var (
		minDate time.Time
		maxDate time.Time
		minStr  string
		maxStr  string
		found   bool
	)

	for _, job := range jobs {
		if job.Schedule.Date == "" {
			continue
		}
		parsed, err := time.Parse(dateLayout, job.Schedule.Date)
		if err != nil {
			continue
		}
		if !found {
			minDate, maxDate = parsed, parsed
			minStr, maxStr = job.Schedule.Date, job.Schedule.Date
			found = true
			continue
		}
		if parsed.Before(minDate) {
			minDate = parsed
			minStr = job.Schedule.Date
		}
		if parsed.After(maxDate) {
			maxDate = parsed
			maxStr = job.Schedule.Date
		}
	}

	return models.DataRange{StartDate: minStr, EndDate: maxStr}
}

// ComputeStats 计算聚合统计
//
// totalTeams 恒不计入合成的 Unassigned 团队。
func ComputeStats(jobs []models.Job, teams []models.Team, employees []models.Employee) models.SnapshotStats {
	return models.SnapshotStats{
		TotalJobs:      len(jobs),
		TotalTeams:     len(teams) - 1,
		TotalEmployees: len(employees),
	}
}
