package transformer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"schedview-snapshot/internal/models"
)

const flatExport = `{
	"Result": [
		{
			"JobID": 101,
			"CustomerName": "Dana Whitfield",
			"Address1": "12 Main St",
			"City": "Springfield",
			"State": "IL",
			"Zip": "62704",
			"ServiceType": "Recurring",
			"Date": "2025-01-05",
			"StartTime": "09:00",
			"EndTime": "11:00",
			"Teams": [
				{"TeamID": 3, "TeamName": "Blue", "TeamColor": "#00f", "SortOrder": 2}
			],
			"MobilePhone": "217-555-9999",
			"Emails": [{"Name": "Primary", "Email": "dana@example.com"}],
			"JobTags": ["rush"],
			"BaseFee": {"Name": "Base", "Amount": 100, "FeeSplit": true},
			"ServiceSetRateMods": [{"Name": "Pet fee", "Amount": 15, "FeeSplit": false}],
			"Employees": [
				{"EmployeeID": 7, "FirstName": "Sam", "LastName": "Ortiz", "PositionCode": 2, "TeamID": 3}
			]
		},
		{
			"JobID": 102,
			"CustomerName": "Lee Barton",
			"Date": "2025-01-01",
			"StartTime": "13:00",
			"EndTime": "15:00",
			"Employees": [
				{"EmployeeID": 7, "FirstName": "Sam", "LastName": "Ortiz", "PositionCode": 2, "TeamID": 3},
				{"EmployeeID": 0, "FirstName": "Ghost", "LastName": ""}
			]
		},
		{
			"JobID": 103,
			"CustomerName": "Pat Nguyen",
			"Date": "2025-01-10"
		}
	]
}`

const groupedExport = `{
	"Result": {
		"CompanyName": "Sparkle Group",
		"ServiceCompanyGroups": [
			{
				"CompanyID": 1,
				"CompanyName": "Sparkle North",
				"FeatureToggles": {"DisplayCustomerName": false, "HideRateInfo": true},
				"Jobs": [
					{
						"ID": 201,
						"Customer": {"Name": "Robin Hale", "Phone": "555-0000", "MobilePhone": "555-1111"},
						"Location": {"AddressLines": ["44 Oak Ave"], "City": "Portland", "Region": "OR", "PostalCode": "97201"},
						"Schedule": {"Date": "2025-02-01", "Start": "08:00", "End": "10:00"},
						"AssignedTeams": [{"TeamID": 5, "TeamName": "North", "SortOrder": 1}],
						"Staff": [{"ID": 9, "Name": "Kim Doyle", "Position": 1, "TeamID": 5}],
						"Rates": {"BaseFee": {"Name": "Base", "Amount": 120, "FeeSplit": true}}
					}
				]
			},
			{
				"CompanyID": 2,
				"CompanyName": "Sparkle South",
				"FeatureToggles": {"DisplayCustomerName": true, "DisplayAddress": true},
				"Jobs": [
					{"ID": 202, "Schedule": {"Date": "2025-02-03"}}
				]
			}
		]
	}
}`

func newTestTransformer() *SnapshotTransformer {
	return NewSnapshotTransformer(zap.NewNop())
}

func TestTransform_Flat(t *testing.T) {
	snapshot, err := newTestTransformer().Transform([]byte(flatExport))
	require.NoError(t, err)

	assert.Equal(t, models.FormatFlat, snapshot.Metadata.DataFormat)

	// Unassigned 团队总是排在最后
	teams := snapshot.Teams
	require.Len(t, teams, 2)
	assert.Equal(t, models.UnassignedTeamID, teams[len(teams)-1].ID)

	// 每个任务的团队列表非空；无团队引用的任务归入 "0"
	require.Len(t, snapshot.Jobs, 3)
	for _, job := range snapshot.Jobs {
		assert.GreaterOrEqual(t, len(job.ScheduledTeams), 1)
	}
	assert.Equal(t, []string{"3"}, snapshot.Jobs[0].ScheduledTeams)
	assert.Equal(t, []string{models.UnassignedTeamID}, snapshot.Jobs[1].ScheduledTeams)

	// 字段提取
	job := snapshot.Jobs[0]
	assert.Equal(t, "101", job.ID)
	assert.Equal(t, "12 Main St, Springfield, IL 62704", job.Address)
	assert.Equal(t, "217-555-9999", job.ContactInfo.Phone)
	assert.Equal(t, "dana@example.com", job.ContactInfo.Email)
	assert.Equal(t, []models.Tag{{Label: "rush", Origin: models.TagOriginJob}}, job.Tags)
	// BillRate 缺失时由基础费用与周期性修正预计算
	assert.Equal(t, 115.0, job.BillRate)

	// 员工聚合：ID 为 0 的引用被忽略；7 号员工出现在两条记录 → 两条班次
	require.Len(t, snapshot.Employees, 1)
	emp := snapshot.Employees[0]
	assert.Equal(t, "7", emp.ID)
	assert.Equal(t, "Sam Ortiz", emp.Name)
	assert.Equal(t, "Team Lead", emp.Position.Name)
	assert.Equal(t, "3", emp.TeamID)
	require.Len(t, emp.Shifts, 2)
	assert.Equal(t, "101", emp.Shifts[0].JobID)
	assert.Equal(t, "102", emp.Shifts[1].JobID)

	// 元数据
	assert.Equal(t, models.DataRange{StartDate: "2025-01-01", EndDate: "2025-01-10"}, snapshot.Metadata.DataRange)
	assert.Equal(t, 3, snapshot.Metadata.Stats.TotalJobs)
	assert.Equal(t, 1, snapshot.Metadata.Stats.TotalTeams)
	assert.Equal(t, 1, snapshot.Metadata.Stats.TotalEmployees)
}

func TestTransform_Grouped(t *testing.T) {
	snapshot, err := newTestTransformer().Transform([]byte(groupedExport))
	require.NoError(t, err)

	assert.Equal(t, models.FormatGrouped, snapshot.Metadata.DataFormat)
	assert.Equal(t, "Sparkle Group", snapshot.Metadata.CompanyName)

	require.Len(t, snapshot.Companies, 2)
	assert.Equal(t, models.Company{ID: "1", Name: "Sparkle North"}, snapshot.Companies[0])

	// 开关合并：首个公司携带的取值胜出
	toggles := snapshot.Metadata.FeatureToggles
	assert.False(t, toggles["DisplayCustomerName"])
	assert.True(t, toggles["HideRateInfo"])
	assert.True(t, toggles["DisplayAddress"])

	require.Len(t, snapshot.Jobs, 2)
	job := snapshot.Jobs[0]
	assert.Equal(t, "Robin Hale", job.CustomerName)
	assert.Equal(t, "555-1111", job.ContactInfo.Phone)
	assert.Equal(t, "44 Oak Ave, Portland, OR 97201", job.Address)
	assert.Equal(t, 120.0, job.BillRate)

	// 嵌套块全缺失的任务也能安全默认
	bare := snapshot.Jobs[1]
	assert.Equal(t, "Unknown Address", bare.Address)
	assert.Equal(t, []string{models.UnassignedTeamID}, bare.ScheduledTeams)

	require.Len(t, snapshot.Employees, 1)
	assert.Equal(t, "Kim Doyle", snapshot.Employees[0].Name)
	assert.Equal(t, "Cleaner", snapshot.Employees[0].Position.Name)
}

func TestTransform_IdempotentExceptLastUpdated(t *testing.T) {
	trans := newTestTransformer()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	trans.now = func() time.Time { return fixed }

	first, err := trans.Transform([]byte(flatExport))
	require.NoError(t, err)

	trans.now = func() time.Time { return fixed.Add(time.Hour) }
	second, err := trans.Transform([]byte(flatExport))
	require.NoError(t, err)

	assert.NotEqual(t, first.Metadata.LastUpdated, second.Metadata.LastUpdated)

	second.Metadata.LastUpdated = first.Metadata.LastUpdated
	assert.Equal(t, first, second)
}

func TestTransform_RecordWithoutIdentityFailsBatch(t *testing.T) {
	raw := []byte(`{"Result": [{"JobID": 1, "Date": "2025-01-01"}, {"CustomerName": "No ID"}]}`)

	_, err := newTestTransformer().Transform(raw)

	var transformErr *models.TransformError
	require.ErrorAs(t, err, &transformErr)
	assert.Equal(t, models.FormatFlat, transformErr.Format)
	assert.Equal(t, 1, transformErr.Index)
}

func TestTransform_UnrecognizedFormat(t *testing.T) {
	_, err := newTestTransformer().Transform([]byte(`{"Result": {"Other": true}}`))
	assert.ErrorIs(t, err, models.ErrUnrecognizedFormat)
}

func TestComputeDataRange_NoDates(t *testing.T) {
	jobs := []models.Job{{Schedule: models.Schedule{Date: ""}}}
	assert.Equal(t, models.DataRange{}, ComputeDataRange(jobs))
}
