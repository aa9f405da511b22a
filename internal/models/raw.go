package models

import "encoding/json"

// 外部排班 API 的两种导出格式（PascalCase 键，原样接收，只读）。
//
// Format A（flat）：Result 为任务数组，每条记录自带团队/员工/费率。
// DR-All-Data（grouped）：Result.ServiceCompanyGroups 按公司分组，
// 任务嵌套在分组内，且每组携带功能开关。

// RawEnvelope 导出文件的顶层信封，仅用于格式检测
type RawEnvelope struct {
	Result json.RawMessage `json:"Result"`
}

// RawGroupedResult grouped 格式的 Result 对象
type RawGroupedResult struct {
	CompanyName          string            `json:"CompanyName"`
	ServiceCompanyGroups []RawCompanyGroup `json:"ServiceCompanyGroups"`
}

// RawCompanyGroup grouped 格式中的一个公司分组
type RawCompanyGroup struct {
	CompanyID      int             `json:"CompanyID"`
	CompanyName    string          `json:"CompanyName"`
	FeatureToggles map[string]bool `json:"FeatureToggles"`
	Jobs           []RawGroupedJob `json:"Jobs"`
}

// RawTeamRef 团队引用（两种格式共用）
type RawTeamRef struct {
	TeamID    int    `json:"TeamID"`
	TeamName  string `json:"TeamName"`
	TeamColor string `json:"TeamColor"`
	SortOrder int    `json:"SortOrder"`
}

// RawEmailEntry 带名称的邮箱条目；Name 非空的条目视为权威邮箱
type RawEmailEntry struct {
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

// RawRoom 房间原始记录
type RawRoom struct {
	RoomName          string `json:"RoomName"`
	RoomType          string `json:"RoomType"`
	DeepCleanCode     string `json:"DeepCleanCode"`
	LastDeepCleanDate string `json:"LastDeepCleanDate"`
}

// RawHomeStats 房屋统计原始记录
type RawHomeStats struct {
	SquareFeet int    `json:"SquareFeet"`
	Bedrooms   int    `json:"Bedrooms"`
	Bathrooms  int    `json:"Bathrooms"`
	Floors     int    `json:"Floors"`
	Pets       string `json:"Pets"`
}

// RawRateModifier 费率修正原始记录（与标准化结构同构）
type RawRateModifier struct {
	Name     string  `json:"Name"`
	Amount   float64 `json:"Amount"`
	FeeSplit bool    `json:"FeeSplit"`
}

// RawFlatEmployee flat 格式的员工引用
type RawFlatEmployee struct {
	EmployeeID   int    `json:"EmployeeID"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	PositionCode int    `json:"PositionCode"`
	TeamID       int    `json:"TeamID"`
}

// RawFlatJob Format A 的任务记录（扁平结构）
type RawFlatJob struct {
	JobID        int    `json:"JobID"`
	CustomerName string `json:"CustomerName"`

	Address1 string `json:"Address1"`
	Address2 string `json:"Address2"`
	City     string `json:"City"`
	State    string `json:"State"`
	Zip      string `json:"Zip"`

	ServiceType  string `json:"ServiceType"`
	ServiceScope string `json:"ServiceScope"`

	Date      string `json:"Date"`
	StartTime string `json:"StartTime"`
	EndTime   string `json:"EndTime"`

	Teams []RawTeamRef `json:"Teams"`

	Phone       string          `json:"Phone"`
	MobilePhone string          `json:"MobilePhone"`
	Emails      []RawEmailEntry `json:"Emails"`

	AccessInfo          string `json:"AccessInfo"`
	InternalMemo        string `json:"InternalMemo"`
	SpecialInstructions string `json:"SpecialInstructions"`

	JobTags        []string `json:"JobTags"`
	HomeTags       []string `json:"HomeTags"`
	CustomerTags   []string `json:"CustomerTags"`
	ServiceSetTags []string `json:"ServiceSetTags"`

	Rooms     []RawRoom     `json:"Rooms"`
	HomeStats *RawHomeStats `json:"HomeStats"`

	BillRate           float64           `json:"BillRate"`
	BaseFee            *RawRateModifier  `json:"BaseFee"`
	ServiceSetRateMods []RawRateModifier `json:"ServiceSetRateMods"`
	JobRateMods        []RawRateModifier `json:"JobRateMods"`

	Employees []RawFlatEmployee `json:"Employees"`
}

// RawCustomer grouped 格式的客户块
type RawCustomer struct {
	Name        string          `json:"Name"`
	Phone       string          `json:"Phone"`
	MobilePhone string          `json:"MobilePhone"`
	Emails      []RawEmailEntry `json:"Emails"`
}

// RawLocation grouped 格式的地址块
type RawLocation struct {
	AddressLines []string `json:"AddressLines"`
	City         string   `json:"City"`
	Region       string   `json:"Region"`
	PostalCode   string   `json:"PostalCode"`
}

// RawScheduleBlock grouped 格式的排班块
type RawScheduleBlock struct {
	Date  string `json:"Date"`
	Start string `json:"Start"`
	End   string `json:"End"`
}

// RawStaffRef grouped 格式的员工引用
type RawStaffRef struct {
	ID       int    `json:"ID"`
	Name     string `json:"Name"`
	Position int    `json:"Position"`
	TeamID   int    `json:"TeamID"`
}

// RawNotes grouped 格式的说明块
type RawNotes struct {
	Access   string `json:"Access"`
	Internal string `json:"Internal"`
	Special  string `json:"Special"`
}

// RawGroupedTags grouped 格式的分来源标签块
type RawGroupedTags struct {
	Job        []string `json:"Job"`
	Home       []string `json:"Home"`
	Customer   []string `json:"Customer"`
	ServiceSet []string `json:"ServiceSet"`
}

// RawRates grouped 格式的费率块
type RawRates struct {
	BillRate  float64           `json:"BillRate"`
	BaseFee   *RawRateModifier  `json:"BaseFee"`
	Recurring []RawRateModifier `json:"Recurring"`
	OneTime   []RawRateModifier `json:"OneTime"`
}

// RawGroupedJob DR-All-Data 格式的任务记录（层级结构）
type RawGroupedJob struct {
	ID            int               `json:"ID"`
	ServiceType   string            `json:"ServiceType"`
	ServiceScope  string            `json:"ServiceScope"`
	Customer      *RawCustomer      `json:"Customer"`
	Location      *RawLocation      `json:"Location"`
	Schedule      *RawScheduleBlock `json:"Schedule"`
	AssignedTeams []RawTeamRef      `json:"AssignedTeams"`
	Staff         []RawStaffRef     `json:"Staff"`
	Notes         *RawNotes         `json:"Notes"`
	Tags          *RawGroupedTags   `json:"Tags"`
	Rooms         []RawRoom         `json:"Rooms"`
	HomeStats     *RawHomeStats     `json:"HomeStats"`
	Rates         *RawRates         `json:"Rates"`
}
