// Package models 定义排班快照服务的数据模型
//
// 包含两部分：
// - 原始导出数据模型（raw.go）：外部排班 API 的两种导出格式
// - 标准化快照模型（本文件）：所有下游视图消费的唯一规范结构
package models

import "time"

// 固定的"未分配"团队常量
//
// 任何没有团队引用的任务都会被归入该团队，保证
// scheduledTeams 至少包含一个元素。
const (
	UnassignedTeamID   = "0"
	UnassignedTeamName = "Unassigned"

	// UnassignedSortOrder 排序哨兵值，保证 Unassigned 团队排在最后
	UnassignedSortOrder = 1 << 30
)

// 数据格式标签（由格式检测器产生）
const (
	FormatFlat    = "flat"    // Format A：Result 为任务数组
	FormatGrouped = "grouped" // DR-All-Data：任务按公司分组嵌套
)

// Team 标准化团队
type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"` // 十六进制颜色，如 "#4a90d9"
	SortOrder int    `json:"sortOrder"`
}

// Schedule 任务的排班时间（日期 + 起止时间，均为原样字符串）
type Schedule struct {
	Date      string `json:"date"` // "2006-01-02"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ContactInfo 客户联系方式（两项均可能为空）
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Tag 带来源的标签
//
// Origin 取值："job" / "home" / "customer" / "serviceSet"
type Tag struct {
	Label  string `json:"label"`
	Origin string `json:"origin"`
}

// 标签来源常量
const (
	TagOriginJob        = "job"
	TagOriginHome       = "home"
	TagOriginCustomer   = "customer"
	TagOriginServiceSet = "serviceSet"
)

// Room 房间信息（深度清洁策略的输入）
type Room struct {
	Name              string `json:"name"`
	Type              string `json:"type"` // "Wet" / "Dry" / "Other"，缺省为 "Other"
	DeepCleanCode     string `json:"deepCleanCode"`
	LastDeepCleanDate string `json:"lastDeepCleanDate"`
}

// HomeStats 房屋统计信息
type HomeStats struct {
	SquareFeet int    `json:"squareFeet"`
	Bedrooms   int    `json:"bedrooms"`
	Bathrooms  int    `json:"bathrooms"`
	Floors     int    `json:"floors"`
	Pets       string `json:"pets"`
}

// RateModifier 费率修正项（基础费用与折扣/附加费共用该结构）
type RateModifier struct {
	Name     string  `json:"Name"`
	Amount   float64 `json:"Amount"`
	FeeSplit bool    `json:"FeeSplit"`
}

// Job 标准化任务：一次排班工作的规范单元
type Job struct {
	ID           string   `json:"id"`
	CustomerName string   `json:"customerName"`
	Address      string   `json:"address"`
	ServiceType  string   `json:"serviceType"`
	ServiceScope string   `json:"serviceScope"`
	Schedule     Schedule `json:"schedule"`

	// ScheduledTeams 非空：源数据无团队引用时默认为 ["0"]
	ScheduledTeams []string `json:"scheduledTeams"`

	ContactInfo ContactInfo `json:"contactInfo"`

	// 自由文本说明字段（可能含 HTML，核心不做任何清洗）
	AccessInfo          string `json:"accessInfo"`
	InternalMemo        string `json:"internalMemo"`
	SpecialInstructions string `json:"specialInstructions"`

	Tags      []Tag      `json:"tags"`
	Rooms     []Room     `json:"rooms,omitempty"`
	HomeStats *HomeStats `json:"homeStats,omitempty"`

	// 费率字段
	BillRate           float64        `json:"billRate"`
	BaseFee            *RateModifier  `json:"baseFee,omitempty"`
	ServiceSetRateMods []RateModifier `json:"serviceSetRateMods"` // 周期性修正
	JobRateMods        []RateModifier `json:"jobRateMods"`        // 一次性修正
}

// Position 员工职位（由固定小整数编码表解析）
type Position struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Shift 员工班次：员工在某条原始记录中的一次出现
type Shift struct {
	JobID     string `json:"jobId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Employee 标准化员工
//
// TeamID 取首次出现记录中的团队，后续记录不覆盖。
type Employee struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	TeamID   string   `json:"teamId"`
	Position Position `json:"position"`
	Shifts   []Shift  `json:"shifts"`
}

// Company 公司（grouped 格式每组一个；flat 格式不含公司信息，列表为空）
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FeatureToggleSet 功能开关集合
//
// 来自源数据（grouped 格式按公司携带，合并时首个公司优先）。
// 核心不合成默认值：开关集合始终由调用方传入。
type FeatureToggleSet map[string]bool

// DataRange 快照覆盖的日期范围
type DataRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SnapshotStats 聚合统计
type SnapshotStats struct {
	TotalJobs      int `json:"totalJobs"`
	TotalTeams     int `json:"totalTeams"` // 不含合成的 Unassigned 团队
	TotalEmployees int `json:"totalEmployees"`
}

// SnapshotMetadata 快照元数据
type SnapshotMetadata struct {
	CompanyName    string           `json:"companyName"`
	LastUpdated    time.Time        `json:"lastUpdated"`
	DataFormat     string           `json:"dataFormat"` // FormatFlat / FormatGrouped
	DataRange      DataRange        `json:"dataRange"`
	Stats          SnapshotStats    `json:"stats"`
	FeatureToggles FeatureToggleSet `json:"featureToggles,omitempty"`
}

// ScheduleSnapshot 标准化排班快照：转换管道的唯一产物
//
// 一次上传事件恰好生成一个快照，之后不可变；
// 新上传整体替换旧快照，不存在增量更新。
type ScheduleSnapshot struct {
	Metadata  SnapshotMetadata `json:"metadata"`
	Companies []Company        `json:"companies"`
	Teams     []Team           `json:"teams"`
	Jobs      []Job            `json:"jobs"`
	Employees []Employee       `json:"employees"`
}
