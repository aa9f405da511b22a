package policy

import (
	"strings"
	"time"

	"schedview-snapshot/internal/models"
)

// DC code 取值（大小写不敏感比较）
const (
	dcAlways = "always"
	dcNever  = "never"
)

// roomTypeOrder 房间类型的固定展示顺序（仅保留实际出现的类型）
var roomTypeOrder = []string{"Wet", "Dry", "Other"}

// RoomGroup 单个房间类型分组及其深度清洁判定结果
type RoomGroup struct {
	Type string        `json:"type"`
	Due  []models.Room `json:"due"`
}

// SelectDeepCleanDue 在同一类型的房间中选出需要深度清洁的子集
//
// 三态策略码：
// - "always"：无条件入选
// - "never"：无论日期，永不入选
// - 其它（含空）：若 lastDeepCleanDate 非空则竞争唯一的
//   "最旧优先"名额——但只要存在 "always" 房间，该名额作废。
//   竞争时日期严格更早者替换在位者，相等不替换（先到先得）。
//
// 结果或者是全部 "always" 房间，或者至多一个最旧房间，不混合。
func SelectDeepCleanDue(rooms []models.Room) []models.Room {
	var always []models.Room
	var oldest *models.Room
	var oldestDate time.Time

	for i := range rooms {
		room := rooms[i]
		code := strings.ToLower(strings.TrimSpace(room.DeepCleanCode))

		switch code {
		case dcAlways:
			always = append(always, room)
		case dcNever:
			// 永不入选
		default:
			if len(always) > 0 || room.LastDeepCleanDate == "" {
				continue
			}
			parsed, err := time.Parse("2006-01-02", room.LastDeepCleanDate)
			if err != nil {
				continue
			}
			if oldest == nil || parsed.Before(oldestDate) {
				candidate := room
				oldest = &candidate
				oldestDate = parsed
			}
		}
	}

	if len(always) > 0 {
		return always
	}
	if oldest != nil {
		return []models.Room{*oldest}
	}
	return nil
}

// GroupDeepCleanDue 按类型分组并逐组判定
//
// 只有 Wet / Dry 是独立分组，其余类型（含空、未知）一律归入 "Other"；
// 分组顺序固定为 Wet → Dry → Other，只输出实际出现的类型。
func GroupDeepCleanDue(rooms []models.Room) []RoomGroup {
	byType := make(map[string][]models.Room)
	for _, room := range rooms {
		roomType := room.Type
		if roomType != "Wet" && roomType != "Dry" {
			roomType = "Other"
		}
		byType[roomType] = append(byType[roomType], room)
	}

	var groups []RoomGroup
	for _, roomType := range roomTypeOrder {
		typed, present := byType[roomType]
		if !present {
			continue
		}
		groups = append(groups, RoomGroup{
			Type: roomType,
			Due:  SelectDeepCleanDue(typed),
		})
	}
	return groups
}
