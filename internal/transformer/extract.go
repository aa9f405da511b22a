package transformer

import (
	"strings"

	"schedview-snapshot/internal/models"
)

// 字段提取辅助函数：两种格式共用的纯映射。
// 统一的空值约定：缺失标量取空串/零值，缺失数组取空列表。

// buildAddress 拼接地址
//
// 非空的地址行与"城市, 区域 邮编"行用 ", " 连接；
// 所有成分都为空时返回字面量 "Unknown Address"。
func buildAddress(lines []string, city, region, postal string) string {
	parts := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	city = strings.TrimSpace(city)
	regionPostal := strings.TrimSpace(strings.TrimSpace(region) + " " + strings.TrimSpace(postal))
	var locality string
	switch {
	case city != "" && regionPostal != "":
		locality = city + ", " + regionPostal
	case city != "":
		locality = city
	default:
		locality = regionPostal
	}
	if locality != "" {
		parts = append(parts, locality)
	}

	if len(parts) == 0 {
		return "Unknown Address"
	}
	return strings.Join(parts, ", ")
}

// extractContact 提取联系方式
//
// 电话：手机号优先于座机；邮箱：Name 非空的条目视为权威，
// 否则取第一个非空邮箱。
func extractContact(phone, mobile string, emails []models.RawEmailEntry) models.ContactInfo {
	contact := models.ContactInfo{}

	if mobile != "" {
		contact.Phone = mobile
	} else {
		contact.Phone = phone
	}

	for _, entry := range emails {
		if entry.Name != "" && entry.Email != "" {
			contact.Email = entry.Email
			return contact
		}
	}
	for _, entry := range emails {
		if entry.Email != "" {
			contact.Email = entry.Email
			break
		}
	}
	return contact
}

// collectTags 按来源合并标签
func collectTags(jobTags, homeTags, customerTags, serviceSetTags []string) []models.Tag {
	tags := make([]models.Tag, 0, len(jobTags)+len(homeTags)+len(customerTags)+len(serviceSetTags))
	appendTags := func(labels []string, origin string) {
		for _, label := range labels {
			if label == "" {
				continue
			}
			tags = append(tags, models.Tag{Label: label, Origin: origin})
		}
	}
	appendTags(jobTags, models.TagOriginJob)
	appendTags(homeTags, models.TagOriginHome)
	appendTags(customerTags, models.TagOriginCustomer)
	appendTags(serviceSetTags, models.TagOriginServiceSet)
	return tags
}

// extractRooms 转换房间列表；RoomType 缺省为 "Other"
func extractRooms(raw []models.RawRoom) []models.Room {
	if len(raw) == 0 {
		return nil
	}
	rooms := make([]models.Room, 0, len(raw))
	for _, r := range raw {
		roomType := r.RoomType
		if roomType == "" {
			roomType = "Other"
		}
		rooms = append(rooms, models.Room{
			Name:              r.RoomName,
			Type:              roomType,
			DeepCleanCode:     r.DeepCleanCode,
			LastDeepCleanDate: r.LastDeepCleanDate,
		})
	}
	return rooms
}

// extractHomeStats 转换房屋统计；整块缺失时返回 nil
func extractHomeStats(raw *models.RawHomeStats) *models.HomeStats {
	if raw == nil {
		return nil
	}
	return &models.HomeStats{
		SquareFeet: raw.SquareFeet,
		Bedrooms:   raw.Bedrooms,
		Bathrooms:  raw.Bathrooms,
		Floors:     raw.Floors,
		Pets:       raw.Pets,
	}
}

// convertRateMod 单个费率修正项
func convertRateMod(raw models.RawRateModifier) models.RateModifier {
	return models.RateModifier{Name: raw.Name, Amount: raw.Amount, FeeSplit: raw.FeeSplit}
}

// convertRateMods 费率修正列表；缺失时返回空列表（非 nil 由调用方决定）
func convertRateMods(raw []models.RawRateModifier) []models.RateModifier {
	mods := make([]models.RateModifier, 0, len(raw))
	for _, m := range raw {
		mods = append(mods, convertRateMod(m))
	}
	return mods
}

// convertBaseFee 基础费用；缺失时返回 nil
func convertBaseFee(raw *models.RawRateModifier) *models.RateModifier {
	if raw == nil {
		return nil
	}
	fee := convertRateMod(*raw)
	return &fee
}
