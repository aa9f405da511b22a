package policy

import (
	"strings"

	"schedview-snapshot/internal/models"
)

// ViewMode 查看角色
const (
	ViewModeOffice     = "office"     // 全量可见
	ViewModeTechnician = "technician" // 可脱敏
)

// fieldToggleMap 字段名 → 功能开关键
//
// 开关极性由键名前缀决定：Display* 为 false 时隐藏，
// Hide* 为 true 时隐藏。未列入该表的字段（如自由文本的
// 出入信息/内部备注）没有对应开关，在 technician 模式下
// 默认隐藏。
var fieldToggleMap = map[string]string{
	"customerName": "DisplayCustomerName",
	"address":      "DisplayAddress",
	"phone":        "DisplayCustomerPhone",
	"email":        "DisplayCustomerEmail",
	"billRate":     "HideRateInfo",
	"feeSplit":     "HideRateInfo",
	"homeStats":    "DisplayHomeStats",
	"tags":         "DisplayTags",
	"serviceScope": "DisplayServiceScope",
}

// ShouldHideField 判定某字段对当前查看者是否应隐藏
//
// 规则按序评估：
// 1. office 模式恒不隐藏，与开关无关
// 2. technician 模式下，字段映射到已配置的开关时，开关的
//    判定是权威结果，不再回退
// 3. 无可用开关（字段未映射、开关集合缺失、或开关未配置）
//    时 technician 模式默认隐藏
//
// 本实现采用后期修订的契约：不接受手动隐藏覆盖参数，
// 开关允许显示的字段不能再被手动隐藏。
func ShouldHideField(viewMode, fieldName string, toggles models.FeatureToggleSet) bool {
	if viewMode != ViewModeTechnician {
		return false
	}

	if fieldName != "" && toggles != nil {
		if toggleKey, mapped := fieldToggleMap[fieldName]; mapped {
			if value, configured := toggles[toggleKey]; configured {
				if strings.HasPrefix(toggleKey, "Hide") {
					return value
				}
				return !value
			}
		}
	}

	return true
}
