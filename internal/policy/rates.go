// Package policy 实现作用在标准化快照之上的两类策略引擎：
// 费率/房间策略（账单拆分、深度清洁判定）与字段可见性
// （基于角色与功能开关的脱敏）。
package policy

import "schedview-snapshot/internal/models"

// RateBreakdown 费率拆分结果
type RateBreakdown struct {
	TotalAmount    float64 `json:"totalAmount"`
	FeeSplitAmount float64 `json:"feeSplitAmount"`
}

// ComputeRateBreakdown 计算账单总额与分摊总额
//
// 规则：
// - showAmounts 为 false 时完全不做累加（两项均为 0）：
//   这是算术上游的隐私闸门，不是显示层遮罩
// - hideDiscounts 为 true 时，Amount < 0 的修正项从两个
//   总额中整体剔除（不只是视觉隐藏）
// - TotalAmount 累加未被剔除的基础费用与全部修正项；
//   FeeSplitAmount 只累加其中 FeeSplit 为 true 的项
// - 金额为普通十进制数，核心不做货币舍入
func ComputeRateBreakdown(
	baseFee *models.RateModifier,
	serviceSetMods []models.RateModifier,
	jobMods []models.RateModifier,
	showAmounts bool,
	hideDiscounts bool,
) RateBreakdown {
	breakdown := RateBreakdown{}
	if !showAmounts {
		return breakdown
	}

	accumulate := func(mod models.RateModifier) {
		if hideDiscounts && mod.Amount < 0 {
			return
		}
		breakdown.TotalAmount += mod.Amount
		if mod.FeeSplit {
			breakdown.FeeSplitAmount += mod.Amount
		}
	}

	if baseFee != nil {
		accumulate(*baseFee)
	}
	for _, mod := range serviceSetMods {
		accumulate(mod)
	}
	for _, mod := range jobMods {
		accumulate(mod)
	}

	return breakdown
}
