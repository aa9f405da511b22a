// Package transformer 实现排班导出数据的标准化管道
//
// 将外部排班 API 的两种导出格式转换为统一的排班快照：
// - 格式检测（flat / grouped，结构化判定，无启发式打分）
// - 字段提取（地址、联系方式、标签、房间、房屋统计、费率）
// - 团队注册表（去重 + 稳定排序 + 合成 Unassigned 团队）
// - 员工/班次聚合（按员工去重，逐条记录累积班次）
// - 元数据计算（日期范围、数量统计）
package transformer

import (
	"bytes"
	"encoding/json"

	"schedview-snapshot/internal/models"
)

// DetectFormat 检测导出数据的格式
//
// 判定规则（结构化、确定性）：
// - Result 为数组 → flat（Format A）
// - Result 为对象且 ServiceCompanyGroups 为数组 → grouped（DR-All-Data）
// - 其它 → ErrUnrecognizedFormat
func DetectFormat(raw []byte) (string, error) {
	var envelope models.RawEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", models.ErrMalformedInput
	}

	// null / 缺失的 Result 不属于任何已知格式
	result := bytes.TrimSpace(envelope.Result)
	if len(result) == 0 || string(result) == "null" {
		return "", models.ErrUnrecognizedFormat
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(result, &asArray); err == nil && result[0] == '[' {
		return models.FormatFlat, nil
	}

	var asObject struct {
		ServiceCompanyGroups json.RawMessage `json:"ServiceCompanyGroups"`
	}
	if err := json.Unmarshal(result, &asObject); err == nil {
		// ServiceCompanyGroups 必须是数组；null / 缺失 / 非数组均不识别
		groupsRaw := bytes.TrimSpace(asObject.ServiceCompanyGroups)
		if len(groupsRaw) > 0 && string(groupsRaw) != "null" && groupsRaw[0] == '[' {
			var groups []json.RawMessage
			if err := json.Unmarshal(groupsRaw, &groups); err == nil {
				return models.FormatGrouped, nil
			}
		}
	}

	return "", models.ErrUnrecognizedFormat
}
