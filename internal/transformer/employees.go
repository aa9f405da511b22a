package transformer

import (
	"strconv"

	"schedview-snapshot/internal/models"
)

// positionTable 职位编码表（固定小整数 → 职位）
//
// 未知或缺失编码回退到 Unassigned。
var positionTable = map[int]models.Position{
	1: {ID: 1, Name: "Cleaner", Color: "#4caf50"},
	2: {ID: 2, Name: "Team Lead", Color: "#2196f3"},
	3: {ID: 3, Name: "Trainer", Color: "#ff9800"},
	4: {ID: 4, Name: "Inspector", Color: "#9c27b0"},
	5: {ID: 5, Name: "Office", Color: "#607d8b"},
}

// unassignedPosition 未知编码的默认职位
var unassignedPosition = models.Position{ID: 0, Name: "Unassigned", Color: "#9e9e9e"}

// ResolvePosition 按编码查职位，未知编码返回 Unassigned
func ResolvePosition(code int) models.Position {
	if pos, ok := positionTable[code]; ok {
		return pos
	}
	return unassignedPosition
}

// EmployeeRegistry 员工/班次聚合器
//
// 按字符串化员工 ID 去重：首次出现时创建员工条目
// （此时捕获团队与职位，后续记录不再改变）；每次出现
// 且记录日期非空时追加一条班次。员工在 N 条日期非空的
// 记录中出现即有 N 条班次。
type EmployeeRegistry struct {
	byID  map[string]*models.Employee
	order []string
}

// NewEmployeeRegistry 创建员工聚合器
func NewEmployeeRegistry() *EmployeeRegistry {
	return &EmployeeRegistry{
		byID: make(map[string]*models.Employee),
	}
}

// Observe 登记一次员工出现
//
// 空 ID 或 0 视为无效引用，直接忽略。
func (r *EmployeeRegistry) Observe(employeeID int, name string, positionCode int, teamID string, shift models.Shift) {
	if employeeID == 0 {
		return
	}
	id := strconv.Itoa(employeeID)

	emp, exists := r.byID[id]
	if !exists {
		emp = &models.Employee{
			ID:       id,
			Name:     name,
			TeamID:   teamID,
			Position: ResolvePosition(positionCode),
			Shifts:   []models.Shift{},
		}
		r.byID[id] = emp
		r.order = append(r.order, id)
	}

	if shift.Date != "" {
		emp.Shifts = append(emp.Shifts, shift)
	}
}

// Employees 按首次出现顺序输出员工列表
func (r *EmployeeRegistry) Employees() []models.Employee {
	employees := make([]models.Employee, 0, len(r.order))
	for _, id := range r.order {
		employees = append(employees, *r.byID[id])
	}
	return employees
}
