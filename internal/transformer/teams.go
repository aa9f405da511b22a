package transformer

import (
	"sort"
	"strconv"

	"schedview-snapshot/internal/models"
)

// TeamRegistry 团队注册表
//
// 按字符串化的团队 ID 去重（首次出现的值生效，后续重复不覆盖），
// 保持插入顺序以便排序时稳定破平。注册表始终以合成的
// Unassigned 团队（ID "0"）作为种子。
type TeamRegistry struct {
	byID  map[string]models.Team
	order []string
}

// NewTeamRegistry 创建团队注册表（已含 Unassigned 种子）
func NewTeamRegistry() *TeamRegistry {
	r := &TeamRegistry{
		byID: make(map[string]models.Team),
	}
	r.byID[models.UnassignedTeamID] = models.Team{
		ID:        models.UnassignedTeamID,
		Name:      models.UnassignedTeamName,
		Color:     "#9e9e9e",
		SortOrder: models.UnassignedSortOrder,
	}
	r.order = append(r.order, models.UnassignedTeamID)
	return r
}

// Observe 登记一个团队引用，返回其字符串化 ID
func (r *TeamRegistry) Observe(ref models.RawTeamRef) string {
	id := strconv.Itoa(ref.TeamID)
	if _, exists := r.byID[id]; !exists {
		r.byID[id] = models.Team{
			ID:        id,
			Name:      ref.TeamName,
			Color:     ref.TeamColor,
			SortOrder: ref.SortOrder,
		}
		r.order = append(r.order, id)
	}
	return id
}

// TeamIDs 登记一条记录的全部团队引用并返回 scheduledTeams
//
// 无任何团队引用时返回 ["0"]，保证任务的团队列表非空。
func (r *TeamRegistry) TeamIDs(refs []models.RawTeamRef) []string {
	if len(refs) == 0 {
		return []string{models.UnassignedTeamID}
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, r.Observe(ref))
	}
	return ids
}

// Teams 输出按 SortOrder 升序的团队列表（稳定排序：平局按插入顺序）
func (r *TeamRegistry) Teams() []models.Team {
	teams := make([]models.Team, 0, len(r.order))
	for _, id := range r.order {
		teams = append(teams, r.byID[id])
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].SortOrder < teams[j].SortOrder
	})
	return teams
}
