package skillsgapapimodels

import "hr-onboarding-backend/models"

type SkillGapEntry struct {
	Skill     string               `json:"skill"`     // Навык
	Available int                  `json:"available"` // Сотрудников с навыком
	Required  int                  `json:"required"`  // Требуемое количество
	Gap       int                  `json:"gap"`       // Нехватка
	Priority  models.SkillPriority `json:"priority"`  // Приоритет найма
}

// Report результат анализа. HasData=false означает отсутствие данных,
// а не полную укомплектованность
type Report struct {
	HasData        bool            `json:"has_data"`
	EmployeeCount  int             `json:"employee_count"`
	DistinctSkills int             `json:"distinct_skills"`
	Entries        []SkillGapEntry `json:"entries"`
}

func (r Report) IsEmpty() bool {
	return !r.HasData
}

// EmployeeSkills набор навыков одного сотрудника
type EmployeeSkills struct {
	Skills []string
}

type SkillGapFilter struct {
	IncludeCandidates bool `json:"include_candidates" query:"include_candidates"` // учитывать кандидатов на всех этапах, а не только принятых
}

func (f SkillGapFilter) Stages() []models.CandidateStage {
	if f.IncludeCandidates {
		return nil
	}
	return []models.CandidateStage{models.StageAccepted}
}
