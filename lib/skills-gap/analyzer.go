package skillsgap

import (
	"hr-onboarding-backend/lib/utils/helpers"
	"hr-onboarding-backend/models"
	skillsgapapimodels "hr-onboarding-backend/models/api/skills-gap"
	"sort"
	"strings"
)

const (
	// TopSkills число навыков в отчете
	TopSkills = 10
	// запас потребности 30%: required = ceil(available * 13 / 10)
	demandBufferNum = 13
	demandBufferDen = 10

	highPriorityGap   = 2
	mediumPriorityGap = 1
)

type skillCounter struct {
	name      string
	available int
	order     int
}

// Analyze считает нехватку по самым распространенным навыкам сотрудников.
// Навыки сравниваются без учета регистра, один сотрудник учитывается по навыку один раз.
func Analyze(employees []skillsgapapimodels.EmployeeSkills) skillsgapapimodels.Report {
	report := skillsgapapimodels.Report{
		EmployeeCount: len(employees),
		Entries:       []skillsgapapimodels.SkillGapEntry{},
	}
	counters := map[string]*skillCounter{}
	ordered := []*skillCounter{}
	for _, employee := range employees {
		for _, skill := range helpers.NormalizeSkills(employee.Skills) {
			key := strings.ToLower(skill)
			counter, exist := counters[key]
			if !exist {
				counter = &skillCounter{name: skill, order: len(ordered)}
				counters[key] = counter
				ordered = append(ordered, counter)
			}
			counter.available++
		}
	}
	if len(ordered) == 0 {
		return report
	}
	report.HasData = true
	report.DistinctSkills = len(ordered)

	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].available > ordered[b].available
	})
	if len(ordered) > TopSkills {
		ordered = ordered[:TopSkills]
	}
	for _, counter := range ordered {
		required := RequiredCount(counter.available)
		gap := max(0, required-counter.available)
		report.Entries = append(report.Entries, skillsgapapimodels.SkillGapEntry{
			Skill:     counter.name,
			Available: counter.available,
			Required:  required,
			Gap:       gap,
			Priority:  GapPriority(gap),
		})
	}
	return report
}

// RequiredCount ceil(available * 1.3) в целых числах
func RequiredCount(available int) int {
	return (available*demandBufferNum + demandBufferDen - 1) / demandBufferDen
}

func GapPriority(gap int) models.SkillPriority {
	switch {
	case gap >= highPriorityGap:
		return models.SkillPriorityHigh
	case gap == mediumPriorityGap:
		return models.SkillPriorityMedium
	default:
		return models.SkillPriorityLow
	}
}
