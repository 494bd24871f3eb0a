package skillsgap

import (
	candidatestore "hr-onboarding-backend/lib/candidate/store"
	skillsgapapimodels "hr-onboarding-backend/models/api/skills-gap"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Report(filter skillsgapapimodels.SkillGapFilter) (skillsgapapimodels.Report, error)
}

var Instance Provider

func NewHandler(store candidatestore.Provider) {
	Instance = NewInstance(store)
}

func NewInstance(store candidatestore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store candidatestore.Provider
}

func (i impl) Report(filter skillsgapapimodels.SkillGapFilter) (skillsgapapimodels.Report, error) {
	list, err := i.store.ListSkills(filter.Stages())
	if err != nil {
		log.WithError(err).Error("ошибка получения навыков сотрудников")
		return skillsgapapimodels.Report{}, errors.New("ошибка получения навыков сотрудников")
	}
	employees := make([]skillsgapapimodels.EmployeeSkills, 0, len(list))
	for _, rec := range list {
		employees = append(employees, skillsgapapimodels.EmployeeSkills{Skills: rec.Skills})
	}
	return Analyze(employees), nil
}
