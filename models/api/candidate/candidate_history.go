package candidateapimodels

import (
	"hr-onboarding-backend/models"
	apimodels "hr-onboarding-backend/models/api"
	dbmodels "hr-onboarding-backend/models/db"
	"time"
)

type CandidateHistoryFilter struct {
	apimodels.Pagination
	ActionTypes []dbmodels.ActionType `json:"action_types"` // Фильтр по типам действий
}

type CandidateHistoryView struct {
	ID         string                 `json:"id"`
	CreatedAt  time.Time              `json:"created_at"`  // Время действия
	UserID     string                 `json:"user_id"`     // Идентификатор сотрудника
	UserName   string                 `json:"user_name"`   // Имя сотрудника
	ActionType dbmodels.ActionType    `json:"action_type"` // Тип действия
	Stage      models.CandidateStage  `json:"stage"`       // Этап после действия
	Changes    dbmodels.EntityChanges `json:"changes"`     // Изменения
}

func ConvertHistory(rec dbmodels.CandidateHistory) CandidateHistoryView {
	result := CandidateHistoryView{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		UserName:   rec.UserName,
		ActionType: rec.ActionType,
		Stage:      rec.Stage,
		Changes:    rec.Changes,
	}
	if rec.UserID != nil {
		result.UserID = *rec.UserID
	}
	return result
}

// Author инициатор действия
type Author struct {
	UserID   string
	UserName string
}

func (a Author) GetName() string {
	if a.UserName == "" {
		return models.SystemUser
	}
	return a.UserName
}
