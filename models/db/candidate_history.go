package dbmodels

import "hr-onboarding-backend/models"

// CandidateHistory запись журнала действий по кандидату, только добавляется
type CandidateHistory struct {
	BaseModel
	CandidateID string                `gorm:"type:varchar(36);index"`
	UserID      *string               `gorm:"type:varchar(36)"`
	UserName    string                `gorm:"type:varchar(255)"`
	ActionType  ActionType            `gorm:"type:varchar(50)"`
	Stage       models.CandidateStage `gorm:"type:varchar(20)"` // этап после действия
	Changes     EntityChanges         `gorm:"type:jsonb"`
}

type ActionType string

const (
	HistoryTypeAdded        ActionType = "added"        // Кандидат добавлен
	HistoryTypeStageChange  ActionType = "stage_change" // Кандидат переведен на другой этап
	HistoryTypeInterview    ActionType = "interview"    // Назначено собеседование
	HistoryTypeFeedback     ActionType = "feedback"     // Получен отзыв по собеседованию
	HistoryTypeActivation   ActionType = "activation"   // Создана учетная запись
	HistoryTypeResumeUpload ActionType = "resume"       // Загружено резюме
)

// CandidateCommit атомарное изменение кандидата вместе с записью в журнал
type CandidateCommit struct {
	Record          Candidate
	ExpectedVersion int
	History         CandidateHistory
}
