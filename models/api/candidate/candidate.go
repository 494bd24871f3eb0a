package candidateapimodels

import (
	"hr-onboarding-backend/lib/utils/helpers"
	"hr-onboarding-backend/models"
	apimodels "hr-onboarding-backend/models/api"
	dbmodels "hr-onboarding-backend/models/db"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

type CandidateData struct {
	FirstName       string   `json:"first_name"`       // Имя
	LastName        string   `json:"last_name"`        // Фамилия
	Email           string   `json:"email"`            // Email (обязательно)
	Phone           string   `json:"phone"`            // Телефон в формате +7XXXXXXXXXX
	Title           string   `json:"title"`            // Должность
	ExperienceYears int      `json:"experience_years"` // Опыт работы в годах
	Skills          []string `json:"skills"`           // Навыки
	Sectors         []string `json:"sectors"`          // Отрасли
}

func (c CandidateData) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return models.NewValidationError("email", "не указан email кандидата")
	}
	if !govalidator.IsEmail(strings.TrimSpace(c.Email)) {
		return models.NewValidationError("email", "некорректный формат email")
	}
	if c.Phone != "" {
		if _, ok := helpers.NormalizePhone(c.Phone); !ok {
			return models.NewValidationError("phone", "некорректный формат телефона, ожидается +7XXXXXXXXXX")
		}
	}
	if c.ExperienceYears < 0 {
		return models.NewValidationError("experience_years", "опыт работы не может быть отрицательным")
	}
	return nil
}

type CandidateFilter struct {
	apimodels.Pagination
	Stages []models.CandidateStage `json:"stages"` // Фильтр по этапам
	Search string                  `json:"search"` // Поиск по ФИО, email, телефону
}

func (f CandidateFilter) Validate() error {
	for _, stage := range f.Stages {
		if !stage.IsValid() {
			return models.NewValidationError("stages", "неизвестный этап: "+string(stage))
		}
	}
	return nil
}

func (f CandidateFilter) ToDB() dbmodels.CandidateFilter {
	page, limit := f.GetPage()
	return dbmodels.CandidateFilter{
		Stages: f.Stages,
		Search: f.Search,
		Page:   page,
		Limit:  limit,
	}
}

type ChangeStageRequest struct {
	Stage models.CandidateStage `json:"stage"` // Целевой этап
	Note  string                `json:"note"`  // Обоснование перевода
}

func (r ChangeStageRequest) Validate() error {
	if !r.Stage.IsValid() {
		return models.NewValidationError("stage", "неизвестный этап")
	}
	if strings.TrimSpace(r.Note) == "" {
		return models.NewValidationError("note", "не указано обоснование перевода")
	}
	return nil
}

type CandidateView struct {
	ID                string                      `json:"id"`
	CreatedAt         time.Time                   `json:"created_at"`
	Stage             models.CandidateStage       `json:"stage"`
	StageName         string                      `json:"stage_name"`
	FirstName         string                      `json:"first_name"`
	LastName          string                      `json:"last_name"`
	FullName          string                      `json:"full_name"`
	Email             string                      `json:"email"`
	Phone             string                      `json:"phone"`
	Title             string                      `json:"title"`
	ExperienceYears   int                         `json:"experience_years"`
	Skills            []string                    `json:"skills"`
	Sectors           []string                    `json:"sectors"`
	Source            models.CandidateSource      `json:"source"`
	HasResume         bool                        `json:"has_resume"`
	InterviewSchedule *dbmodels.InterviewSchedule `json:"interview_schedule,omitempty"`
	InterviewFeedback *dbmodels.InterviewFeedback `json:"interview_feedback,omitempty"`
	AccountID         string                      `json:"account_id,omitempty"`
	ActivatedAt       *time.Time                  `json:"activated_at,omitempty"`
	Version           int                         `json:"version"`
}

func Convert(rec dbmodels.Candidate) CandidateView {
	result := CandidateView{
		ID:                rec.ID,
		CreatedAt:         rec.CreatedAt,
		Stage:             rec.Stage,
		StageName:         rec.Stage.ToHuman(),
		FirstName:         rec.FirstName,
		LastName:          rec.LastName,
		FullName:          rec.GetFullName(),
		Email:             rec.Email,
		Phone:             rec.Phone,
		Title:             rec.Title,
		ExperienceYears:   rec.ExperienceYears,
		Skills:            rec.Skills,
		Sectors:           rec.Sectors,
		Source:            rec.Source,
		HasResume:         rec.ResumeKey != "",
		InterviewSchedule: rec.InterviewSchedule,
		InterviewFeedback: rec.InterviewFeedback,
		ActivatedAt:       rec.ActivatedAt,
		Version:           rec.Version,
	}
	if result.Skills == nil {
		result.Skills = []string{}
	}
	if result.Sectors == nil {
		result.Sectors = []string{}
	}
	if rec.AccountID != nil {
		result.AccountID = *rec.AccountID
	}
	return result
}
