package profileapimodels

import (
	"strings"

	"hr-onboarding-backend/models"
)

// ExtractedProfile ответ сервиса разбора резюме, все поля необязательны
type ExtractedProfile struct {
	Name            *string  `json:"name,omitempty"`
	Email           *string  `json:"email,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	Title           *string  `json:"title,omitempty"`
	ExperienceYears *float64 `json:"experience_years,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Sectors         []string `json:"sectors,omitempty"`
}

func (p ExtractedProfile) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Title == nil &&
		p.ExperienceYears == nil && len(p.Skills) == 0 && len(p.Sectors) == 0
}

// Source источник для разбора: ссылка на профиль или файл резюме
type Source struct {
	URL      string
	FileName string
	Body     []byte
}

func (s Source) Validate() error {
	if strings.TrimSpace(s.URL) == "" && len(s.Body) == 0 {
		return models.NewValidationError("source", "не указана ссылка на профиль или файл резюме")
	}
	return nil
}

func (s Source) GetCandidateSource() models.CandidateSource {
	if len(s.Body) != 0 {
		return models.CandidateSourceResume
	}
	return models.CandidateSourceProfile
}

type ExtractRequest struct {
	URL    string `json:"url" form:"url"`       // Ссылка на профиль
	Create bool   `json:"create" form:"create"` // Создать кандидата по результату разбора
}

type ExtractResponse struct {
	Profile     ExtractedProfile `json:"profile"`                // Результат разбора
	CandidateID string           `json:"candidate_id,omitempty"` // Созданный кандидат (если create=true)
}
