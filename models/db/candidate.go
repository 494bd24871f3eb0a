package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"hr-onboarding-backend/models"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Candidate struct {
	BaseModel
	Stage             models.CandidateStage  `gorm:"type:varchar(20);index"`
	FirstName         string                 `gorm:"type:varchar(255)" comment:"Имя"`
	LastName          string                 `gorm:"type:varchar(255)" comment:"Фамилия"`
	Email             string                 `gorm:"type:varchar(255);index" comment:"Email"`
	Phone             string                 `gorm:"type:varchar(20)" comment:"Телефон"`
	Title             string                 `gorm:"type:varchar(255)" comment:"Должность"`
	ExperienceYears   int                    `comment:"Опыт (лет)"`
	Skills            StringList             `gorm:"type:jsonb" comment:"Навыки"`
	Sectors           StringList             `gorm:"type:jsonb" comment:"Отрасли"`
	Source            models.CandidateSource `gorm:"type:varchar(50)"`
	ResumeKey         string
	InterviewSchedule *InterviewSchedule `gorm:"type:jsonb"`
	InterviewFeedback *InterviewFeedback `gorm:"type:jsonb"`
	AccountID         *string            `gorm:"type:varchar(36)"`
	ActivatedAt       *time.Time
	Version           int `gorm:"not null;default:0"`
}

func (c Candidate) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", c.FirstName, c.LastName))
}

func (c Candidate) IsActivated() bool {
	return c.AccountID != nil && *c.AccountID != ""
}

type CandidateFilter struct {
	Stages []models.CandidateStage
	Search string
	Page   int
	Limit  int
}

// StringList список строк в jsonb
type StringList []string

func (j StringList) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StringList) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, j)
}

type InterviewSchedule struct {
	Date             string                   `json:"date"`
	Time             string                   `json:"time"`
	MeetingLink      string                   `json:"meeting_link"`
	Platform         models.InterviewPlatform `json:"platform"`
	InterviewerName  string                   `json:"interviewer_name"`
	InterviewerEmail string                   `json:"interviewer_email,omitempty"`
	ScheduledBy      string                   `json:"scheduled_by"`
	ScheduledAt      time.Time                `json:"scheduled_at"`
}

func (j InterviewSchedule) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *InterviewSchedule) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, j)
}

type InterviewFeedback struct {
	TechnicalRating      int                   `json:"technical_rating,omitempty"`
	CommunicationRating  int                   `json:"communication_rating,omitempty"`
	CulturalFitRating    int                   `json:"cultural_fit_rating,omitempty"`
	ProblemSolvingRating int                   `json:"problem_solving_rating,omitempty"`
	OverallRating        int                   `json:"overall_rating"`
	Strengths            string                `json:"strengths,omitempty"`
	Weaknesses           string                `json:"weaknesses,omitempty"`
	Recommendation       models.Recommendation `json:"recommendation"`
	SubmittedBy          string                `json:"submitted_by"`
	SubmittedAt          time.Time             `json:"submitted_at"`
}

func (j InterviewFeedback) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *InterviewFeedback) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, j)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return []byte("null"), nil
	}
	return nil, errors.Errorf("неподдерживаемый тип jsonb значения: %T", value)
}
