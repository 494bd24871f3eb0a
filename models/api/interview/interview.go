package interviewapimodels

import (
	"hr-onboarding-backend/models"
	dbmodels "hr-onboarding-backend/models/db"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type ScheduleRequest struct {
	Date             string                   `json:"date"`              // Дата собеседования (ГГГГ-ММ-ДД)
	Time             string                   `json:"time"`              // Время собеседования (ЧЧ:ММ)
	MeetingLink      string                   `json:"meeting_link"`      // Ссылка на встречу
	Platform         models.InterviewPlatform `json:"platform"`          // zoom|google-meet|teams|other
	InterviewerName  string                   `json:"interviewer_name"`  // Интервьюер
	InterviewerEmail string                   `json:"interviewer_email"` // Email интервьюера (необязательно)
}

func (r ScheduleRequest) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return models.NewValidationError("date", "не указана дата собеседования")
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return models.NewValidationError("date", "некорректный формат даты, ожидается ГГГГ-ММ-ДД")
	}
	if strings.TrimSpace(r.Time) == "" {
		return models.NewValidationError("time", "не указано время собеседования")
	}
	if _, err := time.Parse(TimeLayout, r.Time); err != nil {
		return models.NewValidationError("time", "некорректный формат времени, ожидается ЧЧ:ММ")
	}
	link := strings.TrimSpace(r.MeetingLink)
	if link == "" {
		return models.NewValidationError("meeting_link", "не указана ссылка на встречу")
	}
	if u, err := url.Parse(link); err != nil || u.Scheme == "" || u.Host == "" {
		return models.NewValidationError("meeting_link", "некорректная ссылка на встречу")
	}
	if !r.Platform.IsValid() {
		return models.NewValidationError("platform", "неизвестная платформа для встречи")
	}
	if strings.TrimSpace(r.InterviewerName) == "" {
		return models.NewValidationError("interviewer_name", "не указан интервьюер")
	}
	if r.InterviewerEmail != "" && !govalidator.IsEmail(r.InterviewerEmail) {
		return models.NewValidationError("interviewer_email", "некорректный email интервьюера")
	}
	return nil
}

func (r ScheduleRequest) ToDB(scheduledBy string, now time.Time) dbmodels.InterviewSchedule {
	return dbmodels.InterviewSchedule{
		Date:             r.Date,
		Time:             r.Time,
		MeetingLink:      strings.TrimSpace(r.MeetingLink),
		Platform:         r.Platform,
		InterviewerName:  strings.TrimSpace(r.InterviewerName),
		InterviewerEmail: strings.TrimSpace(r.InterviewerEmail),
		ScheduledBy:      scheduledBy,
		ScheduledAt:      now,
	}
}

type FeedbackRequest struct {
	TechnicalRating      int                   `json:"technical_rating"`       // 1-5, 0 - не оценено
	CommunicationRating  int                   `json:"communication_rating"`   // 1-5, 0 - не оценено
	CulturalFitRating    int                   `json:"cultural_fit_rating"`    // 1-5, 0 - не оценено
	ProblemSolvingRating int                   `json:"problem_solving_rating"` // 1-5, 0 - не оценено
	OverallRating        int                   `json:"overall_rating"`         // 1-5, обязательно
	Strengths            string                `json:"strengths"`              // Сильные стороны
	Weaknesses           string                `json:"weaknesses"`             // Слабые стороны
	Recommendation       models.Recommendation `json:"recommendation"`         // accept|reject|review
}

func (r FeedbackRequest) Validate() error {
	if r.OverallRating == 0 {
		return models.NewValidationError("overall_rating", "не указана общая оценка")
	}
	if !isRating(r.OverallRating) {
		return models.NewValidationError("overall_rating", "оценка должна быть от 1 до 5")
	}
	optional := map[string]int{
		"technical_rating":       r.TechnicalRating,
		"communication_rating":   r.CommunicationRating,
		"cultural_fit_rating":    r.CulturalFitRating,
		"problem_solving_rating": r.ProblemSolvingRating,
	}
	for field, value := range optional {
		if value != 0 && !isRating(value) {
			return models.NewValidationError(field, "оценка должна быть от 1 до 5")
		}
	}
	if r.Recommendation == "" {
		return models.NewValidationError("recommendation", "не указана рекомендация")
	}
	if !r.Recommendation.IsValid() {
		return models.NewValidationError("recommendation", "неизвестная рекомендация")
	}
	return nil
}

func (r FeedbackRequest) ToDB(submittedBy string, now time.Time) dbmodels.InterviewFeedback {
	return dbmodels.InterviewFeedback{
		TechnicalRating:      r.TechnicalRating,
		CommunicationRating:  r.CommunicationRating,
		CulturalFitRating:    r.CulturalFitRating,
		ProblemSolvingRating: r.ProblemSolvingRating,
		OverallRating:        r.OverallRating,
		Strengths:            strings.TrimSpace(r.Strengths),
		Weaknesses:           strings.TrimSpace(r.Weaknesses),
		Recommendation:       r.Recommendation,
		SubmittedBy:          submittedBy,
		SubmittedAt:          now,
	}
}

func isRating(value int) bool {
	return value >= 1 && value <= 5
}
