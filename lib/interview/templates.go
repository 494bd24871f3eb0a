package interviewhandler

import (
	"fmt"
	dbmodels "hr-onboarding-backend/models/db"
	"strings"
)

func GetScheduleNote(rec dbmodels.InterviewSchedule) string {
	interviewer := rec.InterviewerName
	if rec.InterviewerEmail != "" {
		interviewer = fmt.Sprintf("%v (%v)", rec.InterviewerName, rec.InterviewerEmail)
	}
	return fmt.Sprintf("Назначено собеседование на %v %v. Платформа: %v. Ссылка: %v. Интервьюер: %v",
		rec.Date, rec.Time, rec.Platform.ToHuman(), rec.MeetingLink, interviewer)
}

func GetScheduleChanges(rec dbmodels.InterviewSchedule) []dbmodels.FieldChanges {
	return []dbmodels.FieldChanges{
		{Field: "Дата собеседования", NewValue: rec.Date},
		{Field: "Время собеседования", NewValue: rec.Time},
		{Field: "Платформа", NewValue: rec.Platform.ToHuman()},
		{Field: "Ссылка на встречу", NewValue: rec.MeetingLink},
		{Field: "Интервьюер", NewValue: rec.InterviewerName},
	}
}

func GetFeedbackNote(rec dbmodels.InterviewFeedback) string {
	parts := []string{
		fmt.Sprintf("Отзыв по собеседованию. Рекомендация: %v", rec.Recommendation.ToHuman()),
		"Оценки: " + formatRatings(rec),
	}
	if rec.Strengths != "" {
		parts = append(parts, "Сильные стороны: "+rec.Strengths)
	}
	if rec.Weaknesses != "" {
		parts = append(parts, "Слабые стороны: "+rec.Weaknesses)
	}
	return strings.Join(parts, ". ")
}

func GetFeedbackChanges(rec dbmodels.InterviewFeedback) []dbmodels.FieldChanges {
	result := []dbmodels.FieldChanges{
		{Field: "Общая оценка", NewValue: rec.OverallRating},
		{Field: "Рекомендация", NewValue: rec.Recommendation.ToHuman()},
	}
	return result
}

func formatRatings(rec dbmodels.InterviewFeedback) string {
	ratings := []struct {
		name  string
		value int
	}{
		{"техническая", rec.TechnicalRating},
		{"коммуникация", rec.CommunicationRating},
		{"соответствие культуре", rec.CulturalFitRating},
		{"решение задач", rec.ProblemSolvingRating},
		{"общая", rec.OverallRating},
	}
	result := make([]string, 0, len(ratings))
	for _, rating := range ratings {
		if rating.value == 0 {
			// не оценено
			continue
		}
		result = append(result, fmt.Sprintf("%v %v/5", rating.name, rating.value))
	}
	return strings.Join(result, ", ")
}
