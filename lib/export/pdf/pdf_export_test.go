package pdfexport

import (
	"bytes"
	"os"
	"testing"
	"time"

	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	dbmodels "hr-onboarding-backend/models/db"

	"github.com/stretchr/testify/require"
)

var acceptedView = candidateapimodels.CandidateView{
	ID:              "cand-1",
	CreatedAt:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	Stage:           models.StageAccepted,
	StageName:       models.StageAccepted.ToHuman(),
	FullName:        "Иван Петров",
	Email:           "ivan@example.com",
	Title:           "Go разработчик",
	ExperienceYears: 4,
	Skills:          []string{"Go", "SQL"},
	Sectors:         []string{},
	InterviewSchedule: &dbmodels.InterviewSchedule{
		Date:            "2024-03-05",
		Time:            "14:30",
		Platform:        models.PlatformZoom,
		InterviewerName: "Анна Сидорова",
	},
	InterviewFeedback: &dbmodels.InterviewFeedback{
		OverallRating:   4,
		TechnicalRating: 5,
		Recommendation:  models.RecommendationAccept,
		SubmittedBy:     "Анна Сидорова",
	},
	AccountID: "acc-1",
}

func TestCardSections(t *testing.T) {
	t.Run(`empty values are skipped`, func(t *testing.T) {
		sections := cardSections(acceptedView)
		require.Len(t, sections, 4)
		require.Equal(t, "Кандидат", sections[0].Title)
		require.Contains(t, sections[0].Lines, cardLine{"Навыки", "Go, SQL"})
		for _, line := range sections[0].Lines {
			require.NotEqual(t, "Телефон", line.Label)
			require.NotEqual(t, "Отрасли", line.Label)
		}

		require.Contains(t, sections[1].Lines, cardLine{"Дата и время", "2024-03-05 14:30"})
		require.Contains(t, sections[1].Lines, cardLine{"Платформа", "Zoom"})

		require.Contains(t, sections[2].Lines, cardLine{"Общая оценка", "4 из 5"})
		require.Contains(t, sections[2].Lines, cardLine{"Рекомендация", "Принять"})
		for _, line := range sections[2].Lines {
			require.NotEqual(t, "Коммуникация", line.Label)
		}
		require.Equal(t, []cardLine{{"Учетная запись", "acc-1"}}, sections[3].Lines)
	})

	t.Run(`pending candidate has only main section`, func(t *testing.T) {
		sections := cardSections(candidateapimodels.CandidateView{FullName: "Иван Петров", Email: "ivan@example.com"})
		require.Len(t, sections, 1)
	})
}

func TestCandidateCard(t *testing.T) {
	t.Run(`missing font files`, func(t *testing.T) {
		handler := NewInstance(Fonts{Dir: t.TempDir(), Regular: "Arial.ttf", Bold: "Arial Bold.ttf"})
		_, err := handler.CandidateCard(acceptedView)
		require.Error(t, err)
	})

	t.Run(`card is rendered`, func(t *testing.T) {
		const fontDir = "/usr/share/fonts/truetype/dejavu/"
		for _, name := range []string{"DejaVuSans.ttf", "DejaVuSans-Bold.ttf"} {
			if _, err := os.Stat(fontDir + name); err != nil {
				t.Skip("в системе нет шрифтов DejaVu")
			}
		}
		handler := NewInstance(Fonts{Dir: fontDir, Regular: "DejaVuSans.ttf", Bold: "DejaVuSans-Bold.ttf"})
		data, err := handler.CandidateCard(acceptedView)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})
}
