package pdfexport

import (
	"bytes"
	"fmt"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

type Provider interface {
	// CandidateCard карточка кандидата: данные, собеседование, отзыв, учетная запись
	CandidateCard(view candidateapimodels.CandidateView) ([]byte, error)
}

// Fonts TTF шрифты с кириллицей, лежат в Dir
type Fonts struct {
	Dir     string
	Regular string
	Bold    string
}

var Instance Provider

func NewHandler(fonts Fonts) {
	Instance = NewInstance(fonts)
}

func NewInstance(fonts Fonts) Provider {
	return impl{fonts: fonts}
}

type impl struct {
	fonts Fonts
}

const fontFamily = "Card"

type cardLine struct {
	Label string
	Value string
}

type cardSection struct {
	Title string
	Lines []cardLine
}

func (i impl) CandidateCard(view candidateapimodels.CandidateView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("CandidateCard panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", i.fonts.Dir)
	pdf.AddUTF8Font(fontFamily, "", i.fonts.Regular)
	pdf.AddUTF8Font(fontFamily, "B", i.fonts.Bold)
	if pdf.Error() != nil {
		return nil, errors.Wrap(pdf.Error(), "ошибка загрузки шрифтов")
	}
	pdf.SetTitle("Карточка кандидата "+view.FullName, true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.MultiCell(0, 9, view.FullName, "", "L", false)
	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Этап: %v, добавлен %v", view.StageName, view.CreatedAt.Format("02.01.2006")), "", "L", false)

	for _, section := range cardSections(view) {
		pdf.Ln(4)
		pdf.SetFont(fontFamily, "B", 13)
		pdf.CellFormat(0, 8, section.Title, "B", 1, "L", false, 0, "")
		pdf.Ln(1)
		for _, line := range section.Lines {
			pdf.SetFont(fontFamily, "B", 11)
			pdf.CellFormat(55, 6, line.Label, "", 0, "L", false, 0, "")
			pdf.SetFont(fontFamily, "", 11)
			pdf.MultiCell(0, 6, line.Value, "", "L", false)
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cardSections(view candidateapimodels.CandidateView) []cardSection {
	result := []cardSection{{
		Title: "Кандидат",
		Lines: nonEmpty(
			cardLine{"Email", view.Email},
			cardLine{"Телефон", view.Phone},
			cardLine{"Должность", view.Title},
			cardLine{"Опыт (лет)", fmt.Sprint(view.ExperienceYears)},
			cardLine{"Навыки", strings.Join(view.Skills, ", ")},
			cardLine{"Отрасли", strings.Join(view.Sectors, ", ")},
		),
	}}
	if schedule := view.InterviewSchedule; schedule != nil {
		result = append(result, cardSection{
			Title: "Собеседование",
			Lines: nonEmpty(
				cardLine{"Дата и время", schedule.Date + " " + schedule.Time},
				cardLine{"Платформа", schedule.Platform.ToHuman()},
				cardLine{"Ссылка", schedule.MeetingLink},
				cardLine{"Интервьюер", schedule.InterviewerName},
				cardLine{"Назначил", schedule.ScheduledBy},
			),
		})
	}
	if feedback := view.InterviewFeedback; feedback != nil {
		result = append(result, cardSection{
			Title: "Отзыв по собеседованию",
			Lines: nonEmpty(
				cardLine{"Общая оценка", rating(feedback.OverallRating)},
				cardLine{"Технические навыки", rating(feedback.TechnicalRating)},
				cardLine{"Коммуникация", rating(feedback.CommunicationRating)},
				cardLine{"Культурное соответствие", rating(feedback.CulturalFitRating)},
				cardLine{"Решение задач", rating(feedback.ProblemSolvingRating)},
				cardLine{"Сильные стороны", feedback.Strengths},
				cardLine{"Слабые стороны", feedback.Weaknesses},
				cardLine{"Рекомендация", feedback.Recommendation.ToHuman()},
				cardLine{"Автор", feedback.SubmittedBy},
			),
		})
	}
	if view.AccountID != "" {
		lines := []cardLine{{"Учетная запись", view.AccountID}}
		if view.ActivatedAt != nil {
			lines = append(lines, cardLine{"Дата активации", view.ActivatedAt.Format("02.01.2006 15:04")})
		}
		result = append(result, cardSection{Title: "Доступ", Lines: lines})
	}
	return result
}

func rating(value int) string {
	if value == 0 {
		return ""
	}
	return fmt.Sprintf("%d из 5", value)
}

func nonEmpty(lines ...cardLine) []cardLine {
	result := make([]cardLine, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line.Value) == "" {
			continue
		}
		result = append(result, line)
	}
	return result
}
