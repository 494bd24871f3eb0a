package interviewhandler

import (
	"context"
	"fmt"
	pipelinehandler "hr-onboarding-backend/lib/pipeline"
	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	interviewapimodels "hr-onboarding-backend/models/api/interview"
	dbmodels "hr-onboarding-backend/models/db"
	wsmodels "hr-onboarding-backend/models/ws"
	"time"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Schedule назначает собеседование кандидату на этапе pending и переводит его на review
	Schedule(ctx context.Context, candidateID string, data interviewapimodels.ScheduleRequest, author candidateapimodels.Author) (candidateapimodels.CandidateView, error)
	// Feedback сохраняет отзыв по собеседованию и переводит кандидата согласно рекомендации
	Feedback(ctx context.Context, candidateID string, data interviewapimodels.FeedbackRequest, author candidateapimodels.Author) (candidateapimodels.CandidateView, error)
}

var Instance Provider

func NewHandler(pipeline pipelinehandler.Provider) {
	Instance = NewInstance(pipeline)
}

func NewInstance(pipeline pipelinehandler.Provider) Provider {
	return impl{
		pipeline: pipeline,
		now:      time.Now,
	}
}

type impl struct {
	pipeline pipelinehandler.Provider
	now      func() time.Time
}

func (i impl) Schedule(ctx context.Context, candidateID string, data interviewapimodels.ScheduleRequest, author candidateapimodels.Author) (candidateapimodels.CandidateView, error) {
	if err := data.Validate(); err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	schedule := data.ToDB(author.GetName(), i.now())
	result, err := i.pipeline.RequestTransition(ctx, pipelinehandler.TransitionCommand{
		CandidateID: candidateID,
		Source:      models.StagePending,
		Target:      models.StageReview,
		Note:        GetScheduleNote(schedule),
		Author:      author,
		ActionType:  dbmodels.HistoryTypeInterview,
		Event:       wsmodels.EventInterviewScheduled,
		Data:        GetScheduleChanges(schedule),
		Apply: func(rec *dbmodels.Candidate) {
			rec.InterviewSchedule = &schedule
		},
	})
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	log.
		WithField("candidate_id", candidateID).
		WithField("interview_date", fmt.Sprintf("%v %v", schedule.Date, schedule.Time)).
		Info("назначено собеседование")
	return candidateapimodels.Convert(result.Candidate), nil
}

func (i impl) Feedback(ctx context.Context, candidateID string, data interviewapimodels.FeedbackRequest, author candidateapimodels.Author) (candidateapimodels.CandidateView, error) {
	if err := data.Validate(); err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	target, _ := data.Recommendation.ToStage()
	feedback := data.ToDB(author.GetName(), i.now())
	result, err := i.pipeline.RequestTransition(ctx, pipelinehandler.TransitionCommand{
		CandidateID: candidateID,
		Source:      models.StageReview,
		Target:      target,
		Note:        GetFeedbackNote(feedback),
		Author:      author,
		ActionType:  dbmodels.HistoryTypeFeedback,
		Event:       wsmodels.EventFeedbackReceived,
		// рекомендация review оставляет кандидата на этапе, отзыв все равно сохраняется
		AllowStay: target == models.StageReview,
		Data:      GetFeedbackChanges(feedback),
		Apply: func(rec *dbmodels.Candidate) {
			rec.InterviewFeedback = &feedback
		},
	})
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	log.
		WithField("candidate_id", candidateID).
		WithField("recommendation", data.Recommendation).
		Info("получен отзыв по собеседованию")
	return candidateapimodels.Convert(result.Candidate), nil
}
