package candidatehandler

import (
	"context"
	"fmt"
	candidatehistoryhandler "hr-onboarding-backend/lib/candidate-history"
	candidatestore "hr-onboarding-backend/lib/candidate/store"
	pipelinehandler "hr-onboarding-backend/lib/pipeline"
	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	profileapimodels "hr-onboarding-backend/models/api/profile"
	dbmodels "hr-onboarding-backend/models/db"
	wsmodels "hr-onboarding-backend/models/ws"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, data candidateapimodels.CandidateData, source models.CandidateSource, author candidateapimodels.Author) (candidateapimodels.CandidateView, error)
	CreateFromProfile(ctx context.Context, profile profileapimodels.ExtractedProfile, source models.CandidateSource, author candidateapimodels.Author) (candidateapimodels.CandidateView, error)
	GetByID(id string) (candidateapimodels.CandidateView, error)
	List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error)
	ChangeStage(ctx context.Context, id string, data candidateapimodels.ChangeStageRequest, author candidateapimodels.Author) (candidateapimodels.CandidateView, error)
}

var Instance Provider

func NewHandler(store candidatestore.Provider, pipeline pipelinehandler.Provider, events pipelinehandler.EventSink) {
	Instance = NewInstance(store, pipeline, events)
}

func NewInstance(store candidatestore.Provider, pipeline pipelinehandler.Provider, events pipelinehandler.EventSink) Provider {
	return impl{
		store:    store,
		pipeline: pipeline,
		events:   events,
	}
}

type impl struct {
	store    candidatestore.Provider
	pipeline pipelinehandler.Provider
	events   pipelinehandler.EventSink
}

func (i impl) Create(ctx context.Context, data candidateapimodels.CandidateData, source models.CandidateSource, author candidateapimodels.Author) (candidateapimodels.CandidateView, error) {
	if err := data.Validate(); err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	rec := toDB(data)
	rec.Stage = models.StagePending
	rec.Source = source
	if rec.Source == "" {
		rec.Source = models.CandidateSourceManual
	}
	history := dbmodels.CandidateHistory{
		UserName:   author.GetName(),
		ActionType: dbmodels.HistoryTypeAdded,
		Stage:      rec.Stage,
		Changes:    candidatehistoryhandler.GetCreateChanges(candidatehistoryhandler.GetAddedDescription(rec), rec),
	}
	if author.UserID != "" {
		userID := author.UserID
		history.UserID = &userID
	}
	id, err := i.store.Create(rec, history)
	if err != nil {
		log.WithError(err).Error("ошибка добавления кандидата")
		return candidateapimodels.CandidateView{}, errors.New("ошибка добавления кандидата")
	}
	logger := log.WithField("candidate_id", id).WithField("source", rec.Source)
	logger.Info("кандидат добавлен")

	created, err := i.store.GetByID(id)
	if err != nil || created == nil {
		logger.WithError(err).Error("ошибка получения добавленного кандидата")
		return candidateapimodels.CandidateView{}, errors.New("ошибка получения кандидата")
	}
	if i.events != nil {
		i.events.Broadcast(wsmodels.ServerMessage{
			Time:        time.Now().Format("02.01.2006 15:04:05"),
			Code:        wsmodels.EventCreated,
			CandidateID: id,
			Stage:       created.Stage,
			Msg:         fmt.Sprintf("Добавлен кандидат %v", created.GetFullName()),
		})
	}
	return candidateapimodels.Convert(*created), nil
}

func (i impl) CreateFromProfile(ctx context.Context, profile profileapimodels.ExtractedProfile, source models.CandidateSource, author candidateapimodels.Author) (candidateapimodels.CandidateView, error) {
	if profile.IsEmpty() {
		return candidateapimodels.CandidateView{}, models.NewValidationError("profile", "не удалось получить данные кандидата из резюме")
	}
	return i.Create(ctx, ProfileToCandidate(profile), source, author)
}

func (i impl) GetByID(id string) (candidateapimodels.CandidateView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("candidate_id", id).WithError(err).Error("ошибка получения кандидата")
		return candidateapimodels.CandidateView{}, errors.New("ошибка получения кандидата")
	}
	if rec == nil {
		return candidateapimodels.CandidateView{}, models.ErrCandidateNotFound
	}
	return candidateapimodels.Convert(*rec), nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	dbFilter := filter.ToDB()
	rowCount, err := i.store.ListCount(dbFilter)
	if err != nil {
		log.WithError(err).Error("ошибка получения количества кандидатов")
		return nil, 0, errors.New("ошибка получения списка кандидатов")
	}
	offset := (dbFilter.Page - 1) * dbFilter.Limit
	if int64(offset) > rowCount {
		return []candidateapimodels.CandidateView{}, rowCount, nil
	}
	list, err := i.store.List(dbFilter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка кандидатов")
		return nil, 0, errors.New("ошибка получения списка кандидатов")
	}
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.Convert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ChangeStage(ctx context.Context, id string, data candidateapimodels.ChangeStageRequest, author candidateapimodels.Author) (candidateapimodels.CandidateView, error) {
	if err := data.Validate(); err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	result, err := i.pipeline.RequestTransition(ctx, pipelinehandler.TransitionCommand{
		CandidateID: id,
		Target:      data.Stage,
		Note:        data.Note,
		Author:      author,
	})
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	return candidateapimodels.Convert(result.Candidate), nil
}
