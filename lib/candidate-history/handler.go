package candidatehistoryhandler

import (
	candidatestore "hr-onboarding-backend/lib/candidate/store"
	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(candidateID string, filter candidateapimodels.CandidateHistoryFilter) ([]candidateapimodels.CandidateHistoryView, int64, error)
}

var Instance Provider

func NewHandler(store candidatestore.Provider) {
	Instance = NewInstance(store)
}

func NewInstance(store candidatestore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store candidatestore.Provider
}

func (i impl) List(candidateID string, filter candidateapimodels.CandidateHistoryFilter) ([]candidateapimodels.CandidateHistoryView, int64, error) {
	logger := log.WithField("candidate_id", candidateID)
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения кандидата")
		return nil, 0, errors.New("ошибка получения кандидата")
	}
	if rec == nil {
		return nil, 0, models.ErrCandidateNotFound
	}

	rowCount, err := i.store.HistoryCount(candidateID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения количества действий")
		return nil, 0, errors.New("ошибка получения списка действий")
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []candidateapimodels.CandidateHistoryView{}, rowCount, nil
	}

	list, err := i.store.HistoryList(candidateID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка действий")
		return nil, 0, errors.New("ошибка получения списка действий")
	}
	result := make([]candidateapimodels.CandidateHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.ConvertHistory(rec))
	}
	return result, rowCount, nil
}
