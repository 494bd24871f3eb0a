package candidatestore

import (
	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	dbmodels "hr-onboarding-backend/models/db"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NewMemInstance хранилище в памяти процесса, для локального запуска без БД и тестов
func NewMemInstance() Provider {
	return &memImpl{
		records: map[string]dbmodels.Candidate{},
		history: map[string][]dbmodels.CandidateHistory{},
	}
}

type memImpl struct {
	mu      sync.RWMutex
	records map[string]dbmodels.Candidate
	order   []string
	history map[string][]dbmodels.CandidateHistory
}

func (i *memImpl) Create(rec dbmodels.Candidate, history dbmodels.CandidateHistory) (id string, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	now := time.Now()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	i.records[rec.ID] = cloneCandidate(rec)
	i.order = append(i.order, rec.ID)
	history.CandidateID = rec.ID
	i.appendHistory(history, now)
	return rec.ID, nil
}

func (i *memImpl) GetByID(id string) (*dbmodels.Candidate, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	rec, ok := i.records[id]
	if !ok {
		return nil, nil
	}
	rec = cloneCandidate(rec)
	return &rec, nil
}

func (i *memImpl) List(filter dbmodels.CandidateFilter) ([]dbmodels.Candidate, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	list := i.filtered(filter)
	// как в БД: новые сверху
	slices.Reverse(list)
	if filter.Limit > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.Limit
		if offset >= len(list) {
			return []dbmodels.Candidate{}, nil
		}
		end := min(offset+filter.Limit, len(list))
		list = list[offset:end]
	}
	return list, nil
}

func (i *memImpl) ListCount(filter dbmodels.CandidateFilter) (int64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return int64(len(i.filtered(filter))), nil
}

func (i *memImpl) ListSkills(stages []models.CandidateStage) ([]dbmodels.Candidate, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.filtered(dbmodels.CandidateFilter{Stages: stages}), nil
}

func (i *memImpl) Commit(commit dbmodels.CandidateCommit) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	current, ok := i.records[commit.Record.ID]
	if !ok || current.Version != commit.ExpectedVersion {
		return models.ErrVersionConflict
	}
	now := time.Now()
	rec := cloneCandidate(commit.Record)
	rec.CreatedAt = current.CreatedAt
	rec.UpdatedAt = now
	rec.Version = commit.ExpectedVersion + 1
	i.records[rec.ID] = rec
	history := commit.History
	history.CandidateID = rec.ID
	i.appendHistory(history, now)
	return nil
}

func (i *memImpl) LastHistory(candidateID string) (*dbmodels.CandidateHistory, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	list := i.history[candidateID]
	if len(list) == 0 {
		return nil, nil
	}
	rec := list[len(list)-1]
	return &rec, nil
}

func (i *memImpl) HistoryCount(candidateID string, filter candidateapimodels.CandidateHistoryFilter) (int64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return int64(len(i.filteredHistory(candidateID, filter))), nil
}

func (i *memImpl) HistoryList(candidateID string, filter candidateapimodels.CandidateHistoryFilter) ([]dbmodels.CandidateHistory, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	list := i.filteredHistory(candidateID, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if offset >= len(list) {
		return []dbmodels.CandidateHistory{}, nil
	}
	end := min(offset+limit, len(list))
	return list[offset:end], nil
}

func (i *memImpl) appendHistory(rec dbmodels.CandidateHistory, now time.Time) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec.Changes.Data = slices.Clone(rec.Changes.Data)
	i.history[rec.CandidateID] = append(i.history[rec.CandidateID], rec)
}

func (i *memImpl) filtered(filter dbmodels.CandidateFilter) []dbmodels.Candidate {
	search := strings.ToLower(filter.Search)
	result := []dbmodels.Candidate{}
	for _, id := range i.order {
		rec := i.records[id]
		if len(filter.Stages) != 0 && !slices.Contains(filter.Stages, rec.Stage) {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(rec.LastName + " " + rec.FirstName + " " + rec.Phone + " " + rec.Email)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		result = append(result, cloneCandidate(rec))
	}
	return result
}

func (i *memImpl) filteredHistory(candidateID string, filter candidateapimodels.CandidateHistoryFilter) []dbmodels.CandidateHistory {
	result := []dbmodels.CandidateHistory{}
	for _, rec := range i.history[candidateID] {
		if len(filter.ActionTypes) != 0 && !slices.Contains(filter.ActionTypes, rec.ActionType) {
			continue
		}
		result = append(result, rec)
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.Before(result[b].CreatedAt)
	})
	return result
}

func cloneCandidate(rec dbmodels.Candidate) dbmodels.Candidate {
	rec.Skills = slices.Clone(rec.Skills)
	rec.Sectors = slices.Clone(rec.Sectors)
	if rec.InterviewSchedule != nil {
		schedule := *rec.InterviewSchedule
		rec.InterviewSchedule = &schedule
	}
	if rec.InterviewFeedback != nil {
		feedback := *rec.InterviewFeedback
		rec.InterviewFeedback = &feedback
	}
	if rec.AccountID != nil {
		accountID := *rec.AccountID
		rec.AccountID = &accountID
	}
	if rec.ActivatedAt != nil {
		activatedAt := *rec.ActivatedAt
		rec.ActivatedAt = &activatedAt
	}
	return rec
}
