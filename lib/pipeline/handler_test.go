package pipelinehandler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	candidatestore "hr-onboarding-backend/lib/candidate/store"
	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	dbmodels "hr-onboarding-backend/models/db"
	wsmodels "hr-onboarding-backend/models/ws"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type eventRecorder struct {
	mu   sync.Mutex
	msgs []wsmodels.ServerMessage
}

func (e *eventRecorder) Broadcast(msg wsmodels.ServerMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.msgs = append(e.msgs, msg)
}

func (e *eventRecorder) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.msgs)
}

// failingStore отказывает в Commit заданное число раз
type failingStore struct {
	candidatestore.Provider
	mu        sync.Mutex
	failures  int
	commitErr error
}

func (f *failingStore) Commit(commit dbmodels.CandidateCommit) error {
	f.mu.Lock()
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return f.commitErr
	}
	f.mu.Unlock()
	return f.Provider.Commit(commit)
}

var author = candidateapimodels.Author{UserID: "user-1", UserName: "Ирина Смирнова"}

func newCandidate(t *testing.T, store candidatestore.Provider, stage models.CandidateStage) string {
	id, err := store.Create(dbmodels.Candidate{
		Stage:     stage,
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
	}, dbmodels.CandidateHistory{
		ActionType: dbmodels.HistoryTypeAdded,
		Stage:      stage,
		UserName:   models.SystemUser,
		Changes:    dbmodels.EntityChanges{Description: "Кандидат добавлен"},
	})
	require.NoError(t, err)
	return id
}

func historyCount(t *testing.T, store candidatestore.Provider, id string) int64 {
	count, err := store.HistoryCount(id, candidateapimodels.CandidateHistoryFilter{})
	require.NoError(t, err)
	return count
}

func getStage(t *testing.T, store candidatestore.Provider, id string) models.CandidateStage {
	rec, err := store.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec.Stage
}

func TestRequestTransition(t *testing.T) {
	ctx := context.Background()

	t.Run(`legal path pending review accepted`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		events := &eventRecorder{}
		engine := NewInstance(store, events, time.Second)
		id := newCandidate(t, store, models.StagePending)

		result, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "Собеседование назначено", Author: author})
		require.NoError(t, err)
		require.True(t, result.Applied)
		require.Equal(t, models.StagePending, result.From)
		require.Equal(t, models.StageReview, result.To)
		require.Equal(t, 1, result.Candidate.Version)

		_, err = engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageAccepted, Note: "Успешное собеседование", Author: author})
		require.NoError(t, err)
		require.Equal(t, models.StageAccepted, getStage(t, store, id))
		require.Equal(t, int64(3), historyCount(t, store, id))
		require.Equal(t, 2, events.count())

		last, err := store.LastHistory(id)
		require.NoError(t, err)
		require.Equal(t, dbmodels.HistoryTypeStageChange, last.ActionType)
		require.Equal(t, "Успешное собеседование", last.Changes.Description)
		require.Equal(t, "Ирина Смирнова", last.UserName)
		require.Equal(t, "user-1", *last.UserID)
	})

	t.Run(`pending to accepted is illegal`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		events := &eventRecorder{}
		engine := NewInstance(store, events, time.Second)
		id := newCandidate(t, store, models.StagePending)

		_, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageAccepted, Note: "Без собеседования", Author: author})
		require.ErrorIs(t, err, models.ErrIllegalTransition)
		require.Equal(t, models.StagePending, getStage(t, store, id))
		require.Equal(t, int64(1), historyCount(t, store, id))
		require.Equal(t, 0, events.count())

		_, err = engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageRejected, Note: "Без собеседования"})
		require.ErrorIs(t, err, models.ErrIllegalTransition)
	})

	t.Run(`terminal stages have no outgoing edges`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, time.Second)
		for _, stage := range []models.CandidateStage{models.StageAccepted, models.StageRejected} {
			id := newCandidate(t, store, stage)
			for _, target := range []models.CandidateStage{models.StagePending, models.StageReview, models.StageAccepted, models.StageRejected} {
				_, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: target, Note: "Попытка", AllowStay: target == stage})
				if target == stage {
					// AllowStay допускает запись в журнал без смены этапа
					require.NoError(t, err)
					continue
				}
				require.ErrorIs(t, err, models.ErrIllegalTransition)
			}
			require.Equal(t, stage, getStage(t, store, id))
		}
	})

	t.Run(`validation and not found`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, store, models.StagePending)

		_, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: "unknown", Target: models.StageReview, Note: "Собеседование"})
		require.ErrorIs(t, err, models.ErrCandidateNotFound)

		_, err = engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "   "})
		require.ErrorIs(t, err, models.ErrValidation)

		_, err = engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: "hired", Note: "Принят"})
		require.ErrorIs(t, err, models.ErrValidation)

		require.Equal(t, models.StagePending, getStage(t, store, id))
		require.Equal(t, int64(1), historyCount(t, store, id))
	})

	t.Run(`replay after success does not duplicate audit entry`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, store, models.StagePending)
		cmd := TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "Собеседование назначено"}

		_, err := engine.RequestTransition(ctx, cmd)
		require.NoError(t, err)
		_, err = engine.RequestTransition(ctx, cmd)
		require.ErrorIs(t, err, models.ErrIllegalTransition)
		require.Equal(t, int64(2), historyCount(t, store, id))
	})

	t.Run(`same stage is illegal without AllowStay`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, store, models.StageReview)

		_, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "Еще раз"})
		require.ErrorIs(t, err, models.ErrIllegalTransition)
		require.Equal(t, int64(1), historyCount(t, store, id))
	})

	t.Run(`stay path records note once`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		events := &eventRecorder{}
		engine := NewInstance(store, events, time.Second)
		id := newCandidate(t, store, models.StageReview)
		cmd := TransitionCommand{
			CandidateID: id,
			Target:      models.StageReview,
			Note:        "Нужно второе собеседование",
			ActionType:  dbmodels.HistoryTypeFeedback,
			AllowStay:   true,
		}

		result, err := engine.RequestTransition(ctx, cmd)
		require.NoError(t, err)
		require.True(t, result.Applied)
		require.Equal(t, models.StageReview, result.To)
		require.Equal(t, int64(2), historyCount(t, store, id))

		result, err = engine.RequestTransition(ctx, cmd)
		require.NoError(t, err)
		require.False(t, result.Applied)
		require.Equal(t, int64(2), historyCount(t, store, id))
		require.Equal(t, 1, events.count())

		cmd.Note = "Нужно третье собеседование"
		result, err = engine.RequestTransition(ctx, cmd)
		require.NoError(t, err)
		require.True(t, result.Applied)
		require.Equal(t, int64(3), historyCount(t, store, id))
	})

	t.Run(`Apply fields commit together with stage`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, store, models.StagePending)

		_, err := engine.RequestTransition(ctx, TransitionCommand{
			CandidateID: id,
			Target:      models.StageReview,
			Note:        "Собеседование",
			Apply: func(rec *dbmodels.Candidate) {
				rec.Title = "Аналитик"
				rec.Stage = models.StageAccepted // этап задает только Target
			},
		})
		require.NoError(t, err)
		rec, err := store.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, "Аналитик", rec.Title)
		require.Equal(t, models.StageReview, rec.Stage)
	})

	t.Run(`failed commit leaves no partial state`, func(t *testing.T) {
		mem := candidatestore.NewMemInstance()
		store := &failingStore{Provider: mem, failures: 1, commitErr: errors.New("db is down")}
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, mem, models.StagePending)

		_, err := engine.RequestTransition(ctx, TransitionCommand{
			CandidateID: id,
			Target:      models.StageReview,
			Note:        "Собеседование",
			Apply:       func(rec *dbmodels.Candidate) { rec.Title = "Аналитик" },
		})
		require.Error(t, err)
		rec, err := mem.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, models.StagePending, rec.Stage)
		require.Equal(t, "", rec.Title)
		require.Equal(t, int64(1), historyCount(t, mem, id))
	})

	t.Run(`version conflict is retried`, func(t *testing.T) {
		mem := candidatestore.NewMemInstance()
		store := &failingStore{Provider: mem, failures: 1, commitErr: models.ErrVersionConflict}
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, mem, models.StagePending)

		result, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "Собеседование"})
		require.NoError(t, err)
		require.True(t, result.Applied)
		require.Equal(t, int64(2), historyCount(t, mem, id))
	})

	t.Run(`persistent version conflict is reported`, func(t *testing.T) {
		mem := candidatestore.NewMemInstance()
		store := &failingStore{Provider: mem, failures: maxCommitAttempts, commitErr: models.ErrVersionConflict}
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, mem, models.StagePending)

		_, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "Собеседование"})
		require.ErrorIs(t, err, models.ErrVersionConflict)
		require.Equal(t, models.StagePending, getStage(t, mem, id))
	})
}

func TestConcurrentTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run(`only one of concurrent identical requests commits`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, 5*time.Second)
		id := newCandidate(t, store, models.StagePending)

		var succeeded, illegal int32
		wg := sync.WaitGroup{}
		for n := 0; n < 20; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "Собеседование"})
				switch {
				case err == nil:
					atomic.AddInt32(&succeeded, 1)
				case errors.Is(err, models.ErrIllegalTransition):
					atomic.AddInt32(&illegal, 1)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), succeeded)
		require.Equal(t, int32(19), illegal)
		require.Equal(t, int64(2), historyCount(t, store, id))
	})

	t.Run(`final stage equals last committed request`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, 5*time.Second)
		id := newCandidate(t, store, models.StageReview)

		var mu sync.Mutex
		committed := []models.CandidateStage{}
		wg := sync.WaitGroup{}
		for n := 0; n < 10; n++ {
			target := models.StageAccepted
			if n%2 == 1 {
				target = models.StageRejected
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: target, Note: "Решение"})
				if err == nil && result.Applied {
					mu.Lock()
					committed = append(committed, result.To)
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Len(t, committed, 1)
		require.Equal(t, committed[0], getStage(t, store, id))
		require.Equal(t, int64(2), historyCount(t, store, id))
	})

	t.Run(`stale request cannot overwrite newer stage`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, 5*time.Second)
		id := newCandidate(t, store, models.StagePending)

		_, err := engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "Собеседование"})
		require.NoError(t, err)
		_, err = engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageAccepted, Note: "Принят"})
		require.NoError(t, err)

		// запоздавший запрос pending -> review
		_, err = engine.RequestTransition(ctx, TransitionCommand{CandidateID: id, Target: models.StageReview, Note: "Собеседование"})
		require.ErrorIs(t, err, models.ErrIllegalTransition)
		require.Equal(t, models.StageAccepted, getStage(t, store, id))
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run(`Update commits fields with audit entry`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		events := &eventRecorder{}
		engine := NewInstance(store, events, time.Second)
		id := newCandidate(t, store, models.StageAccepted)

		rec, err := engine.Update(ctx, UpdateCommand{
			CandidateID: id,
			Event:       wsmodels.EventActivated,
			Mutate: func(rec *dbmodels.Candidate) (dbmodels.CandidateHistory, error) {
				accountID := "acc-1"
				rec.AccountID = &accountID
				return dbmodels.CandidateHistory{ActionType: dbmodels.HistoryTypeActivation}, nil
			},
		})
		require.NoError(t, err)
		require.True(t, rec.IsActivated())
		require.Equal(t, int64(2), historyCount(t, store, id))
		last, err := store.LastHistory(id)
		require.NoError(t, err)
		require.Equal(t, models.StageAccepted, last.Stage)
		require.Equal(t, models.SystemUser, last.UserName)
		require.Equal(t, 1, events.count())
	})

	t.Run(`Update cannot change stage`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, store, models.StagePending)

		_, err := engine.Update(ctx, UpdateCommand{
			CandidateID: id,
			Mutate: func(rec *dbmodels.Candidate) (dbmodels.CandidateHistory, error) {
				rec.Stage = models.StageAccepted
				return dbmodels.CandidateHistory{ActionType: dbmodels.HistoryTypeActivation}, nil
			},
		})
		require.ErrorIs(t, err, models.ErrIllegalTransition)
		require.Equal(t, models.StagePending, getStage(t, store, id))
		require.Equal(t, int64(1), historyCount(t, store, id))
	})

	t.Run(`Update passes mutate error through`, func(t *testing.T) {
		store := candidatestore.NewMemInstance()
		engine := NewInstance(store, nil, time.Second)
		id := newCandidate(t, store, models.StagePending)

		_, err := engine.Update(ctx, UpdateCommand{
			CandidateID: id,
			Mutate: func(rec *dbmodels.Candidate) (dbmodels.CandidateHistory, error) {
				return dbmodels.CandidateHistory{}, models.ErrInvalidState
			},
		})
		require.ErrorIs(t, err, models.ErrInvalidState)
	})
}

func TestSourceGuard(t *testing.T) {
	store := candidatestore.NewMemInstance()
	engine := NewInstance(store, nil, time.Second)
	id := newCandidate(t, store, models.StagePending)

	_, err := engine.RequestTransition(context.Background(), TransitionCommand{
		CandidateID: id,
		Source:      models.StageReview,
		Target:      models.StageReview,
		Note:        "Нужно второе собеседование",
		AllowStay:   true,
	})
	require.ErrorIs(t, err, models.ErrIllegalTransition)
	require.Equal(t, models.StagePending, getStage(t, store, id))
	require.Equal(t, int64(1), historyCount(t, store, id))
}
