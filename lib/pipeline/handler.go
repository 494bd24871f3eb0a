package pipelinehandler

import (
	"context"
	"fmt"
	candidatestore "hr-onboarding-backend/lib/candidate/store"
	"hr-onboarding-backend/lib/utils/lock"
	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	dbmodels "hr-onboarding-backend/models/db"
	wsmodels "hr-onboarding-backend/models/ws"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// число попыток при конфликте версий
const maxCommitAttempts = 3

type Provider interface {
	// RequestTransition переводит кандидата на этап cmd.Target, журнал и этап сохраняются атомарно
	RequestTransition(ctx context.Context, cmd TransitionCommand) (TransitionResult, error)
	// Update изменяет поля кандидата кроме этапа под той же блокировкой записи
	Update(ctx context.Context, cmd UpdateCommand) (dbmodels.Candidate, error)
}

// EventSink получатель событий по кандидатам (websocket hub)
type EventSink interface {
	Broadcast(msg wsmodels.ServerMessage)
}

type TransitionCommand struct {
	CandidateID string
	Target      models.CandidateStage
	// Source если задан, кандидат должен находиться на этом этапе
	Source     models.CandidateStage
	Note       string
	Author     candidateapimodels.Author
	ActionType dbmodels.ActionType // по умолчанию stage_change
	Event      wsmodels.EventCode  // по умолчанию candidate_stage_changed
	// AllowStay разрешает Target == текущему этапу: запись в журнал без смены этапа
	AllowStay bool
	Data      []dbmodels.FieldChanges
	// Apply дополнительные изменения кандидата, сохраняются в той же транзакции
	Apply func(rec *dbmodels.Candidate)
}

type TransitionResult struct {
	Candidate dbmodels.Candidate
	From      models.CandidateStage
	To        models.CandidateStage
	Applied   bool // false - повтор уже выполненной команды, изменений нет
}

type UpdateCommand struct {
	CandidateID string
	Event       wsmodels.EventCode
	EventMsg    string
	// Mutate меняет копию кандидата и возвращает запись для журнала
	Mutate func(rec *dbmodels.Candidate) (dbmodels.CandidateHistory, error)
}

var Instance Provider

func NewHandler(store candidatestore.Provider, events EventSink, lockWait time.Duration) {
	Instance = NewInstance(store, events, lockWait)
}

func NewInstance(store candidatestore.Provider, events EventSink, lockWait time.Duration) Provider {
	return impl{
		store:    store,
		events:   events,
		lockWait: lockWait,
		now:      time.Now,
	}
}

type impl struct {
	store    candidatestore.Provider
	events   EventSink
	lockWait time.Duration
	now      func() time.Time
}

func (i impl) RequestTransition(ctx context.Context, cmd TransitionCommand) (result TransitionResult, err error) {
	logger := log.
		WithField("candidate_id", cmd.CandidateID).
		WithField("target_stage", cmd.Target)
	if !cmd.Target.IsValid() {
		return result, models.NewValidationError("stage", "неизвестный этап")
	}
	note := strings.TrimSpace(cmd.Note)
	if note == "" {
		return result, models.NewValidationError("note", "не указано обоснование перевода")
	}
	if cmd.ActionType == "" {
		cmd.ActionType = dbmodels.HistoryTypeStageChange
	}

	err = i.withRecordLock(ctx, cmd.CandidateID, func() error {
		for attempt := 0; attempt < maxCommitAttempts; attempt++ {
			rec, err := i.getCandidate(cmd.CandidateID)
			if err != nil {
				return err
			}
			from := rec.Stage
			if cmd.Source != "" && from != cmd.Source {
				return models.IllegalTransitionError(from, cmd.Target)
			}
			if from == cmd.Target {
				if !cmd.AllowStay {
					return models.IllegalTransitionError(from, cmd.Target)
				}
				replay, err := i.isReplay(cmd, note)
				if err != nil {
					return err
				}
				if replay {
					result = TransitionResult{Candidate: *rec, From: from, To: from}
					return nil
				}
			} else if !from.CanMoveTo(cmd.Target) {
				return models.IllegalTransitionError(from, cmd.Target)
			}

			updated := *rec
			if cmd.Apply != nil {
				cmd.Apply(&updated)
			}
			updated.Stage = cmd.Target
			changes := dbmodels.EntityChanges{Description: note, Data: cmd.Data}
			if from != cmd.Target {
				changes = changes.WithChange("stage", from, cmd.Target)
			}
			history := newHistory(cmd.Author, cmd.ActionType, cmd.Target, changes)

			err = i.store.Commit(dbmodels.CandidateCommit{
				Record:          updated,
				ExpectedVersion: rec.Version,
				History:         history,
			})
			if errors.Is(err, models.ErrVersionConflict) {
				logger.WithField("attempt", attempt+1).Warn("конфликт версий при смене этапа кандидата, повтор")
				continue
			}
			if err != nil {
				logger.WithError(err).Error("ошибка сохранения этапа кандидата")
				return errors.New("ошибка сохранения этапа кандидата")
			}
			updated.Version = rec.Version + 1
			result = TransitionResult{Candidate: updated, From: from, To: cmd.Target, Applied: true}
			return nil
		}
		return models.ErrVersionConflict
	})
	if err != nil {
		return TransitionResult{}, err
	}
	if result.Applied {
		logger.WithField("from_stage", result.From).Info("этап кандидата изменен")
		event := cmd.Event
		if event == "" {
			event = wsmodels.EventStageChanged
		}
		i.publish(event, result.Candidate, fmt.Sprintf("Кандидат %s: этап «%s»", result.Candidate.GetFullName(), result.To.ToHuman()))
	}
	return result, nil
}

func (i impl) Update(ctx context.Context, cmd UpdateCommand) (result dbmodels.Candidate, err error) {
	logger := log.WithField("candidate_id", cmd.CandidateID)
	err = i.withRecordLock(ctx, cmd.CandidateID, func() error {
		for attempt := 0; attempt < maxCommitAttempts; attempt++ {
			rec, err := i.getCandidate(cmd.CandidateID)
			if err != nil {
				return err
			}
			updated := *rec
			history, err := cmd.Mutate(&updated)
			if err != nil {
				return err
			}
			if updated.Stage != rec.Stage {
				logger.Error("попытка смены этапа кандидата в обход перехода")
				return models.IllegalTransitionError(rec.Stage, updated.Stage)
			}
			history.Stage = updated.Stage
			if history.UserName == "" {
				history.UserName = models.SystemUser
			}
			err = i.store.Commit(dbmodels.CandidateCommit{
				Record:          updated,
				ExpectedVersion: rec.Version,
				History:         history,
			})
			if errors.Is(err, models.ErrVersionConflict) {
				logger.WithField("attempt", attempt+1).Warn("конфликт версий при изменении кандидата, повтор")
				continue
			}
			if err != nil {
				logger.WithError(err).Error("ошибка сохранения кандидата")
				return errors.New("ошибка сохранения кандидата")
			}
			updated.Version = rec.Version + 1
			result = updated
			return nil
		}
		return models.ErrVersionConflict
	})
	if err != nil {
		return dbmodels.Candidate{}, err
	}
	if cmd.Event != "" {
		i.publish(cmd.Event, result, cmd.EventMsg)
	}
	return result, nil
}

func (i impl) withRecordLock(ctx context.Context, candidateID string, safeCode func() error) error {
	success, err := lock.WithDelay(ctx, "candidate:"+candidateID, i.lockWait, safeCode)
	if !success {
		log.WithField("candidate_id", candidateID).Warn("не удалось получить блокировку кандидата")
		return models.ErrRecordBusy
	}
	return err
}

func (i impl) getCandidate(id string) (*dbmodels.Candidate, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("candidate_id", id).WithError(err).Error("ошибка получения кандидата")
		return nil, errors.New("ошибка получения кандидата")
	}
	if rec == nil {
		return nil, models.ErrCandidateNotFound
	}
	return rec, nil
}

// isReplay последняя запись журнала совпадает с командой
func (i impl) isReplay(cmd TransitionCommand, note string) (bool, error) {
	last, err := i.store.LastHistory(cmd.CandidateID)
	if err != nil {
		log.WithField("candidate_id", cmd.CandidateID).WithError(err).Error("ошибка получения журнала кандидата")
		return false, errors.New("ошибка получения журнала кандидата")
	}
	if last == nil {
		return false, nil
	}
	return last.ActionType == cmd.ActionType &&
		last.Stage == cmd.Target &&
		last.Changes.Description == note, nil
}

func (i impl) publish(code wsmodels.EventCode, rec dbmodels.Candidate, msg string) {
	if i.events == nil {
		return
	}
	i.events.Broadcast(wsmodels.ServerMessage{
		Time:        i.now().Format("02.01.2006 15:04:05"),
		Code:        code,
		CandidateID: rec.ID,
		Stage:       rec.Stage,
		Msg:         msg,
	})
}

func newHistory(author candidateapimodels.Author, action dbmodels.ActionType, stage models.CandidateStage, changes dbmodels.EntityChanges) dbmodels.CandidateHistory {
	rec := dbmodels.CandidateHistory{
		UserName:   author.GetName(),
		ActionType: action,
		Stage:      stage,
		Changes:    changes,
	}
	if author.UserID != "" {
		userID := author.UserID
		rec.UserID = &userID
	}
	return rec
}
