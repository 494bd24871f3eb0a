package activationhandler

import (
	"context"
	"fmt"
	identityhandler "hr-onboarding-backend/lib/identity"
	messagetemplate "hr-onboarding-backend/lib/message-template"
	pipelinehandler "hr-onboarding-backend/lib/pipeline"
	authutils "hr-onboarding-backend/lib/utils/auth-utils"
	"hr-onboarding-backend/models"
	activationapimodels "hr-onboarding-backend/models/api/activation"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	dbmodels "hr-onboarding-backend/models/db"
	wsmodels "hr-onboarding-backend/models/ws"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Activate создает учетную запись принятому кандидату, этап кандидата не меняется
	Activate(ctx context.Context, candidateID string, data activationapimodels.ActivateRequest, author candidateapimodels.Author) (activationapimodels.ActivationResult, error)
}

type Settings struct {
	LoginURL    string
	CompanyName string
}

var Instance Provider

func NewHandler(pipeline pipelinehandler.Provider, identity identityhandler.Provider, notifier messagetemplate.Provider, settings Settings) {
	Instance = NewInstance(pipeline, identity, notifier, settings)
}

func NewInstance(pipeline pipelinehandler.Provider, identity identityhandler.Provider, notifier messagetemplate.Provider, settings Settings) Provider {
	return impl{
		pipeline: pipeline,
		identity: identity,
		notifier: notifier,
		settings: settings,
		now:      time.Now,
	}
}

type impl struct {
	pipeline pipelinehandler.Provider
	identity identityhandler.Provider
	notifier messagetemplate.Provider
	settings Settings
	now      func() time.Time
}

func (i impl) Activate(ctx context.Context, candidateID string, data activationapimodels.ActivateRequest, author candidateapimodels.Author) (result activationapimodels.ActivationResult, err error) {
	logger := log.
		WithField("candidate_id", candidateID).
		WithField("role", data.Role)
	if err = data.Validate(); err != nil {
		return result, err
	}
	secret := data.TempPassword
	generated := false
	if secret == "" {
		secret, err = authutils.GenerateTempPassword(authutils.GeneratedSecretLen)
		if err != nil {
			logger.WithError(err).Error("ошибка генерации временного пароля")
			return result, errors.New("ошибка генерации временного пароля")
		}
		generated = true
	}
	role := strings.TrimSpace(data.Role)

	rec, err := i.pipeline.Update(ctx, pipelinehandler.UpdateCommand{
		CandidateID: candidateID,
		Event:       wsmodels.EventActivated,
		Mutate: func(rec *dbmodels.Candidate) (dbmodels.CandidateHistory, error) {
			if rec.Stage != models.StageAccepted {
				return dbmodels.CandidateHistory{}, errors.Wrapf(models.ErrInvalidState, "текущий этап: %v", rec.Stage.ToHuman())
			}
			if rec.IsActivated() {
				return dbmodels.CandidateHistory{}, models.ErrAlreadyActivated
			}
			accountID, err := i.identity.ProvisionAccount(ctx, identityhandler.ProvisionRequest{
				CandidateID:  rec.ID,
				Email:        rec.Email,
				TempSecret:   secret,
				Role:         role,
				DepartmentID: data.DepartmentID,
			})
			if err != nil {
				if errors.Is(err, models.ErrProvision) {
					return dbmodels.CandidateHistory{}, err
				}
				return dbmodels.CandidateHistory{}, errors.Wrap(models.ErrProvision, err.Error())
			}
			activatedAt := i.now()
			rec.AccountID = &accountID
			rec.ActivatedAt = &activatedAt
			return newActivationHistory(author, accountID, role), nil
		},
		EventMsg: "Создана учетная запись кандидата",
	})
	if err != nil {
		if errors.Is(err, models.ErrProvision) {
			logger.WithError(err).Warn("учетная запись не создана")
		}
		return activationapimodels.ActivationResult{}, err
	}
	logger.Info("кандидат активирован")

	result = activationapimodels.ActivationResult{
		CandidateID: rec.ID,
		AccountID:   *rec.AccountID,
	}
	if generated {
		result.TempPassword = secret
	} else {
		for _, warning := range authutils.CheckSecretStrength(secret) {
			result.Warnings = append(result.Warnings, "ненадежный пароль: "+warning)
		}
	}
	if data.SendWelcome {
		err = i.notifier.SendWelcome(ctx, rec.Email, activationapimodels.WelcomePayload{
			FullName:     rec.GetFullName(),
			Email:        rec.Email,
			TempPassword: secret,
			Role:         role,
			LoginURL:     i.settings.LoginURL,
			CompanyName:  i.settings.CompanyName,
		})
		if err != nil {
			logger.WithError(err).Warn("активация выполнена, приветственное письмо не отправлено")
			result.SetNotificationError(err)
		} else {
			result.WelcomeSent = true
		}
	}
	return result, nil
}

func newActivationHistory(author candidateapimodels.Author, accountID, role string) dbmodels.CandidateHistory {
	rec := dbmodels.CandidateHistory{
		UserName:   author.GetName(),
		ActionType: dbmodels.HistoryTypeActivation,
		Changes: dbmodels.EntityChanges{
			Description: fmt.Sprintf("Создана учетная запись с ролью %v", role),
			Data: []dbmodels.FieldChanges{
				{Field: "account_id", OldValue: nil, NewValue: accountID},
			},
		},
	}
	if author.UserID != "" {
		userID := author.UserID
		rec.UserID = &userID
	}
	return rec
}
