package identityhandler

import (
	"context"
	identitystore "hr-onboarding-backend/lib/identity/store"
	authutils "hr-onboarding-backend/lib/utils/auth-utils"
	"hr-onboarding-backend/models"
	dbmodels "hr-onboarding-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type ProvisionRequest struct {
	CandidateID  string
	Email        string
	TempSecret   string
	Role         string
	DepartmentID *string
}

type Provider interface {
	// ProvisionAccount создает учетную запись кандидата. Повторный вызов возвращает уже созданную
	// и устанавливает ей переданный временный пароль
	ProvisionAccount(ctx context.Context, data ProvisionRequest) (accountID string, err error)
}

var Instance Provider

func NewHandler(store identitystore.Provider) {
	Instance = NewInstance(store)
}

func NewInstance(store identitystore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store identitystore.Provider
}

func (i impl) ProvisionAccount(ctx context.Context, data ProvisionRequest) (string, error) {
	logger := log.
		WithField("candidate_id", data.CandidateID).
		WithField("role", data.Role)
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(models.ErrProvision, err.Error())
	}
	email := strings.ToLower(strings.TrimSpace(data.Email))
	if email == "" {
		return "", errors.Wrap(models.ErrProvision, "у кандидата не указан email")
	}
	if data.TempSecret == "" {
		return "", errors.Wrap(models.ErrProvision, "не указан временный пароль")
	}

	exist, err := i.store.GetByCandidateID(data.CandidateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения учетной записи кандидата")
		return "", errors.Wrap(models.ErrProvision, "ошибка получения учетной записи кандидата")
	}
	if exist != nil {
		logger = logger.WithField("account_id", exist.ID)
		if err = i.resetPassword(exist.ID, data.TempSecret); err != nil {
			logger.WithError(err).Error("ошибка обновления пароля учетной записи")
			return "", errors.Wrap(models.ErrProvision, "ошибка обновления пароля учетной записи")
		}
		logger.Info("учетная запись кандидата уже создана, временный пароль обновлен")
		return exist.ID, nil
	}
	byEmail, err := i.store.GetByEmail(email)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки email учетной записи")
		return "", errors.Wrap(models.ErrProvision, "ошибка проверки email учетной записи")
	}
	if byEmail != nil {
		return "", errors.Wrap(models.ErrProvision, "учетная запись с таким email уже существует")
	}

	hash, err := authutils.HashPassword(data.TempSecret)
	if err != nil {
		logger.WithError(err).Error("ошибка хеширования пароля")
		return "", errors.Wrap(models.ErrProvision, "ошибка хеширования пароля")
	}
	id, err := i.store.Create(dbmodels.AccountUser{
		CandidateID:        data.CandidateID,
		Email:              email,
		Password:           hash,
		Role:               strings.TrimSpace(data.Role),
		DepartmentID:       data.DepartmentID,
		IsActive:           true,
		MustChangePassword: true,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания учетной записи")
		return "", errors.Wrap(models.ErrProvision, "ошибка создания учетной записи")
	}
	logger.WithField("account_id", id).Info("создана учетная запись")
	return id, nil
}

func (i impl) resetPassword(accountID, secret string) error {
	hash, err := authutils.HashPassword(secret)
	if err != nil {
		return err
	}
	return i.store.UpdatePassword(accountID, hash)
}
