package messagetemplate

import (
	"context"
	"hr-onboarding-backend/lib/smtp"
	"hr-onboarding-backend/models"
	activationapimodels "hr-onboarding-backend/models/api/activation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// SendWelcome отправляет приветственное письмо с временным паролем
	SendWelcome(ctx context.Context, recipient string, data activationapimodels.WelcomePayload) error
}

var Instance Provider

func NewHandler(sender smtp.Provider, from string) {
	Instance = NewInstance(sender, from)
}

func NewInstance(sender smtp.Provider, from string) Provider {
	return impl{
		sender: sender,
		from:   from,
	}
}

type impl struct {
	sender smtp.Provider
	from   string
}

func (i impl) SendWelcome(ctx context.Context, recipient string, data activationapimodels.WelcomePayload) error {
	logger := log.WithField("recipient", recipient)
	if recipient == "" {
		return errors.Wrap(models.ErrDelivery, "не указан адрес получателя")
	}
	if i.sender == nil || !i.sender.IsConfigured() {
		logger.Warn("smtp клиент не настроен")
		return errors.Wrap(models.ErrDelivery, "smtp клиент не настроен")
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(models.ErrDelivery, err.Error())
	}
	msg, err := BuildWelcomeMsg(data)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования приветственного письма")
		return errors.Wrap(models.ErrDelivery, "ошибка формирования приветственного письма")
	}
	err = i.sender.SendEMail(i.from, recipient, msg, GetWelcomeTitle(data.CompanyName))
	if err != nil {
		logger.WithError(err).Error("ошибка отправки приветственного письма")
		if errors.Is(err, models.ErrDelivery) {
			return err
		}
		return errors.Wrap(models.ErrDelivery, err.Error())
	}
	return nil
}
