package smtp

import (
	"fmt"
	"hr-onboarding-backend/models"
	"io"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(from, to, message, subject string) error
	IsConfigured() bool
}

type sendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = NewInstance(user, password, host, port, tlsEnabled)
	return nil
}

func NewInstance(user, password, host, port string, tlsEnabled bool) Provider {
	send := smtp.SendMail
	if tlsEnabled {
		send = smtp.SendMailTLS
	}
	return &impl{
		user:     user,
		password: password,
		host:     host,
		port:     port,
		send:     send,
	}
}

type impl struct {
	user     string
	password string
	host     string
	port     string
	send     sendFunc
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(from, to, message, subject string) (err error) {
	logger := log.WithField("sender", from)
	if !i.IsConfigured() {
		logger.Warn("письмо не отправлено, тк не настроен smtp клиент")
		return errors.Wrap(models.ErrDelivery, "smtp клиент не настроен")
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	err = i.send(i.host+":"+i.port, auth, i.user, []string{to}, strings.NewReader(buildBody(from, to, subject, message)))
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return errors.Wrap(models.ErrDelivery, err.Error())
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildBody(from, to, subject, message string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	return fmt.Sprintf("%s\r\n\r\n%s\r\n", strings.Join(headers, "\r\n"), message)
}
