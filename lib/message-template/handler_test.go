package messagetemplate

import (
	"context"
	"testing"

	"hr-onboarding-backend/models"
	activationapimodels "hr-onboarding-backend/models/api/activation"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	configured bool
	err        error
	to         string
	subject    string
	message    string
}

func (f *fakeSender) SendEMail(from, to, message, subject string) error {
	f.to = to
	f.subject = subject
	f.message = message
	return f.err
}

func (f *fakeSender) IsConfigured() bool {
	return f.configured
}

var payload = activationapimodels.WelcomePayload{
	FullName:     "Иван Петров",
	Email:        "ivan@example.com",
	TempPassword: "Str0ng!Passw",
	Role:         "Manager",
	LoginURL:     "https://hr.example.com/login",
	CompanyName:  "Ромашка",
}

func TestBuildWelcomeMsg(t *testing.T) {
	msg, err := BuildWelcomeMsg(payload)
	require.NoError(t, err)
	require.Contains(t, msg, "Здравствуйте, Иван Петров!")
	require.Contains(t, msg, "в Ромашка")
	require.Contains(t, msg, "Временный пароль: Str0ng!Passw")
	require.Contains(t, msg, "Роль: Manager")
	require.Contains(t, msg, "https://hr.example.com/login")

	noURL := payload
	noURL.LoginURL = ""
	noURL.CompanyName = ""
	msg, err = BuildWelcomeMsg(noURL)
	require.NoError(t, err)
	require.NotContains(t, msg, "Вход в систему")
	require.Contains(t, msg, "Для вас создана учетная запись.")
}

func TestSendWelcome(t *testing.T) {
	ctx := context.Background()

	t.Run(`message is sent to recipient`, func(t *testing.T) {
		sender := &fakeSender{configured: true}
		err := NewInstance(sender, "hr@example.com").SendWelcome(ctx, "ivan@example.com", payload)
		require.NoError(t, err)
		require.Equal(t, "ivan@example.com", sender.to)
		require.Equal(t, "Ромашка - Доступ к учетной записи", sender.subject)
		require.Contains(t, sender.message, "Str0ng!Passw")
	})

	t.Run(`smtp not configured`, func(t *testing.T) {
		err := NewInstance(&fakeSender{}, "hr@example.com").SendWelcome(ctx, "ivan@example.com", payload)
		require.ErrorIs(t, err, models.ErrDelivery)
	})

	t.Run(`delivery error`, func(t *testing.T) {
		sender := &fakeSender{configured: true, err: errors.New("550 mailbox unavailable")}
		err := NewInstance(sender, "hr@example.com").SendWelcome(ctx, "ivan@example.com", payload)
		require.ErrorIs(t, err, models.ErrDelivery)
	})

	t.Run(`empty recipient`, func(t *testing.T) {
		err := NewInstance(&fakeSender{configured: true}, "hr@example.com").SendWelcome(ctx, "", payload)
		require.ErrorIs(t, err, models.ErrDelivery)
	})
}
