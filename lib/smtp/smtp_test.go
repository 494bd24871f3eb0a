package smtp

import (
	"io"
	"testing"

	"hr-onboarding-backend/models"

	"github.com/emersion/go-sasl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSendEMail(t *testing.T) {
	t.Run(`not configured`, func(t *testing.T) {
		client := NewInstance("", "", "", "", false)
		require.False(t, client.IsConfigured())
		err := client.SendEMail("hr@example.com", "ivan@example.com", "text", "subject")
		require.ErrorIs(t, err, models.ErrDelivery)
	})

	t.Run(`message is passed to server`, func(t *testing.T) {
		var gotAddr string
		var gotTo []string
		var gotBody string
		client := &impl{user: "robot", host: "smtp.example.com", port: "587",
			send: func(addr string, a sasl.Client, from string, to []string, r io.Reader) error {
				gotAddr = addr
				gotTo = to
				body, err := io.ReadAll(r)
				gotBody = string(body)
				return err
			},
		}
		err := client.SendEMail("hr@example.com", "ivan@example.com", "Добро пожаловать", "Доступ")
		require.NoError(t, err)
		require.Equal(t, "smtp.example.com:587", gotAddr)
		require.Equal(t, []string{"ivan@example.com"}, gotTo)
		require.Contains(t, gotBody, "Subject: Доступ\r\n")
		require.Contains(t, gotBody, "\r\n\r\nДобро пожаловать\r\n")
	})

	t.Run(`server error`, func(t *testing.T) {
		client := &impl{user: "robot", host: "smtp.example.com", port: "587",
			send: func(addr string, a sasl.Client, from string, to []string, r io.Reader) error {
				return errors.New("connection refused")
			},
		}
		err := client.SendEMail("hr@example.com", "ivan@example.com", "text", "subject")
		require.ErrorIs(t, err, models.ErrDelivery)
	})
}
