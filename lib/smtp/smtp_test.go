package smtp

import (
	"io"
	"strings"
	"testing"

	"github.com/emersion/go-sasl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSendEMail(t *testing.T) {
	settings := Settings{
		User:       "robot@example.com",
		Password:   "secret",
		Host:       "smtp.example.com",
		Port:       "465",
		From:       "hr@example.com",
		TLSEnabled: true,
	}
	t.Run(`не настроен`, func(t *testing.T) {
		called := false
		i := impl{
			settings: Settings{Host: "smtp.example.com"},
			send: func(string, bool, sasl.Client, string, []string, *strings.Reader) error {
				called = true
				return nil
			},
		}
		require.NoError(t, i.SendEMail("a@example.com", "s", "m"))
		require.False(t, called)
	})
	t.Run(`отправка`, func(t *testing.T) {
		var (
			gotAddr string
			gotTLS  bool
			gotTo   []string
			gotBody string
		)
		i := impl{
			settings: settings,
			send: func(addr string, tlsEnabled bool, _ sasl.Client, _ string, to []string, body *strings.Reader) error {
				gotAddr, gotTLS, gotTo = addr, tlsEnabled, to
				b, _ := io.ReadAll(body)
				gotBody = string(b)
				return nil
			},
		}
		require.NoError(t, i.SendEMail("a@example.com", "Appraisal submitted", "text"))
		require.Equal(t, "smtp.example.com:465", gotAddr)
		require.True(t, gotTLS)
		require.Equal(t, []string{"a@example.com"}, gotTo)
		require.Contains(t, gotBody, "From: hr@example.com\r\n")
		require.Contains(t, gotBody, "Subject: Appraisal submitted - Appraisal System\r\n")
		require.True(t, strings.HasSuffix(gotBody, "\r\n\r\ntext\r\n"))
	})
	t.Run(`ошибка сервера`, func(t *testing.T) {
		i := impl{
			settings: settings,
			send: func(string, bool, sasl.Client, string, []string, *strings.Reader) error {
				return errors.New("535 auth failed")
			},
		}
		require.Error(t, i.SendEMail("a@example.com", "s", "m"))
	})
}

func TestSettings(t *testing.T) {
	require.False(t, Settings{}.Configured())
	require.Equal(t, "robot@example.com", Settings{User: "robot@example.com"}.sender())
}
