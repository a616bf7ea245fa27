package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

const subjectSuffix = "Appraisal System"

var Instance Provider

type Provider interface {
	SendEMail(to, subject, message string) error
}

type Settings struct {
	User       string
	Password   string
	Host       string
	Port       string
	From       string
	TLSEnabled bool
}

// Configured без адреса сервера и учетной записи письма не отправляются
func (s Settings) Configured() bool {
	return s.User != "" && s.Host != "" && s.Port != ""
}

func (s Settings) sender() string {
	if s.From != "" {
		return s.From
	}
	return s.User
}

func Connect(settings Settings) {
	Instance = NewInstance(settings)
}

func NewInstance(settings Settings) Provider {
	return impl{
		settings: settings,
		send:     sendMail,
	}
}

type sendFunc func(addr string, tlsEnabled bool, auth sasl.Client, from string, to []string, body *strings.Reader) error

type impl struct {
	settings Settings
	send     sendFunc
}

func (i impl) SendEMail(to, subject, message string) error {
	logger := log.WithField("recipient", to)
	if !i.settings.Configured() {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	auth := sasl.NewPlainClient("", i.settings.User, i.settings.Password)
	body := strings.NewReader(buildMessage(i.settings.sender(), to, subject, message))
	addr := i.settings.Host + ":" + i.settings.Port
	if err := i.send(addr, i.settings.TLSEnabled, auth, i.settings.User, []string{to}, body); err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(from, to, subject, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s - %s\r\n", subject, subjectSuffix)
	b.WriteString("MIME-version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(message)
	b.WriteString("\r\n")
	return b.String()
}

func sendMail(addr string, tlsEnabled bool, auth sasl.Client, from string, to []string, body *strings.Reader) error {
	if tlsEnabled {
		return smtp.SendMailTLS(addr, auth, from, to, body)
	}
	return smtp.SendMail(addr, auth, from, to, body)
}
