package initializers

import (
	"appraisal-backend/config"
	"appraisal-backend/lib/smtp"

	log "github.com/sirupsen/logrus"
)

func InitSmtp() {
	conf := config.Conf.Smtp
	settings := smtp.Settings{
		User:       conf.User,
		Password:   conf.Password,
		Host:       conf.Host,
		Port:       conf.Port,
		From:       conf.From,
		TLSEnabled: conf.TLSEnabled == nil || *conf.TLSEnabled,
	}
	if !settings.Configured() {
		log.Warn("smtp не настроен, уведомления по почте отправляться не будут")
	}
	smtp.Connect(settings)
}
