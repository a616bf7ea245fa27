package initializers

import (
	"appraisal-backend/config"
	"appraisal-backend/db"

	log "github.com/sirupsen/logrus"
)

func InitDBConnection() {
	conf := config.Conf.Database
	log.WithFields(log.Fields{
		"host":     conf.Host,
		"database": conf.Name,
	}).Info("Подключение к БД")
	err := db.Connect(conf.Host, conf.Port, conf.Name, conf.User, conf.Password,
		conf.DebugMode != nil && *conf.DebugMode, conf.MigrateOnStart == nil || *conf.MigrateOnStart)
	if err != nil {
		log.WithError(err).Fatal("Сервис не запущен")
	}
}
