package initializers

import (
	"appraisal-backend/fiberlog"

	log "github.com/sirupsen/logrus"
)

func jsonFormatter() log.Formatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger настраивает общий логгер и возвращает конфиг логирования запросов api
func InitLogger(level string) *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
		log.WithField("level", level).Warn("Неизвестный уровень логов, используется info")
	}
	log.SetLevel(lvl)

	// запросы пишутся всегда, независимо от уровня сервиса
	requestLogger := log.New()
	requestLogger.SetFormatter(jsonFormatter())
	requestLogger.SetLevel(log.InfoLevel)
	return &fiberlog.Config{
		Logger: requestLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
		},
	}
}
