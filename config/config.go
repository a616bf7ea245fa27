package config

import (
	"time"

	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		// URL адрес фронтенда для ссылок в письмах
		URL       string `default:"http://localhost:3000" env:"APP_URL"`
		BodyLimit int    `default:"10485760" env:"APP_BODY_LIMIT"`
		// LogLevel уровень логов сервиса: debug, info, warn, error
		LogLevel string `default:"info" env:"APP_LOG_LEVEL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"appraisal" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret string `default:"" env:"JWT_SECRET"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"signatures" env:"S3_BUCKET_NAME"`
		// PublicURL базовый адрес для ссылок на подписи, по умолчанию endpoint
		PublicURL string `default:"" env:"S3_PUBLIC_URL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		From       string `default:"" env:"SMTP_FROM"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Notify struct {
		// ErrNotifyAddr адрес для отправки 500-х ошибок, пусто - не отправлять
		ErrNotifyAddr string `default:"" env:"ERR_NOTIFY_ADDR"`
	}
	Export struct {
		// FontDir каталог UTF-8 шрифтов для pdf (Arial.ttf, Arial Bold.ttf)
		FontDir string `default:"static/font/" env:"EXPORT_FONT_DIR"`
	}
	Worker struct {
		SectionOpenInterval time.Duration `default:"5m" env:"WORKER_SECTION_OPEN_INTERVAL"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
