package fiberlog

import "github.com/sirupsen/logrus"

type Config struct {
	// Logger nil - стандартный логгер logrus
	Logger *logrus.Logger
	Tags   []string
	// SkipPaths пути без записи в лог
	SkipPaths []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}

func (c Config) entry() *logrus.Entry {
	if c.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.NewEntry(c.Logger)
}
