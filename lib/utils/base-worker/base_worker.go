package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	"appraisal-backend/lib/metrics"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// JobFunc один проход фоновой задачи
type JobFunc func(ctx context.Context) error

type BaseImpl struct {
	Name          string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(name string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		Name:          name,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.Name)
}

// Run выполняет job по расписанию до отмены ctx. Паника одного прохода не останавливает цикл.
func (i BaseImpl) Run(ctx context.Context, job JobFunc) {
	logger := i.GetLogger()
	timer := time.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-timer.C:
			i.runOnce(ctx, job)
			timer.Reset(i.runInterval)
		}
	}
}

func (i BaseImpl) runOnce(ctx context.Context, job JobFunc) {
	logger := i.GetLogger()
	started := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
			err = errors.Errorf("panic: %v", r)
		}
		metrics.WorkerRun(i.Name, err, time.Since(started))
	}()
	err = job(ctx)
	if err != nil {
		logger.WithError(err).Error("Ошибка выполнения задачи")
		return
	}
	logger.WithField("duration", time.Since(started).String()).Debug("Задача выполнена")
}
