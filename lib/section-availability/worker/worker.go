package sectionavailabilityworker

import (
	"context"
	"time"

	sectionavailabilityhandler "appraisal-backend/lib/section-availability"
	baseworker "appraisal-backend/lib/utils/base-worker"

	"github.com/pkg/errors"
)

func StartWorker(ctx context.Context, interval time.Duration) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("SectionOpenWorker", 10*time.Second, interval),
		sections: sectionavailabilityhandler.Instance,
		now:      time.Now,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	sections sectionavailabilityhandler.Provider
	now      func() time.Time
}

func (i impl) handle(ctx context.Context) error {
	opened, err := i.sections.OpenDue(i.now())
	if err != nil {
		return errors.Wrap(err, "ошибка открытия разделов по дате")
	}
	if opened > 0 {
		i.GetLogger().WithField("opened", opened).Info("Открыты разделы по наступлению даты")
	}
	return nil
}
