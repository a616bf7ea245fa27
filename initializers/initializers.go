package initializers

import (
	"context"

	"appraisal-backend/config"
	"appraisal-backend/db"
	"appraisal-backend/fiberlog"
	appraisalhandler "appraisal-backend/lib/appraisal"
	pdfexport "appraisal-backend/lib/export/pdf"
	xlsexport "appraisal-backend/lib/export/xls"
	"appraisal-backend/lib/notify"
	sectionavailabilityhandler "appraisal-backend/lib/section-availability"
	sectionavailabilityworker "appraisal-backend/lib/section-availability/worker"
	stagehandler "appraisal-backend/lib/stage"
	"appraisal-backend/lib/uow"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger(config.Conf.App.LogLevel)
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	unit := uow.NewInstance(db.DB)
	notify.NewHandler(config.Conf.App.URL)
	xlsexport.NewHandler()
	pdfexport.NewHandler(config.Conf.Export.FontDir)
	sectionavailabilityhandler.NewHandler(unit)
	// записи доступности по всем разделам, по умолчанию открыты
	if err := sectionavailabilityhandler.Instance.Preload(); err != nil {
		log.WithError(err).Error("ошибка заполнения доступности разделов")
	}
	appraisalhandler.NewHandler(unit)
	stagehandler.NewHandler(unit)
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача открытия разделов формы по наступлению даты
	sectionavailabilityworker.StartWorker(ctx, config.Conf.Worker.SectionOpenInterval)
}
