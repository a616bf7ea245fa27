package db

import (
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	models := []struct {
		name  string
		model interface{}
	}{
		{"User", &dbmodels.User{}},
		{"Appraisal", &dbmodels.Appraisal{}},
		{"AppraisalHistory", &dbmodels.AppraisalHistory{}},
		{"SectionAvailability", &dbmodels.SectionAvailability{}},
		{"SignatureFile", &dbmodels.SignatureFile{}},
		{"PersonalInfo", &dbmodels.PersonalInfo{}},
		{"PerformancePlanning", &dbmodels.PerformancePlanning{}},
		{"MidYearReview", &dbmodels.MidYearReview{}},
		{"EndYearReview", &dbmodels.EndYearReview{}},
		{"AnnualAppraisal", &dbmodels.AnnualAppraisal{}},
		{"FinalSections", &dbmodels.FinalSections{}},
	}
	for _, item := range models {
		if err := DB.AutoMigrate(item.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %s", item.name)
		}
	}
	// не более одной активной аттестации на сотрудника
	err := DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uq_appraisals_active_employee ON appraisals (employee_id) " +
		"WHERE status IN ('in-progress', 'submitted')").Error
	if err != nil {
		return errors.Wrap(err, "ошибка создания индекса активной аттестации")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
