package appraisalhandler

import (
	"appraisal-backend/lib/uow"
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// latestStageRecords последние записи разделов сотрудника для сводки.
// Обязательны личные данные, планирование, годовая оценка и итоговый раздел.
func latestStageRecords(stores uow.Stores, employeeID string) (records []dbmodels.StageRecord, pi *dbmodels.PersonalInfo, err error) {
	pi, err = stores.PersonalInfo.GetLastByUser(employeeID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения личных данных")
	}
	if pi == nil {
		return nil, nil, models.NewValidationError("Personal info is required.")
	}
	pp, err := stores.PerformancePlanning.GetLastByUser(employeeID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения планирования")
	}
	if pp == nil {
		return nil, nil, models.NewValidationError("Performance planning is required.")
	}
	myr, err := stores.MidYearReview.GetLastByUser(employeeID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения промежуточной оценки")
	}
	eyr, err := stores.EndYearReview.GetLastByUser(employeeID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения годовой оценки")
	}
	if eyr == nil {
		return nil, nil, models.NewValidationError("End-year review is required.")
	}
	aa, err := stores.AnnualAppraisal.GetLastByUser(employeeID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения ежегодной аттестации")
	}
	fs, err := stores.FinalSections.GetLastByUser(employeeID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения итогового раздела")
	}
	if fs == nil {
		return nil, nil, models.NewValidationError("Final sections are required.")
	}

	records = []dbmodels.StageRecord{*pi, *pp}
	if myr != nil {
		records = append(records, *myr)
	}
	records = append(records, *eyr)
	// ежегодную аттестацию заполняет руководитель, к моменту отправки ее может не быть
	if aa != nil {
		records = append(records, *aa)
	}
	records = append(records, *fs)
	return records, pi, nil
}

// purgeStageRecords удаление записей всех разделов завершенной аттестации
func purgeStageRecords(stores uow.Stores, appraisalID string) ([]dbmodels.FieldChange, error) {
	type purger struct {
		stage  models.StageName
		delete func(appraisalID string) (int64, error)
	}
	purgers := []purger{
		{models.StagePersonalInfo, stores.PersonalInfo.DeleteByAppraisal},
		{models.StagePerformancePlanning, stores.PerformancePlanning.DeleteByAppraisal},
		{models.StageMidYearReview, stores.MidYearReview.DeleteByAppraisal},
		{models.StageEndYearReview, stores.EndYearReview.DeleteByAppraisal},
		{models.StageAnnualAppraisal, stores.AnnualAppraisal.DeleteByAppraisal},
		{models.StageFinalSections, stores.FinalSections.DeleteByAppraisal},
	}
	changes := make([]dbmodels.FieldChange, 0, len(purgers))
	for _, p := range purgers {
		count, err := p.delete(appraisalID)
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка удаления записей раздела %s", p.stage)
		}
		changes = append(changes, dbmodels.FieldChange{
			Field:    string(p.stage),
			OldValue: count,
			NewValue: 0,
		})
	}
	return changes, nil
}

// LinkStageRecords привязывает записи сотрудника, сохраненные до создания аттестации, к appraisalID
func LinkStageRecords(stores uow.Stores, employeeID, appraisalID string) error {
	type linker struct {
		stage models.StageName
		link  func(userID, appraisalID string) (int64, error)
	}
	linkers := []linker{
		{models.StagePersonalInfo, stores.PersonalInfo.LinkUnassigned},
		{models.StagePerformancePlanning, stores.PerformancePlanning.LinkUnassigned},
		{models.StageMidYearReview, stores.MidYearReview.LinkUnassigned},
		{models.StageEndYearReview, stores.EndYearReview.LinkUnassigned},
		{models.StageAnnualAppraisal, stores.AnnualAppraisal.LinkUnassigned},
		{models.StageFinalSections, stores.FinalSections.LinkUnassigned},
	}
	for _, l := range linkers {
		count, err := l.link(employeeID, appraisalID)
		if err != nil {
			return errors.Wrapf(err, "ошибка привязки записей раздела %s", l.stage)
		}
		if count > 0 {
			log.
				WithField("appraisal_id", appraisalID).
				WithField("stage", l.stage).
				WithField("count", count).
				Info("записи раздела привязаны к аттестации")
		}
	}
	return nil
}
