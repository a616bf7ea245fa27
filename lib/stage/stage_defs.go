package stagehandler

import (
	"time"

	"appraisal-backend/lib/stage/consolidator"
	"appraisal-backend/lib/stage/lockguard"
	stagestore "appraisal-backend/lib/stage/store"
	"appraisal-backend/lib/uow"
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
)

// stageDef операции над записями одного раздела
type stageDef[T dbmodels.StageRecord] struct {
	stage models.StageName
	store func(stores uow.Stores) stagestore.Provider[T]
	// fill расчетные поля новой записи
	fill func(rec *T)
	// refill расчетные поля после частичного обновления
	refill func(rec T, updMap map[string]interface{}) map[string]interface{}
}

var (
	personalInfoDef = stageDef[dbmodels.PersonalInfo]{
		stage: models.StagePersonalInfo,
		store: func(s uow.Stores) stagestore.Provider[dbmodels.PersonalInfo] { return s.PersonalInfo },
	}
	performancePlanningDef = stageDef[dbmodels.PerformancePlanning]{
		stage: models.StagePerformancePlanning,
		store: func(s uow.Stores) stagestore.Provider[dbmodels.PerformancePlanning] { return s.PerformancePlanning },
	}
	midYearReviewDef = stageDef[dbmodels.MidYearReview]{
		stage: models.StageMidYearReview,
		store: func(s uow.Stores) stagestore.Provider[dbmodels.MidYearReview] { return s.MidYearReview },
	}
	endYearReviewDef = stageDef[dbmodels.EndYearReview]{
		stage:  models.StageEndYearReview,
		store:  func(s uow.Stores) stagestore.Provider[dbmodels.EndYearReview] { return s.EndYearReview },
		fill:   consolidator.FillEndYear,
		refill: refillEndYear,
	}
	annualAppraisalDef = stageDef[dbmodels.AnnualAppraisal]{
		stage:  models.StageAnnualAppraisal,
		store:  func(s uow.Stores) stagestore.Provider[dbmodels.AnnualAppraisal] { return s.AnnualAppraisal },
		fill:   consolidator.FillAnnual,
		refill: refillAnnual,
	}
	finalSectionsDef = stageDef[dbmodels.FinalSections]{
		stage: models.StageFinalSections,
		store: func(s uow.Stores) stagestore.Provider[dbmodels.FinalSections] { return s.FinalSections },
	}
)

// insert запись раздела вместе с переносом в аттестацию. Вызывается внутри транзакции.
func (d stageDef[T]) insert(tx uow.Stores, appraisal *dbmodels.Appraisal, rec T) (T, error) {
	var empty T
	if d.fill != nil {
		d.fill(&rec)
	}
	id, err := d.store(tx).Create(&rec)
	if err != nil {
		return empty, errors.Wrapf(err, "ошибка создания записи раздела %s", d.stage)
	}
	saved, err := d.get(tx, id)
	if err != nil {
		return empty, err
	}
	if err = consolidate(tx, appraisal, saved); err != nil {
		return empty, err
	}
	return saved, nil
}

// update частичное обновление записи с проверкой блокировки до любой записи
func (d stageDef[T]) update(tx uow.Stores, id string, updMap map[string]interface{}) (T, error) {
	var empty T
	existed, err := d.get(tx, id)
	if err != nil {
		return empty, err
	}
	appraisal, err := appraisalFor(tx, existed.GetUserID(), existed.GetAppraisalID())
	if err != nil {
		return empty, err
	}
	if err = lockguard.Check(appraisal, d.stage); err != nil {
		return empty, err
	}
	if len(updMap) == 0 {
		return empty, models.NewValidationError("No fields to update")
	}
	if existed.GetAppraisalID() == nil && appraisal != nil {
		// запись, созданная до аттестации, привязывается к ней при первом изменении
		updMap["AppraisalID"] = appraisal.ID
	}
	if err = d.store(tx).Update(id, updMap); err != nil {
		return empty, errors.Wrapf(err, "ошибка обновления записи раздела %s", d.stage)
	}
	saved, err := d.get(tx, id)
	if err != nil {
		return empty, err
	}
	if d.refill != nil {
		if extra := d.refill(saved, updMap); len(extra) > 0 {
			if err = d.store(tx).Update(id, extra); err != nil {
				return empty, errors.Wrapf(err, "ошибка пересчета записи раздела %s", d.stage)
			}
			if saved, err = d.get(tx, id); err != nil {
				return empty, err
			}
		}
	}
	if err = consolidate(tx, appraisal, saved); err != nil {
		return empty, err
	}
	return saved, nil
}

func (d stageDef[T]) get(stores uow.Stores, id string) (T, error) {
	var empty T
	rec, err := d.store(stores).GetByID(id)
	if err != nil {
		return empty, errors.Wrapf(err, "ошибка получения записи раздела %s", d.stage)
	}
	if rec == nil {
		return empty, models.NewNotFoundError("%s record not found", d.stage.ToHuman())
	}
	return *rec, nil
}

func (d stageDef[T]) list(stores uow.Stores, userID string) ([]dbmodels.StageRecord, error) {
	list, err := d.store(stores).ListByUser(userID)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка получения записей раздела %s", d.stage)
	}
	result := make([]dbmodels.StageRecord, 0, len(list))
	for _, rec := range list {
		result = append(result, rec)
	}
	return result, nil
}

// existsFor есть ли у сотрудника запись раздела по той же аттестации
func (d stageDef[T]) existsFor(stores uow.Stores, userID string, appraisalID *string) (bool, error) {
	last, err := d.store(stores).GetLastByUser(userID)
	if err != nil {
		return false, errors.Wrapf(err, "ошибка получения записи раздела %s", d.stage)
	}
	if last == nil {
		return false, nil
	}
	return sameAppraisal((*last).GetAppraisalID(), appraisalID), nil
}

// consolidate перенос записи в аттестацию и установка флагов блокировки
func consolidate(tx uow.Stores, appraisal *dbmodels.Appraisal, rec dbmodels.StageRecord) error {
	if appraisal == nil {
		return nil
	}
	updMap, err := consolidator.Project(*appraisal, rec, time.Now())
	if err != nil {
		return err
	}
	for field, value := range lockguard.LockUpdates(rec) {
		updMap[field] = value
	}
	if len(updMap) == 0 {
		return nil
	}
	if err = tx.Appraisals.Update(appraisal.ID, updMap); err != nil {
		return errors.Wrapf(err, "ошибка переноса раздела %s в аттестацию", rec.Stage())
	}
	return nil
}

// appraisalFor аттестация записи, для непривязанной записи - активная аттестация сотрудника
func appraisalFor(tx uow.Stores, userID string, appraisalID *string) (*dbmodels.Appraisal, error) {
	if appraisalID == nil {
		rec, err := tx.Appraisals.GetActiveByEmployee(userID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения активной аттестации")
		}
		return rec, nil
	}
	rec, err := tx.Appraisals.GetByID(*appraisalID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения аттестации")
	}
	return rec, nil
}

func refillEndYear(rec dbmodels.EndYearReview, updMap map[string]interface{}) map[string]interface{} {
	_, targets := updMap["Targets"]
	_, calculations := updMap["Calculations"]
	if !targets || calculations {
		return nil
	}
	return map[string]interface{}{
		"Calculations": consolidator.EndYearCalculations(rec.Targets),
	}
}

func refillAnnual(rec dbmodels.AnnualAppraisal, updMap map[string]interface{}) map[string]interface{} {
	extra := map[string]interface{}{}
	_, core := updMap["CoreCompetencies"]
	if _, avg := updMap["CoreCompetenciesAverage"]; core && !avg {
		extra["CoreCompetenciesAverage"] = consolidator.CompetencyAverage(rec.CoreCompetencies)
	}
	_, nonCore := updMap["NonCoreCompetencies"]
	if _, avg := updMap["NonCoreCompetenciesAverage"]; nonCore && !avg {
		extra["NonCoreCompetenciesAverage"] = consolidator.CompetencyAverage(rec.NonCoreCompetencies)
	}
	return extra
}

func sameAppraisal(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
