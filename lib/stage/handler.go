package stagehandler

import (
	"context"
	"time"

	appraisalhandler "appraisal-backend/lib/appraisal"
	"appraisal-backend/lib/metrics"
	sectionavailabilityhandler "appraisal-backend/lib/section-availability"
	"appraisal-backend/lib/stage/autofill"
	"appraisal-backend/lib/stage/lockguard"
	"appraisal-backend/lib/uow"
	"appraisal-backend/lib/utils/lock"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Create новая запись раздела. Личные данные создают или переиспользуют аттестацию за указанный период.
	Create(ctx context.Context, userID string, payload appraisalapimodels.StagePayload) (dbmodels.StageRecord, error)
	// Update частичное обновление: меняются только переданные поля
	Update(ctx context.Context, id string, payload appraisalapimodels.StagePayload) (dbmodels.StageRecord, error)
	GetByID(stage models.StageName, id string) (dbmodels.StageRecord, error)
	ListByUser(stage models.StageName, userID string) ([]dbmodels.StageRecord, error)
}

var Instance Provider

func NewHandler(unit uow.Provider) {
	Instance = NewInstance(unit, sectionavailabilityhandler.Instance)
}

func NewInstance(unit uow.Provider, sections sectionavailabilityhandler.Provider) Provider {
	return impl{
		unit:     unit,
		sections: sections,
	}
}

type impl struct {
	unit     uow.Provider
	sections sectionavailabilityhandler.Provider
}

const (
	operationCreate = "create"
	operationUpdate = "update"

	allocateWait = 10 * time.Second
)

func (i impl) Create(ctx context.Context, userID string, payload appraisalapimodels.StagePayload) (rec dbmodels.StageRecord, err error) {
	stage := payload.Stage()
	timer := metrics.StageSaveTimer(stage)
	defer func() {
		timer.ObserveDuration()
		metrics.StageSaved(stage, operationCreate, err)
	}()
	logger := log.
		WithField("employee_id", userID).
		WithField("stage", stage)

	if err = payload.Validate(); err != nil {
		return nil, err
	}
	if err = i.checkOpen(stage); err != nil {
		return nil, err
	}
	user, err := i.unit.Stores().Users.GetByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сотрудника")
	}
	if user == nil {
		return nil, models.NewNotFoundError("Employee not found")
	}
	base := dbmodels.StageBase{
		UserID:    user.ID,
		ManagerID: user.ManagerID,
	}

	switch data := unwrap(payload).(type) {
	case appraisalapimodels.PersonalInfoData:
		rec, err = i.createPersonalInfo(ctx, base, data)
	case appraisalapimodels.PerformancePlanningData:
		rec, err = createStage(i, performancePlanningDef, base, data.ToRecord)
	case appraisalapimodels.MidYearReviewData:
		rec, err = createStage(i, midYearReviewDef, base, data.ToRecord)
	case appraisalapimodels.EndYearReviewData:
		rec, err = createStage(i, endYearReviewDef, base, data.ToRecord)
	case appraisalapimodels.AnnualAppraisalData:
		rec, err = createStage(i, annualAppraisalDef, base, data.ToRecord)
	case appraisalapimodels.FinalSectionsData:
		rec, err = createStage(i, finalSectionsDef, base, data.ToRecord)
	default:
		return nil, models.NewValidationError("unknown stage: %s", stage)
	}
	if err != nil {
		return nil, err
	}
	logger.
		WithField("rec_id", rec.GetID()).
		Info("создана запись раздела")
	i.autofill(rec, operationCreate)
	return rec, nil
}

func (i impl) Update(ctx context.Context, id string, payload appraisalapimodels.StagePayload) (rec dbmodels.StageRecord, err error) {
	stage := payload.Stage()
	timer := metrics.StageSaveTimer(stage)
	defer func() {
		timer.ObserveDuration()
		metrics.StageSaved(stage, operationUpdate, err)
	}()
	logger := log.
		WithField("rec_id", id).
		WithField("stage", stage)

	if err = payload.Validate(); err != nil {
		return nil, err
	}
	if err = i.checkOpen(stage); err != nil {
		return nil, err
	}
	updMap, err := payload.UpdateMap()
	if err != nil {
		return nil, err
	}
	switch stage {
	case models.StagePersonalInfo:
		rec, err = updateStage(i, personalInfoDef, id, updMap)
	case models.StagePerformancePlanning:
		rec, err = updateStage(i, performancePlanningDef, id, updMap)
	case models.StageMidYearReview:
		rec, err = updateStage(i, midYearReviewDef, id, updMap)
	case models.StageEndYearReview:
		rec, err = updateStage(i, endYearReviewDef, id, updMap)
	case models.StageAnnualAppraisal:
		rec, err = updateStage(i, annualAppraisalDef, id, updMap)
	case models.StageFinalSections:
		rec, err = updateStage(i, finalSectionsDef, id, updMap)
	default:
		return nil, models.NewValidationError("unknown stage: %s", stage)
	}
	if err != nil {
		return nil, err
	}
	logger.
		WithField("employee_id", rec.GetUserID()).
		Info("обновлена запись раздела")
	i.autofill(rec, operationUpdate)
	return rec, nil
}

func (i impl) GetByID(stage models.StageName, id string) (dbmodels.StageRecord, error) {
	stores := i.unit.Stores()
	switch stage {
	case models.StagePersonalInfo:
		return getStage(stores, personalInfoDef, id)
	case models.StagePerformancePlanning:
		return getStage(stores, performancePlanningDef, id)
	case models.StageMidYearReview:
		return getStage(stores, midYearReviewDef, id)
	case models.StageEndYearReview:
		return getStage(stores, endYearReviewDef, id)
	case models.StageAnnualAppraisal:
		return getStage(stores, annualAppraisalDef, id)
	case models.StageFinalSections:
		return getStage(stores, finalSectionsDef, id)
	}
	return nil, models.NewValidationError("unknown stage: %s", stage)
}

func (i impl) ListByUser(stage models.StageName, userID string) ([]dbmodels.StageRecord, error) {
	stores := i.unit.Stores()
	switch stage {
	case models.StagePersonalInfo:
		return personalInfoDef.list(stores, userID)
	case models.StagePerformancePlanning:
		return performancePlanningDef.list(stores, userID)
	case models.StageMidYearReview:
		return midYearReviewDef.list(stores, userID)
	case models.StageEndYearReview:
		return endYearReviewDef.list(stores, userID)
	case models.StageAnnualAppraisal:
		return annualAppraisalDef.list(stores, userID)
	case models.StageFinalSections:
		return finalSectionsDef.list(stores, userID)
	}
	return nil, models.NewValidationError("unknown stage: %s", stage)
}

func (i impl) checkOpen(stage models.StageName) error {
	if i.sections == nil {
		return nil
	}
	return i.sections.CheckOpen(stage)
}

// createPersonalInfo личные данные задают период: аттестация создается или переиспользуется в той же транзакции
func (i impl) createPersonalInfo(ctx context.Context, base dbmodels.StageBase, data appraisalapimodels.PersonalInfoData) (dbmodels.StageRecord, error) {
	from, to, err := data.Period()
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, models.NewValidationError("Period from and period to are required")
	}
	var saved dbmodels.PersonalInfo
	ok, err := lock.WithDelay(ctx, "appraisal:"+base.UserID, allocateWait, func() error {
		return i.unit.Transaction(func(tx uow.Stores) error {
			appraisalID, err := appraisalhandler.NewHandlerWithTx(tx).Allocate(base.UserID, base.ManagerID, *from, *to)
			if err != nil {
				return err
			}
			appraisal, err := tx.Appraisals.GetByID(appraisalID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения аттестации")
			}
			if appraisal == nil {
				return models.NewNotFoundError("Appraisal not found")
			}
			if !appraisal.Status.IsActive() {
				return models.NewValidationError("Appraisal has already been %s", appraisal.Status)
			}
			if err = lockguard.Check(appraisal, models.StagePersonalInfo); err != nil {
				return err
			}
			if err = appraisalhandler.LinkStageRecords(tx, base.UserID, appraisalID); err != nil {
				return err
			}
			base.AppraisalID = &appraisalID
			rec, err := data.ToRecord(base)
			if err != nil {
				return err
			}
			saved, err = personalInfoDef.insert(tx, appraisal, rec)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Errorf("не удалось дождаться создания аттестации сотрудника %s", base.UserID)
	}
	return saved, nil
}

func createStage[T dbmodels.StageRecord](i impl, d stageDef[T], base dbmodels.StageBase, build func(base dbmodels.StageBase) (T, error)) (dbmodels.StageRecord, error) {
	var saved T
	err := i.unit.Transaction(func(tx uow.Stores) error {
		appraisal, err := tx.Appraisals.GetActiveByEmployee(base.UserID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения активной аттестации")
		}
		if appraisal != nil {
			appraisalID := appraisal.ID
			base.AppraisalID = &appraisalID
		}
		if err = lockguard.Check(appraisal, d.stage); err != nil {
			return err
		}
		rec, err := build(base)
		if err != nil {
			return err
		}
		saved, err = d.insert(tx, appraisal, rec)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func updateStage[T dbmodels.StageRecord](i impl, d stageDef[T], id string, updMap map[string]interface{}) (dbmodels.StageRecord, error) {
	var saved T
	err := i.unit.Transaction(func(tx uow.Stores) error {
		var err error
		saved, err = d.update(tx, id, updMap)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func getStage[T dbmodels.StageRecord](stores uow.Stores, d stageDef[T], id string) (dbmodels.StageRecord, error) {
	rec, err := d.get(stores, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// autofill заготовка следующего раздела: план -> промежуточная оценка, обновленная промежуточная оценка -> годовая.
// Ошибки только логируются, сохраненный раздел остается.
func (i impl) autofill(rec dbmodels.StageRecord, operation string) {
	switch r := rec.(type) {
	case dbmodels.PerformancePlanning:
		seed(i, midYearReviewDef, rec, func() dbmodels.MidYearReview {
			return autofill.MidYearFromPlanning(r)
		})
	case dbmodels.MidYearReview:
		if operation != operationUpdate {
			return
		}
		seed(i, endYearReviewDef, rec, func() dbmodels.EndYearReview {
			return autofill.EndYearFromMidYear(r)
		})
	}
}

func seed[T dbmodels.StageRecord](i impl, d stageDef[T], src dbmodels.StageRecord, build func() T) {
	logger := log.
		WithField("employee_id", src.GetUserID()).
		WithField("stage", d.stage).
		WithField("source_id", src.GetID())
	created := false
	err := i.unit.Transaction(func(tx uow.Stores) error {
		exists, err := d.existsFor(tx, src.GetUserID(), src.GetAppraisalID())
		if err != nil || exists {
			return err
		}
		appraisal, err := appraisalFor(tx, src.GetUserID(), src.GetAppraisalID())
		if err != nil {
			return err
		}
		if _, err = d.insert(tx, appraisal, build()); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err == nil && !created {
		return
	}
	metrics.Autofill(d.stage, err)
	if err != nil {
		logger.WithError(err).Error("ошибка автозаполнения раздела")
		return
	}
	logger.Info("раздел заполнен автоматически")
}

func unwrap(payload appraisalapimodels.StagePayload) appraisalapimodels.StagePayload {
	switch p := payload.(type) {
	case *appraisalapimodels.PersonalInfoData:
		return *p
	case *appraisalapimodels.PerformancePlanningData:
		return *p
	case *appraisalapimodels.MidYearReviewData:
		return *p
	case *appraisalapimodels.EndYearReviewData:
		return *p
	case *appraisalapimodels.AnnualAppraisalData:
		return *p
	case *appraisalapimodels.FinalSectionsData:
		return *p
	}
	return payload
}
