package appraisalhandler

import (
	"bytes"
	"strings"
	"time"

	pdfexport "appraisal-backend/lib/export/pdf"
	xlsexport "appraisal-backend/lib/export/xls"
	"appraisal-backend/lib/metrics"
	"appraisal-backend/lib/notify"
	"appraisal-backend/lib/stage/consolidator"
	"appraisal-backend/lib/uow"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Allocate(employeeID string, managerID *string, periodStart, periodEnd time.Time) (id string, err error)
	Submit(employeeID string) (appraisalapimodels.AppraisalView, error)
	Approve(appraisalID, managerID, comments string) error
	Reject(appraisalID, managerID, comments string) error
	Complete(appraisalID, managerID string) error
	GetCurrent(employeeID string) (*appraisalapimodels.AppraisalView, error)
	GetLockStatus(employeeID string) (appraisalapimodels.LockStatusView, error)
	GetByID(id string) (appraisalapimodels.AppraisalView, error)
	ListByEmployee(employeeID string) ([]appraisalapimodels.AppraisalView, error)
	ListTeam(managerID string) ([]appraisalapimodels.AppraisalView, error)
	// TeamMembers активные подчиненные руководителя с их текущими аттестациями
	TeamMembers(managerID string) ([]appraisalapimodels.TeamMemberView, error)
	UpdateCurrentStep(employeeID string, step int) error
	UpdateManagerCurrentStep(appraisalID, managerID string, step int) error
	History(appraisalID string) ([]appraisalapimodels.HistoryView, error)
	Export(appraisalID string) (*bytes.Buffer, error)
	ExportPDF(appraisalID string) ([]byte, error)
}

var Instance Provider

func NewHandler(unit uow.Provider) {
	Instance = NewInstance(unit, notify.Instance, xlsexport.Instance, pdfexport.Instance)
}

func NewInstance(unit uow.Provider, notifier notify.Provider, exporter xlsexport.Provider, pdfExporter pdfexport.Provider) Provider {
	return impl{
		unit:        unit,
		notifier:    notifier,
		exporter:    exporter,
		pdfExporter: pdfExporter,
	}
}

// NewHandlerWithTx контроллер, работающий в транзакции вызывающего (без уведомлений)
func NewHandlerWithTx(stores uow.Stores) Provider {
	return impl{
		unit: uow.InTx(stores),
	}
}

type impl struct {
	unit        uow.Provider
	notifier    notify.Provider
	exporter    xlsexport.Provider
	pdfExporter pdfexport.Provider
}

const (
	actionAllocate = "allocate"
	actionSubmit   = "submit"
	actionApprove  = "approve"
	actionReject   = "reject"
	actionComplete = "complete"
)

func (i impl) Allocate(employeeID string, managerID *string, periodStart, periodEnd time.Time) (id string, err error) {
	logger := log.WithField("employee_id", employeeID)
	stores := i.unit.Stores()

	active, err := stores.Appraisals.GetActiveByEmployee(employeeID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения активной аттестации")
	}
	if active != nil {
		return active.ID, nil
	}

	periodStart, periodEnd = dateOnly(periodStart), dateOnly(periodEnd)
	existed, err := stores.Appraisals.GetByEmployeePeriod(employeeID, periodStart, periodEnd)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения аттестации за период")
	}
	if existed != nil {
		return existed.ID, nil
	}

	rec := newAppraisal(employeeID, managerID, periodStart, periodEnd)
	id, err = stores.Appraisals.Create(rec)
	if err != nil {
		// вызывающие сериализуют выделение блокировкой по сотруднику, конфликт индекса здесь - ошибка
		return "", errors.Wrap(err, "ошибка создания аттестации")
	}
	metrics.Transition(actionAllocate)
	logger.
		WithField("appraisal_id", id).
		Info("создана аттестация")
	return id, nil
}

func (i impl) Submit(employeeID string) (appraisalapimodels.AppraisalView, error) {
	logger := log.WithField("employee_id", employeeID)
	stores := i.unit.Stores()

	records, pi, err := latestStageRecords(stores, employeeID)
	if err != nil {
		return appraisalapimodels.AppraisalView{}, err
	}

	var submitted *dbmodels.Appraisal
	var fromStatus models.AppraisalStatus
	err = i.unit.Transaction(func(tx uow.Stores) error {
		appraisalID, err := NewHandlerWithTx(tx).Allocate(employeeID, pi.ManagerID, pi.PeriodFrom, pi.PeriodTo)
		if err != nil {
			return err
		}
		rec, err := tx.Appraisals.GetByID(appraisalID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения аттестации")
		}
		if rec == nil {
			return models.NewNotFoundError("Appraisal not found")
		}
		if !rec.Status.IsActive() {
			return models.NewValidationError("Appraisal has already been %s", rec.Status)
		}
		if err = LinkStageRecords(tx, employeeID, rec.ID); err != nil {
			return err
		}
		fromStatus = rec.Status
		snapshot, err := consolidator.Snapshot(*rec, records, time.Now())
		if err != nil {
			return err
		}
		if err = tx.Appraisals.Update(rec.ID, snapshot); err != nil {
			return errors.Wrap(err, "ошибка сохранения сводки аттестации")
		}
		submitted, err = tx.Appraisals.GetByID(rec.ID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения аттестации")
		}
		return nil
	})
	if err != nil {
		return appraisalapimodels.AppraisalView{}, err
	}
	metrics.Transition(actionSubmit)
	logger.
		WithField("appraisal_id", submitted.ID).
		Info("аттестация отправлена на согласование")
	i.audit(*submitted, employeeID, actionSubmit, fromStatus, "", nil)
	i.notifySubmitted(*submitted)
	return appraisalapimodels.AppraisalConvert(*submitted), nil
}

func (i impl) Approve(appraisalID, managerID, comments string) error {
	rec, err := i.getForReview(appraisalID, managerID, models.AppraisalStatusSubmitted, "approved")
	if err != nil {
		return err
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"ManagerStatus":   models.ManagerStatusApproved,
		"Status":          models.AppraisalStatusReviewed,
		"ReviewedBy":      managerID,
		"ReviewedAt":      now,
		"ManagerComments": comments,
	}
	updated, err := i.applyTransition(rec, updMap, nil)
	if err != nil {
		return err
	}
	metrics.Transition(actionApprove)
	log.WithField("appraisal_id", appraisalID).
		WithField("manager_id", managerID).
		Info("аттестация согласована")
	i.audit(*updated, managerID, actionApprove, rec.Status, comments, nil)
	i.notifyEmployee(*updated, notify.Provider.AppraisalApproved)
	return nil
}

func (i impl) Reject(appraisalID, managerID, comments string) error {
	if strings.TrimSpace(comments) == "" {
		return models.NewValidationError("Comments are required when rejecting an appraisal")
	}
	rec, err := i.getForReview(appraisalID, managerID, models.AppraisalStatusSubmitted, "rejected")
	if err != nil {
		return err
	}
	// статус остается submitted, отклонение фиксируется только в ManagerStatus
	updMap := map[string]interface{}{
		"ManagerStatus":   models.ManagerStatusRejected,
		"ReviewedBy":      managerID,
		"ReviewedAt":      time.Now(),
		"ManagerComments": comments,
	}
	updated, err := i.applyTransition(rec, updMap, nil)
	if err != nil {
		return err
	}
	metrics.Transition(actionReject)
	log.WithField("appraisal_id", appraisalID).
		WithField("manager_id", managerID).
		Info("аттестация отклонена")
	i.audit(*updated, managerID, actionReject, rec.Status, comments, nil)
	i.notifyEmployee(*updated, notify.Provider.AppraisalRejected)
	return nil
}

func (i impl) Complete(appraisalID, managerID string) error {
	rec, err := i.getForReview(appraisalID, managerID, models.AppraisalStatusReviewed, "completed")
	if err != nil {
		return err
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"ManagerStatus": models.ManagerStatusApproved,
		"Status":        models.AppraisalStatusCompleted,
		"ReviewedBy":    managerID,
		"ReviewedAt":    now,
		"CompletedAt":   now,
	}
	var deleted []dbmodels.FieldChange
	updated, err := i.applyTransition(rec, updMap, func(tx uow.Stores) error {
		var purgeErr error
		deleted, purgeErr = purgeStageRecords(tx, appraisalID)
		return purgeErr
	})
	if err != nil {
		return err
	}
	metrics.Transition(actionComplete)
	log.WithField("appraisal_id", appraisalID).
		WithField("manager_id", managerID).
		Info("аттестация завершена, записи разделов удалены")
	i.audit(*updated, managerID, actionComplete, rec.Status, "", deleted)
	i.notifyEmployee(*updated, notify.Provider.AppraisalCompleted)
	return nil
}

func (i impl) GetCurrent(employeeID string) (*appraisalapimodels.AppraisalView, error) {
	rec, err := i.unit.Stores().Appraisals.GetActiveByEmployee(employeeID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения активной аттестации")
	}
	if rec == nil {
		return nil, nil
	}
	view := appraisalapimodels.AppraisalConvert(*rec)
	return &view, nil
}

func (i impl) GetLockStatus(employeeID string) (appraisalapimodels.LockStatusView, error) {
	stores := i.unit.Stores()
	rec, err := stores.Appraisals.GetActiveByEmployee(employeeID)
	if err != nil {
		return appraisalapimodels.LockStatusView{}, errors.Wrap(err, "ошибка получения активной аттестации")
	}
	if rec == nil {
		// после согласования блокировки остаются на последней аттестации
		rec, err = stores.Appraisals.GetLastByEmployee(employeeID)
		if err != nil {
			return appraisalapimodels.LockStatusView{}, errors.Wrap(err, "ошибка получения последней аттестации")
		}
	}
	return appraisalapimodels.LockStatusConvert(rec), nil
}

func (i impl) GetByID(id string) (appraisalapimodels.AppraisalView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return appraisalapimodels.AppraisalView{}, err
	}
	return appraisalapimodels.AppraisalConvert(*rec), nil
}

func (i impl) ListByEmployee(employeeID string) ([]appraisalapimodels.AppraisalView, error) {
	list, err := i.unit.Stores().Appraisals.ListByEmployee(employeeID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка аттестаций сотрудника")
	}
	return convertList(list), nil
}

func (i impl) ListTeam(managerID string) ([]appraisalapimodels.AppraisalView, error) {
	list, err := i.unit.Stores().Appraisals.ListByAppraiser(managerID, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка аттестаций команды")
	}
	return convertList(list), nil
}

func (i impl) TeamMembers(managerID string) ([]appraisalapimodels.TeamMemberView, error) {
	stores := i.unit.Stores()
	users, err := stores.Users.ListByManager(managerID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка подчиненных")
	}
	result := make([]appraisalapimodels.TeamMemberView, 0, len(users))
	for _, user := range users {
		active, err := stores.Appraisals.GetActiveByEmployee(user.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка получения активной аттестации сотрудника %s", user.ID)
		}
		result = append(result, appraisalapimodels.TeamMemberConvert(user, active))
	}
	return result, nil
}

func (i impl) UpdateCurrentStep(employeeID string, step int) error {
	stores := i.unit.Stores()
	rec, err := stores.Appraisals.GetActiveByEmployee(employeeID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения активной аттестации")
	}
	if rec == nil {
		return models.NewNotFoundError("No active appraisal found")
	}
	if err = stores.Appraisals.Update(rec.ID, map[string]interface{}{"CurrentStep": step}); err != nil {
		return errors.Wrap(err, "ошибка обновления шага формы")
	}
	return nil
}

func (i impl) UpdateManagerCurrentStep(appraisalID, managerID string, step int) error {
	rec, err := i.getRec(appraisalID)
	if err != nil {
		return err
	}
	if err = i.checkReviewer(managerID); err != nil {
		return err
	}
	err = i.unit.Stores().Appraisals.Update(rec.ID, map[string]interface{}{"ManagerCurrentStep": step})
	if err != nil {
		return errors.Wrap(err, "ошибка обновления шага формы руководителя")
	}
	return nil
}

func (i impl) History(appraisalID string) ([]appraisalapimodels.HistoryView, error) {
	if _, err := i.getRec(appraisalID); err != nil {
		return nil, err
	}
	list, err := i.unit.Stores().History.List(appraisalID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения истории аттестации")
	}
	result := make([]appraisalapimodels.HistoryView, 0, len(list))
	for _, item := range list {
		result = append(result, appraisalapimodels.HistoryConvert(item))
	}
	return result, nil
}

func (i impl) Export(appraisalID string) (*bytes.Buffer, error) {
	rec, err := i.getRec(appraisalID)
	if err != nil {
		return nil, err
	}
	if i.exporter == nil {
		return nil, errors.New("выгрузка в xlsx не настроена")
	}
	return i.exporter.ExportAppraisal(*rec)
}

func (i impl) ExportPDF(appraisalID string) ([]byte, error) {
	rec, err := i.getRec(appraisalID)
	if err != nil {
		return nil, err
	}
	if i.pdfExporter == nil {
		return nil, errors.New("выгрузка в pdf не настроена")
	}
	return i.pdfExporter.ExportAppraisal(*rec)
}

func (i impl) getRec(id string) (*dbmodels.Appraisal, error) {
	rec, err := i.unit.Stores().Appraisals.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения аттестации")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("Appraisal not found")
	}
	return rec, nil
}

// getForReview общие условия для решений руководителя: аттестация в нужном статусе, у рецензента роль руководителя
func (i impl) getForReview(appraisalID, managerID string, expected models.AppraisalStatus, action string) (*dbmodels.Appraisal, error) {
	rec, err := i.getRec(appraisalID)
	if err != nil {
		return nil, err
	}
	if rec.Status != expected {
		return nil, models.NewValidationError("Appraisal must be %s to be %s (current status: %s)", expected, action, rec.Status)
	}
	if err = i.checkReviewer(managerID); err != nil {
		return nil, err
	}
	return rec, nil
}

func (i impl) checkReviewer(managerID string) error {
	manager, err := i.unit.Stores().Users.GetByID(managerID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения руководителя")
	}
	if manager == nil {
		return models.NewNotFoundError("Reviewer not found")
	}
	if !manager.Role.IsManagerRole() {
		return models.NewValidationError("Only managers can review appraisals")
	}
	return nil
}

func (i impl) applyTransition(rec *dbmodels.Appraisal, updMap map[string]interface{}, extra func(tx uow.Stores) error) (*dbmodels.Appraisal, error) {
	if status, ok := updMap["Status"].(models.AppraisalStatus); ok && !rec.Status.CanMoveTo(status) {
		return nil, models.NewValidationError("Appraisal cannot move from %s to %s", rec.Status, status)
	}
	var updated *dbmodels.Appraisal
	err := i.unit.Transaction(func(tx uow.Stores) error {
		if err := tx.Appraisals.Update(rec.ID, updMap); err != nil {
			return errors.Wrap(err, "ошибка обновления статуса аттестации")
		}
		if extra != nil {
			if err := extra(tx); err != nil {
				return err
			}
		}
		var err error
		updated, err = tx.Appraisals.GetByID(rec.ID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения аттестации")
		}
		if updated == nil {
			return models.NewNotFoundError("Appraisal not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// audit запись в историю, ошибка только логируется
func (i impl) audit(rec dbmodels.Appraisal, actorID, action string, fromStatus models.AppraisalStatus, comment string, changes []dbmodels.FieldChange) {
	history := dbmodels.AppraisalHistory{
		AppraisalID:   rec.ID,
		ActorID:       actorID,
		Action:        action,
		FromStatus:    fromStatus,
		ToStatus:      rec.Status,
		ManagerStatus: rec.ManagerStatus,
		Comment:       comment,
		Changes:       dbmodels.NewHistoryChanges(action, changes),
	}
	if _, err := i.unit.Stores().History.Create(history); err != nil {
		log.WithField("appraisal_id", rec.ID).
			WithError(err).
			Error("ошибка записи истории аттестации")
	}
}

func (i impl) notifySubmitted(rec dbmodels.Appraisal) {
	if i.notifier == nil || rec.AppraiserID == nil {
		return
	}
	logger := log.WithField("appraisal_id", rec.ID)
	users := i.unit.Stores().Users
	employee, err := users.GetByID(rec.EmployeeID)
	if err != nil || employee == nil {
		logger.WithError(err).Warn("уведомление не отправлено: сотрудник не найден")
		return
	}
	appraiser, err := users.GetByID(*rec.AppraiserID)
	if err != nil || appraiser == nil {
		logger.WithError(err).Warn("уведомление не отправлено: руководитель не найден")
		return
	}
	if err = i.notifier.AppraisalSubmitted(*employee, *appraiser, rec); err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления руководителю")
	}
}

func (i impl) notifyEmployee(rec dbmodels.Appraisal, send func(n notify.Provider, employee dbmodels.User, appraisal dbmodels.Appraisal) error) {
	if i.notifier == nil {
		return
	}
	logger := log.WithField("appraisal_id", rec.ID)
	employee, err := i.unit.Stores().Users.GetByID(rec.EmployeeID)
	if err != nil || employee == nil {
		logger.WithError(err).Warn("уведомление не отправлено: сотрудник не найден")
		return
	}
	if err = send(i.notifier, *employee, rec); err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления сотруднику")
	}
}

func convertList(list []dbmodels.Appraisal) []appraisalapimodels.AppraisalView {
	result := make([]appraisalapimodels.AppraisalView, 0, len(list))
	for _, rec := range list {
		result = append(result, appraisalapimodels.AppraisalConvert(rec))
	}
	return result
}

func newAppraisal(employeeID string, managerID *string, periodStart, periodEnd time.Time) dbmodels.Appraisal {
	return dbmodels.Appraisal{
		EmployeeID:          employeeID,
		AppraiserID:         managerID,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		Status:              models.AppraisalStatusInProgress,
		TrainingReceived:    dbmodels.TrainingRecords{},
		KeyResultAreas:      dbmodels.KeyResultAreas{},
		KeyCompetencies:     dbmodels.KeyCompetencies{},
		CoreCompetencies:    dbmodels.CompetencyScores{},
		NonCoreCompetencies: dbmodels.CompetencyScores{},
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
