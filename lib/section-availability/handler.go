package sectionavailabilityhandler

import (
	"time"

	sectionavailabilitystore "appraisal-backend/lib/section-availability/store"
	"appraisal-backend/lib/uow"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List() ([]appraisalapimodels.SectionAvailabilityView, error)
	Get(stage models.StageName) (appraisalapimodels.SectionAvailabilityView, error)
	Update(stage models.StageName, data appraisalapimodels.SectionAvailabilityData, userID string) (appraisalapimodels.SectionAvailabilityView, error)
	// CheckOpen ошибка валидации, если раздел закрыт для заполнения
	CheckOpen(stage models.StageName) error
	// OpenDue открывает разделы, дата открытия которых наступила
	OpenDue(now time.Time) (opened int, err error)
	// Preload недостающие записи по всем разделам (открыты)
	Preload() error
}

var Instance Provider

func NewHandler(unit uow.Provider) {
	Instance = NewInstance(unit)
}

func NewInstance(unit uow.Provider) Provider {
	return impl{
		unit: unit,
		now:  time.Now,
	}
}

type impl struct {
	unit uow.Provider
	now  func() time.Time
}

func (i impl) store() sectionavailabilitystore.Provider {
	return i.unit.Stores().Sections
}

func (i impl) List() ([]appraisalapimodels.SectionAvailabilityView, error) {
	list, err := i.store().List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка доступности разделов")
	}
	byStage := make(map[models.StageName]dbmodels.SectionAvailability, len(list))
	for _, rec := range list {
		byStage[rec.SectionName] = rec
	}
	result := make([]appraisalapimodels.SectionAvailabilityView, 0, len(models.AllStages))
	for _, stage := range models.AllStages {
		rec, ok := byStage[stage]
		if !ok {
			result = append(result, defaultView(stage))
			continue
		}
		result = append(result, i.convert(rec))
	}
	return result, nil
}

func (i impl) Get(stage models.StageName) (appraisalapimodels.SectionAvailabilityView, error) {
	if !stage.IsValid() {
		return appraisalapimodels.SectionAvailabilityView{}, models.NewValidationError("unknown stage: %s", stage)
	}
	rec, err := i.store().GetBySection(stage)
	if err != nil {
		return appraisalapimodels.SectionAvailabilityView{}, errors.Wrap(err, "ошибка получения доступности раздела")
	}
	if rec == nil {
		return defaultView(stage), nil
	}
	return i.convert(*rec), nil
}

func (i impl) Update(stage models.StageName, data appraisalapimodels.SectionAvailabilityData, userID string) (appraisalapimodels.SectionAvailabilityView, error) {
	if !stage.IsValid() {
		return appraisalapimodels.SectionAvailabilityView{}, models.NewValidationError("unknown stage: %s", stage)
	}
	if err := data.Validate(); err != nil {
		return appraisalapimodels.SectionAvailabilityView{}, err
	}
	opensAt, err := data.GetOpensAt()
	if err != nil {
		return appraisalapimodels.SectionAvailabilityView{}, err
	}
	logger := log.
		WithField("stage", stage).
		WithField("user_id", userID)

	var saved *dbmodels.SectionAvailability
	err = i.unit.Transaction(func(tx uow.Stores) error {
		rec, err := tx.Sections.GetBySection(stage)
		if err != nil {
			return errors.Wrap(err, "ошибка получения доступности раздела")
		}
		if rec == nil {
			newRec := dbmodels.SectionAvailability{
				SectionName: stage,
				IsAvailable: true,
				UpdatedBy:   &userID,
			}
			applySectionData(&newRec, data, opensAt)
			if _, err = tx.Sections.Create(newRec); err != nil {
				return errors.Wrap(err, "ошибка создания доступности раздела")
			}
		} else {
			updMap := map[string]interface{}{
				"UpdatedBy": userID,
			}
			if data.IsAvailable != nil {
				updMap["IsAvailable"] = *data.IsAvailable
			}
			if data.OpensAt != nil {
				updMap["OpensAt"] = opensAt
			}
			if data.Message != nil {
				updMap["Message"] = *data.Message
			}
			if err = tx.Sections.Update(rec.ID, updMap); err != nil {
				return errors.Wrap(err, "ошибка обновления доступности раздела")
			}
		}
		saved, err = tx.Sections.GetBySection(stage)
		if err != nil {
			return errors.Wrap(err, "ошибка получения доступности раздела")
		}
		if saved == nil {
			return errors.Errorf("доступность раздела %s не сохранена", stage)
		}
		return nil
	})
	if err != nil {
		return appraisalapimodels.SectionAvailabilityView{}, err
	}
	logger.
		WithField("is_available", saved.IsAvailable).
		Info("изменена доступность раздела")
	return i.convert(*saved), nil
}

func (i impl) CheckOpen(stage models.StageName) error {
	rec, err := i.store().GetBySection(stage)
	if err != nil {
		return errors.Wrap(err, "ошибка получения доступности раздела")
	}
	if rec == nil || rec.IsOpenAt(i.now()) {
		return nil
	}
	if rec.Message != "" {
		return models.NewValidationError("%s", rec.Message)
	}
	if rec.OpensAt != nil {
		return models.NewValidationError("%s section opens on %s", stage.ToHuman(), rec.OpensAt.Format("2006-01-02"))
	}
	return models.NewValidationError("%s section is not available", stage.ToHuman())
}

func (i impl) OpenDue(now time.Time) (opened int, err error) {
	list, err := i.store().List()
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения списка доступности разделов")
	}
	for _, rec := range list {
		if rec.IsAvailable || !rec.IsOpenAt(now) {
			continue
		}
		if err = i.store().Update(rec.ID, map[string]interface{}{"IsAvailable": true}); err != nil {
			return opened, errors.Wrapf(err, "ошибка открытия раздела %s", rec.SectionName)
		}
		opened++
	}
	return opened, nil
}

func (i impl) Preload() error {
	for _, stage := range models.AllStages {
		rec, err := i.store().GetBySection(stage)
		if err != nil {
			return errors.Wrapf(err, "ошибка получения доступности раздела %s", stage)
		}
		if rec != nil {
			continue
		}
		_, err = i.store().Create(dbmodels.SectionAvailability{
			SectionName: stage,
			IsAvailable: true,
		})
		if err != nil {
			return errors.Wrapf(err, "ошибка создания доступности раздела %s", stage)
		}
	}
	return nil
}

func (i impl) convert(rec dbmodels.SectionAvailability) appraisalapimodels.SectionAvailabilityView {
	return appraisalapimodels.SectionAvailabilityView{
		SectionName: rec.SectionName,
		IsAvailable: rec.IsOpenAt(i.now()),
		OpensAt:     rec.OpensAt,
		Message:     rec.Message,
	}
}

func defaultView(stage models.StageName) appraisalapimodels.SectionAvailabilityView {
	return appraisalapimodels.SectionAvailabilityView{
		SectionName: stage,
		IsAvailable: true,
	}
}

func applySectionData(rec *dbmodels.SectionAvailability, data appraisalapimodels.SectionAvailabilityData, opensAt *time.Time) {
	if data.IsAvailable != nil {
		rec.IsAvailable = *data.IsAvailable
	}
	rec.OpensAt = opensAt
	if data.Message != nil {
		rec.Message = *data.Message
	}
}
