package stagestore

import (
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider хранилище записей одного раздела формы (T - модель раздела)
type Provider[T any] interface {
	Create(rec *T) (id string, err error)
	GetByID(id string) (*T, error)
	ListByUser(userID string) ([]T, error)
	GetLastByUser(userID string) (*T, error)
	Update(id string, updMap map[string]interface{}) error
	DeleteByAppraisal(appraisalID string) (count int64, err error)
	CountByAppraisal(appraisalID string) (count int64, err error)
	// LinkUnassigned привязывает записи сотрудника без аттестации к appraisalID
	LinkUnassigned(userID, appraisalID string) (count int64, err error)
}

func NewInstance[T any](DB *gorm.DB) Provider[T] {
	return &impl[T]{
		db: DB,
	}
}

type impl[T any] struct {
	db *gorm.DB
}

func (i impl[T]) Create(rec *T) (id string, err error) {
	err = i.db.Create(rec).Error
	if err != nil {
		return "", err
	}
	stageRec, ok := any(rec).(dbmodels.StageRecord)
	if !ok {
		return "", errors.Errorf("тип %T не является записью раздела", rec)
	}
	return stageRec.GetID(), nil
}

func (i impl[T]) GetByID(id string) (*T, error) {
	rec := new(T)
	err := i.db.
		Where("id = ?", id).
		First(rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl[T]) ListByUser(userID string) ([]T, error) {
	list := []T{}
	err := i.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl[T]) GetLastByUser(userID string) (*T, error) {
	rec := new(T)
	err := i.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl[T]) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(new(T)).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl[T]) DeleteByAppraisal(appraisalID string) (count int64, err error) {
	tx := i.db.
		Where("appraisal_id = ?", appraisalID).
		Delete(new(T))
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl[T]) LinkUnassigned(userID, appraisalID string) (count int64, err error) {
	tx := i.db.
		Model(new(T)).
		Where("user_id = ? AND appraisal_id IS NULL", userID).
		Update("appraisal_id", appraisalID)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl[T]) CountByAppraisal(appraisalID string) (count int64, err error) {
	err = i.db.
		Model(new(T)).
		Where("appraisal_id = ?", appraisalID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
