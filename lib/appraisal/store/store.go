package appraisalstore

import (
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Appraisal) (id string, err error)
	GetByID(id string) (*dbmodels.Appraisal, error)
	GetActiveByEmployee(employeeID string) (*dbmodels.Appraisal, error)
	GetByEmployeePeriod(employeeID string, periodStart, periodEnd time.Time) (*dbmodels.Appraisal, error)
	GetLastByEmployee(employeeID string) (*dbmodels.Appraisal, error)
	ListByEmployee(employeeID string) ([]dbmodels.Appraisal, error)
	ListByAppraiser(appraiserID string, statuses []models.AppraisalStatus) ([]dbmodels.Appraisal, error)
	Update(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Appraisal) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Appraisal, error) {
	rec := dbmodels.Appraisal{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetActiveByEmployee(employeeID string) (*dbmodels.Appraisal, error) {
	rec := dbmodels.Appraisal{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Where("status in (?)", models.ActiveAppraisalStatuses).
		Order("created_at DESC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByEmployeePeriod(employeeID string, periodStart, periodEnd time.Time) (*dbmodels.Appraisal, error) {
	rec := dbmodels.Appraisal{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Where("period_start = ?", periodStart.Format(time.DateOnly)).
		Where("period_end = ?", periodEnd.Format(time.DateOnly)).
		Order("created_at DESC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetLastByEmployee(employeeID string) (*dbmodels.Appraisal, error) {
	rec := dbmodels.Appraisal{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByEmployee(employeeID string) ([]dbmodels.Appraisal, error) {
	list := []dbmodels.Appraisal{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByAppraiser(appraiserID string, statuses []models.AppraisalStatus) ([]dbmodels.Appraisal, error) {
	list := []dbmodels.Appraisal{}
	tx := i.db.
		Where("appraiser_id = ?", appraiserID)
	if len(statuses) != 0 {
		tx = tx.Where("status in (?)", statuses)
	}
	err := tx.
		Order("updated_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Appraisal{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
