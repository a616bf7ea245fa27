package sectionavailabilitystore

import (
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.SectionAvailability) (id string, err error)
	GetBySection(section models.StageName) (*dbmodels.SectionAvailability, error)
	List() ([]dbmodels.SectionAvailability, error)
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

func (i impl) Create(rec dbmodels.SectionAvailability) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetBySection(section models.StageName) (*dbmodels.SectionAvailability, error) {
	rec := dbmodels.SectionAvailability{}
	err := i.db.
		Where("section_name = ?", section).
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

func (i impl) List() ([]dbmodels.SectionAvailability, error) {
	list := []dbmodels.SectionAvailability{}
	err := i.db.
		Order("created_at ASC").
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
		Model(&dbmodels.SectionAvailability{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
