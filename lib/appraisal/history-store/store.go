package appraisalhistorystore

import (
	dbmodels "appraisal-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.AppraisalHistory) (id string, err error)
	List(appraisalID string) (list []dbmodels.AppraisalHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AppraisalHistory) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(appraisalID string) (list []dbmodels.AppraisalHistory, err error) {
	list = []dbmodels.AppraisalHistory{}
	err = i.db.
		Where("appraisal_id = ?", appraisalID).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
