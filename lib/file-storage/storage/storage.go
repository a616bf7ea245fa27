package filesdbstorage

import (
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.SignatureFile) (id string, err error)
	GetByID(id string) (*dbmodels.SignatureFile, error)
	ListByOwner(ownerID string) ([]dbmodels.SignatureFile, error)
}

type impl struct {
	db *gorm.DB
}

func NewInstance(db *gorm.DB) Provider {
	return impl{db: db}
}

func (i impl) Create(rec dbmodels.SignatureFile) (id string, err error) {
	if err = i.db.Create(&rec).Error; err != nil {
		return "", errors.Wrap(err, "ошибка сохранения файла подписи")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.SignatureFile, error) {
	rec := dbmodels.SignatureFile{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "ошибка получения файла подписи")
	}
	return &rec, nil
}

func (i impl) ListByOwner(ownerID string) (list []dbmodels.SignatureFile, err error) {
	err = i.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка подписей")
	}
	return list, nil
}
