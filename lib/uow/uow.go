package uow

import (
	appraisalhistorystore "appraisal-backend/lib/appraisal/history-store"
	appraisalstore "appraisal-backend/lib/appraisal/store"
	sectionavailabilitystore "appraisal-backend/lib/section-availability/store"
	stagestore "appraisal-backend/lib/stage/store"
	userstore "appraisal-backend/lib/users/store"
	dbmodels "appraisal-backend/models/db"

	"gorm.io/gorm"
)

// Stores набор хранилищ, привязанных к одному соединению или транзакции
type Stores struct {
	Appraisals          appraisalstore.Provider
	History             appraisalhistorystore.Provider
	Users               userstore.Provider
	Sections            sectionavailabilitystore.Provider
	PersonalInfo        stagestore.Provider[dbmodels.PersonalInfo]
	PerformancePlanning stagestore.Provider[dbmodels.PerformancePlanning]
	MidYearReview       stagestore.Provider[dbmodels.MidYearReview]
	EndYearReview       stagestore.Provider[dbmodels.EndYearReview]
	AnnualAppraisal     stagestore.Provider[dbmodels.AnnualAppraisal]
	FinalSections       stagestore.Provider[dbmodels.FinalSections]
}

type Provider interface {
	Stores() Stores
	// Transaction все записи через переданные хранилища фиксируются вместе или не фиксируются вовсе
	Transaction(fn func(stores Stores) error) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Stores() Stores {
	return NewStores(i.db)
}

func (i impl) Transaction(fn func(stores Stores) error) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}

func NewStores(DB *gorm.DB) Stores {
	return Stores{
		Appraisals:          appraisalstore.NewInstance(DB),
		History:             appraisalhistorystore.NewInstance(DB),
		Users:               userstore.NewInstance(DB),
		Sections:            sectionavailabilitystore.NewInstance(DB),
		PersonalInfo:        stagestore.NewInstance[dbmodels.PersonalInfo](DB),
		PerformancePlanning: stagestore.NewInstance[dbmodels.PerformancePlanning](DB),
		MidYearReview:       stagestore.NewInstance[dbmodels.MidYearReview](DB),
		EndYearReview:       stagestore.NewInstance[dbmodels.EndYearReview](DB),
		AnnualAppraisal:     stagestore.NewInstance[dbmodels.AnnualAppraisal](DB),
		FinalSections:       stagestore.NewInstance[dbmodels.FinalSections](DB),
	}
}

// InTx хранилища уже открытой транзакции: вложенные Transaction выполняются в ней же
func InTx(stores Stores) Provider {
	return txImpl{stores: stores}
}

type txImpl struct {
	stores Stores
}

func (t txImpl) Stores() Stores {
	return t.stores
}

func (t txImpl) Transaction(fn func(stores Stores) error) error {
	return fn(t.stores)
}
