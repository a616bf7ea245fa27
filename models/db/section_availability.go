package dbmodels

import (
	"appraisal-backend/models"
	"time"
)

type SectionAvailability struct {
	BaseModel
	SectionName models.StageName `gorm:"type:varchar(50);uniqueIndex"`
	IsAvailable bool
	OpensAt     *time.Time
	Message     string
	UpdatedBy   *string `gorm:"type:varchar(36)"`
}

// IsOpenAt раздел доступен на момент now (в том числе по наступлению даты открытия)
func (s SectionAvailability) IsOpenAt(now time.Time) bool {
	if s.IsAvailable {
		return true
	}
	return s.OpensAt != nil && !s.OpensAt.After(now)
}
