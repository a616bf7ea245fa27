package dbmodels

import "appraisal-backend/models"

type User struct {
	BaseModel
	Name      string
	Email     string `gorm:"type:varchar(255);uniqueIndex"`
	Role      models.UserRole
	ManagerID *string `gorm:"type:varchar(36);index"`
	Position  string
	Division  string
	IsActive  bool
}
