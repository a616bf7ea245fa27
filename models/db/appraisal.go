package dbmodels

import (
	"appraisal-backend/models"
	"time"
)

type Appraisal struct {
	BaseModel
	EmployeeID  string                 `gorm:"type:varchar(36);index"`
	AppraiserID *string                `gorm:"type:varchar(36);index"`
	PeriodStart time.Time              `gorm:"type:date"`
	PeriodEnd   time.Time              `gorm:"type:date"`
	Status      models.AppraisalStatus `gorm:"type:varchar(20);index"`

	ManagerStatus      models.ManagerStatus `gorm:"type:varchar(20)"`
	ManagerComments    string
	ReviewedBy         *string `gorm:"type:varchar(36)"`
	ReviewedAt         *time.Time
	CurrentStep        int
	ManagerCurrentStep int

	EmployeeInfo        EmployeeInfo         `gorm:"type:jsonb"`
	AppraiserInfo       AppraiserDetails     `gorm:"type:jsonb"`
	TrainingReceived    TrainingRecords      `gorm:"type:jsonb"`
	KeyResultAreas      KeyResultAreas       `gorm:"type:jsonb"`
	KeyCompetencies     KeyCompetencies      `gorm:"type:jsonb"`
	MidYearReview       MidYearReviewSection `gorm:"type:jsonb"`
	EndOfYearReview     EndYearReviewSection `gorm:"type:jsonb"`
	CoreCompetencies    CompetencyScores     `gorm:"type:jsonb"`
	NonCoreCompetencies CompetencyScores     `gorm:"type:jsonb"`
	OverallAssessment   OverallAssessment    `gorm:"type:jsonb"`

	AppraiserComments         string
	CareerDevelopmentComments string
	AssessmentDecision        models.AssessmentDecision
	AppraiseeComments         string
	AppraiseeCommentsDate     *time.Time
	AppraiserSignature        string
	AppraiserSignatureDate    *time.Time
	AppraiseeSignature        string
	AppraiseeSignatureDate    *time.Time

	PersonalInfoLocked        bool
	PerformancePlanningLocked bool
	MidYearReviewLocked       bool
	EndYearReviewLocked       bool
	AnnualAppraisalLocked     bool
	FinalSectionsLocked       bool

	SubmittedAt *time.Time
	CompletedAt *time.Time
}

// IsStageLocked раздел закрыт для изменений после подписания обеими сторонами
func (a Appraisal) IsStageLocked(stage models.StageName) bool {
	switch stage {
	case models.StagePersonalInfo:
		return a.PersonalInfoLocked
	case models.StagePerformancePlanning:
		return a.PerformancePlanningLocked
	case models.StageMidYearReview:
		return a.MidYearReviewLocked
	case models.StageEndYearReview:
		return a.EndYearReviewLocked
	case models.StageAnnualAppraisal:
		return a.AnnualAppraisalLocked
	case models.StageFinalSections:
		return a.FinalSectionsLocked
	}
	return false
}

type AppraisalHistory struct {
	BaseModel
	AppraisalID   string `gorm:"type:varchar(36);index"`
	ActorID       string `gorm:"type:varchar(36)"`
	Action        string
	FromStatus    models.AppraisalStatus
	ToStatus      models.AppraisalStatus
	ManagerStatus models.ManagerStatus
	Comment       string
	Changes       HistoryChanges `gorm:"type:jsonb"`
}
