package dbmodels

import (
	"appraisal-backend/models"
	"time"
)

type StageBase struct {
	BaseModel
	UserID      string  `gorm:"type:varchar(36);index" json:"userId"`
	ManagerID   *string `gorm:"type:varchar(36)" json:"managerId"`
	AppraisalID *string `gorm:"type:varchar(36);index" json:"appraisalId"`
}

func (s StageBase) GetID() string {
	return s.ID
}

func (s StageBase) GetUserID() string {
	return s.UserID
}

func (s StageBase) GetAppraisalID() *string {
	return s.AppraisalID
}

type DualSignature struct {
	AppraiseeSignatureUrl string     `json:"appraiseeSignatureUrl"`
	AppraiseeDate         *time.Time `json:"appraiseeDate"`
	AppraiserSignatureUrl string     `json:"appraiserSignatureUrl"`
	AppraiserDate         *time.Time `json:"appraiserDate"`
}

// IsFullySigned раздел подписан обеими сторонами
func (s DualSignature) IsFullySigned() bool {
	return s.AppraiseeSignatureUrl != "" && s.AppraiserSignatureUrl != ""
}

// StageRecord общий интерфейс записей разделов формы
type StageRecord interface {
	Stage() models.StageName
	GetID() string
	GetUserID() string
	GetAppraisalID() *string
	IsFullySigned() bool
}

type PersonalInfo struct {
	StageBase
	PeriodFrom        time.Time        `gorm:"type:date" json:"periodFrom"`
	PeriodTo          time.Time        `gorm:"type:date" json:"periodTo"`
	Title             string           `json:"title"`
	OtherTitle        string           `json:"otherTitle"`
	Surname           string           `json:"surname"`
	FirstName         string           `json:"firstName"`
	OtherNames        string           `json:"otherNames"`
	Gender            string           `json:"gender"`
	PresentJobTitle   string           `json:"presentJobTitle"`
	GradeSalary       string           `json:"gradeSalary"`
	Division          string           `json:"division"`
	DateOfAppointment *time.Time       `gorm:"type:date" json:"dateOfAppointment"`
	TrainingRecords   TrainingRecords  `gorm:"type:jsonb" json:"trainingRecords"`
	Appraiser         AppraiserDetails `gorm:"type:jsonb" json:"appraiser"`
	DualSignature
}

func (PersonalInfo) Stage() models.StageName { return models.StagePersonalInfo }

type PerformancePlanning struct {
	StageBase
	KeyResultAreas  KeyResultAreas  `gorm:"type:jsonb" json:"keyResultAreas"`
	KeyCompetencies KeyCompetencies `gorm:"type:jsonb" json:"keyCompetencies"`
	DualSignature
}

func (PerformancePlanning) Stage() models.StageName { return models.StagePerformancePlanning }

type MidYearReview struct {
	StageBase
	Targets      ReviewItems `gorm:"type:jsonb" json:"targets"`
	Competencies ReviewItems `gorm:"type:jsonb" json:"competencies"`
	DualSignature
}

func (MidYearReview) Stage() models.StageName { return models.StageMidYearReview }

type EndYearReview struct {
	StageBase
	Targets      EndYearTargets      `gorm:"type:jsonb" json:"targets"`
	Calculations EndYearCalculations `gorm:"type:jsonb" json:"calculations"`
	DualSignature
}

func (EndYearReview) Stage() models.StageName { return models.StageEndYearReview }

type AnnualAppraisal struct {
	StageBase
	CoreCompetencies           CompetencyScores `gorm:"type:jsonb" json:"coreCompetencies"`
	NonCoreCompetencies        CompetencyScores `gorm:"type:jsonb" json:"nonCoreCompetencies"`
	PerformanceAssessmentScore float64          `json:"performanceAssessmentScore"`
	CoreCompetenciesAverage    float64          `json:"coreCompetenciesAverage"`
	NonCoreCompetenciesAverage float64          `json:"nonCoreCompetenciesAverage"`
	OverallTotal               float64          `json:"overallTotal"`
	OverallScorePercentage     float64          `json:"overallScorePercentage"`
	OverallRating              string           `json:"overallRating"`
	DualSignature
}

func (AnnualAppraisal) Stage() models.StageName { return models.StageAnnualAppraisal }

type FinalSections struct {
	StageBase
	AppraiserComments         string                    `json:"appraiserComments"`
	CareerDevelopmentComments string                    `json:"careerDevelopmentComments"`
	AssessmentDecision        models.AssessmentDecision `gorm:"type:varchar(20)" json:"assessmentDecision"`
	AppraiseeComments         string                    `json:"appraiseeComments"`
	DualSignature
}

func (FinalSections) Stage() models.StageName { return models.StageFinalSections }

// TableName без множественного числа от gorm (final_sections_s)
func (FinalSections) TableName() string { return "final_sections" }
