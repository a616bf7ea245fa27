package appraisalapimodels

import (
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type AllocateRequest struct {
	EmployeeID  string `json:"employeeId" validate:"required"`
	PeriodStart string `json:"periodStart" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"periodEnd" validate:"required,datetime=2006-01-02"`
}

func (r AllocateRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	start, end, err := r.Period()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return models.NewValidationError("Period end date must be after start date")
	}
	return nil
}

func (r AllocateRequest) Period() (start, end time.Time, err error) {
	from, err := parseDate(&r.PeriodStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(&r.PeriodEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return *from, *to, nil
}

type ReviewRequest struct {
	Comments string `json:"comments"`
}

func (r ReviewRequest) Validate() error {
	return nil
}

// RejectRequest при отклонении комментарий обязателен
type RejectRequest struct {
	Comments string `json:"comments"`
}

func (r RejectRequest) Validate() error {
	if strings.TrimSpace(r.Comments) == "" {
		return models.NewValidationError("Comments are required when rejecting an appraisal")
	}
	return nil
}

type StepRequest struct {
	AppraisalID string `json:"appraisalId"`
	Step        int    `json:"step"`
}

func (r StepRequest) Validate() error {
	if r.Step < 0 || r.Step > len(models.AllStages) {
		return errors.Errorf("шаг должен быть в диапазоне 0..%d", len(models.AllStages))
	}
	return nil
}

type AppraisalView struct {
	ID                 string                 `json:"id"`
	EmployeeID         string                 `json:"employeeId"`
	AppraiserID        *string                `json:"appraiserId"`
	PeriodStart        string                 `json:"periodStart"`
	PeriodEnd          string                 `json:"periodEnd"`
	Status             models.AppraisalStatus `json:"status"`
	ManagerStatus      models.ManagerStatus   `json:"managerStatus,omitempty"`
	ManagerComments    string                 `json:"managerComments,omitempty"`
	ReviewedBy         *string                `json:"reviewedBy,omitempty"`
	ReviewedAt         *time.Time             `json:"reviewedAt,omitempty"`
	CurrentStep        int                    `json:"currentStep"`
	ManagerCurrentStep int                    `json:"managerCurrentStep"`

	EmployeeInfo        dbmodels.EmployeeInfo         `json:"employeeInfo"`
	AppraiserInfo       dbmodels.AppraiserDetails     `json:"appraiserInfo"`
	TrainingReceived    dbmodels.TrainingRecords      `json:"trainingReceived"`
	KeyResultAreas      dbmodels.KeyResultAreas       `json:"keyResultAreas"`
	KeyCompetencies     dbmodels.KeyCompetencies      `json:"keyCompetencies"`
	MidYearReview       dbmodels.MidYearReviewSection `json:"midYearReview"`
	EndOfYearReview     dbmodels.EndYearReviewSection `json:"endOfYearReview"`
	CoreCompetencies    dbmodels.CompetencyScores     `json:"coreCompetencies"`
	NonCoreCompetencies dbmodels.CompetencyScores     `json:"nonCoreCompetencies"`
	OverallAssessment   dbmodels.OverallAssessment    `json:"overallAssessment"`

	AppraiserComments         string                    `json:"appraiserComments"`
	CareerDevelopmentComments string                    `json:"careerDevelopmentComments"`
	AssessmentDecision        models.AssessmentDecision `json:"assessmentDecision"`
	AppraiseeComments         string                    `json:"appraiseeComments"`
	AppraiseeCommentsDate     *time.Time                `json:"appraiseeCommentsDate"`
	AppraiserSignature        string                    `json:"appraiserSignature"`
	AppraiserSignatureDate    *time.Time                `json:"appraiserSignatureDate"`
	AppraiseeSignature        string                    `json:"appraiseeSignature"`
	AppraiseeSignatureDate    *time.Time                `json:"appraiseeSignatureDate"`

	LockStatus  LockStatusView `json:"lockStatus"`
	SubmittedAt *time.Time     `json:"submittedAt"`
	CompletedAt *time.Time     `json:"completedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func AppraisalConvert(rec dbmodels.Appraisal) AppraisalView {
	return AppraisalView{
		ID:                        rec.ID,
		EmployeeID:                rec.EmployeeID,
		AppraiserID:               rec.AppraiserID,
		PeriodStart:               rec.PeriodStart.Format(dateLayout),
		PeriodEnd:                 rec.PeriodEnd.Format(dateLayout),
		Status:                    rec.Status,
		ManagerStatus:             rec.ManagerStatus,
		ManagerComments:           rec.ManagerComments,
		ReviewedBy:                rec.ReviewedBy,
		ReviewedAt:                rec.ReviewedAt,
		CurrentStep:               rec.CurrentStep,
		ManagerCurrentStep:        rec.ManagerCurrentStep,
		EmployeeInfo:              rec.EmployeeInfo,
		AppraiserInfo:             rec.AppraiserInfo,
		TrainingReceived:          rec.TrainingReceived,
		KeyResultAreas:            rec.KeyResultAreas,
		KeyCompetencies:           rec.KeyCompetencies,
		MidYearReview:             rec.MidYearReview,
		EndOfYearReview:           rec.EndOfYearReview,
		CoreCompetencies:          rec.CoreCompetencies,
		NonCoreCompetencies:       rec.NonCoreCompetencies,
		OverallAssessment:         rec.OverallAssessment,
		AppraiserComments:         rec.AppraiserComments,
		CareerDevelopmentComments: rec.CareerDevelopmentComments,
		AssessmentDecision:        rec.AssessmentDecision,
		AppraiseeComments:         rec.AppraiseeComments,
		AppraiseeCommentsDate:     rec.AppraiseeCommentsDate,
		AppraiserSignature:        rec.AppraiserSignature,
		AppraiserSignatureDate:    rec.AppraiserSignatureDate,
		AppraiseeSignature:        rec.AppraiseeSignature,
		AppraiseeSignatureDate:    rec.AppraiseeSignatureDate,
		LockStatus:                LockStatusConvert(&rec),
		SubmittedAt:               rec.SubmittedAt,
		CompletedAt:               rec.CompletedAt,
		CreatedAt:                 rec.CreatedAt,
		UpdatedAt:                 rec.UpdatedAt,
	}
}

type LockStatusView struct {
	PersonalInfo        bool `json:"personalInfo"`
	PerformancePlanning bool `json:"performancePlanning"`
	MidYearReview       bool `json:"midYearReview"`
	EndYearReview       bool `json:"endYearReview"`
	AnnualAppraisal     bool `json:"annualAppraisal"`
	FinalSections       bool `json:"finalSections"`
}

// LockStatusConvert без активной аттестации все разделы открыты
func LockStatusConvert(rec *dbmodels.Appraisal) LockStatusView {
	if rec == nil {
		return LockStatusView{}
	}
	return LockStatusView{
		PersonalInfo:        rec.PersonalInfoLocked,
		PerformancePlanning: rec.PerformancePlanningLocked,
		MidYearReview:       rec.MidYearReviewLocked,
		EndYearReview:       rec.EndYearReviewLocked,
		AnnualAppraisal:     rec.AnnualAppraisalLocked,
		FinalSections:       rec.FinalSectionsLocked,
	}
}

type HistoryView struct {
	ID            string                  `json:"id"`
	ActorID       string                  `json:"actorId"`
	Action        string                  `json:"action"`
	FromStatus    models.AppraisalStatus  `json:"fromStatus"`
	ToStatus      models.AppraisalStatus  `json:"toStatus"`
	ManagerStatus models.ManagerStatus    `json:"managerStatus,omitempty"`
	Comment       string                  `json:"comment,omitempty"`
	Changes       dbmodels.HistoryChanges `json:"changes"`
	CreatedAt     time.Time               `json:"createdAt"`
}

func HistoryConvert(rec dbmodels.AppraisalHistory) HistoryView {
	return HistoryView{
		ID:            rec.ID,
		ActorID:       rec.ActorID,
		Action:        rec.Action,
		FromStatus:    rec.FromStatus,
		ToStatus:      rec.ToStatus,
		ManagerStatus: rec.ManagerStatus,
		Comment:       rec.Comment,
		Changes:       rec.Changes,
		CreatedAt:     rec.CreatedAt,
	}
}

// TeamMemberView подчиненный и его текущая аттестация (nil, если активной нет)
type TeamMemberView struct {
	UserID    string               `json:"userId"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Role      models.UserRole      `json:"role"`
	Position  string               `json:"position"`
	Division  string               `json:"division"`
	Appraisal *AppraisalStatusView `json:"appraisal"`
}

type AppraisalStatusView struct {
	ID            string                 `json:"id"`
	Status        models.AppraisalStatus `json:"status"`
	ManagerStatus models.ManagerStatus   `json:"managerStatus,omitempty"`
	CurrentStep   int                    `json:"currentStep"`
}

func TeamMemberConvert(user dbmodels.User, active *dbmodels.Appraisal) TeamMemberView {
	view := TeamMemberView{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		Position: user.Position,
		Division: user.Division,
	}
	if active != nil {
		view.Appraisal = &AppraisalStatusView{
			ID:            active.ID,
			Status:        active.Status,
			ManagerStatus: active.ManagerStatus,
			CurrentStep:   active.CurrentStep,
		}
	}
	return view
}

type SectionAvailabilityView struct {
	SectionName models.StageName `json:"sectionName"`
	IsAvailable bool             `json:"isAvailable"`
	OpensAt     *time.Time       `json:"opensAt"`
	Message     string           `json:"message"`
}

type SectionAvailabilityData struct {
	IsAvailable *bool   `json:"isAvailable"`
	OpensAt     *string `json:"opensAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Message     *string `json:"message"`
}

func (d SectionAvailabilityData) Validate() error {
	return validateStruct(d)
}

func (d SectionAvailabilityData) GetOpensAt() (*time.Time, error) {
	if d.OpensAt == nil || *d.OpensAt == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *d.OpensAt)
	if err != nil {
		return nil, models.NewValidationError("opensAt must be RFC3339 date-time")
	}
	return &t, nil
}
