package models

type StageName string

const (
	StagePersonalInfo        StageName = "personal_info"
	StagePerformancePlanning StageName = "performance_planning"
	StageMidYearReview       StageName = "mid_year_review"
	StageEndYearReview       StageName = "end_year_review"
	StageAnnualAppraisal     StageName = "annual_appraisal"
	StageFinalSections       StageName = "final_sections"
)

// AllStages порядок разделов формы аттестации
var AllStages = []StageName{
	StagePersonalInfo,
	StagePerformancePlanning,
	StageMidYearReview,
	StageEndYearReview,
	StageAnnualAppraisal,
	StageFinalSections,
}

var stageHumanName = map[StageName]string{
	StagePersonalInfo:        "Personal info",
	StagePerformancePlanning: "Performance planning",
	StageMidYearReview:       "Mid-year review",
	StageEndYearReview:       "End-year review",
	StageAnnualAppraisal:     "Annual appraisal",
	StageFinalSections:       "Final sections",
}

var stageLockField = map[StageName]string{
	StagePersonalInfo:        "PersonalInfoLocked",
	StagePerformancePlanning: "PerformancePlanningLocked",
	StageMidYearReview:       "MidYearReviewLocked",
	StageEndYearReview:       "EndYearReviewLocked",
	StageAnnualAppraisal:     "AnnualAppraisalLocked",
	StageFinalSections:       "FinalSectionsLocked",
}

func (s StageName) IsValid() bool {
	_, ok := stageHumanName[s]
	return ok
}

func (s StageName) ToHuman() string {
	if human, exist := stageHumanName[s]; exist {
		return human
	}
	return string(s)
}

// LockField имя поля флага блокировки в аттестации
func (s StageName) LockField() string {
	return stageLockField[s]
}
