package consolidator

import (
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

// Project поля аттестации, в которые переносятся данные сохраненного раздела.
// Запись перезаписывает поля целиком, без проверки версии.
func Project(appraisal dbmodels.Appraisal, rec dbmodels.StageRecord, now time.Time) (map[string]interface{}, error) {
	switch r := rec.(type) {
	case dbmodels.PersonalInfo:
		updMap := map[string]interface{}{
			"EmployeeInfo":     employeeInfo(r),
			"TrainingReceived": trainingRecords(r.TrainingRecords),
		}
		if !r.Appraiser.IsEmpty() {
			updMap["AppraiserInfo"] = r.Appraiser
		}
		return updMap, nil
	case dbmodels.PerformancePlanning:
		return map[string]interface{}{
			"KeyResultAreas":  nonNilKRA(r.KeyResultAreas),
			"KeyCompetencies": nonNilCompetencies(r.KeyCompetencies),
		}, nil
	case dbmodels.MidYearReview:
		return map[string]interface{}{
			"MidYearReview": dbmodels.MidYearReviewSection{
				Targets:      nonNilReviewItems(r.Targets),
				Competencies: nonNilReviewItems(r.Competencies),
			},
		}, nil
	case dbmodels.EndYearReview:
		return map[string]interface{}{
			"EndOfYearReview": dbmodels.EndYearReviewSection{
				Targets:      nonNilTargets(r.Targets),
				Calculations: r.Calculations,
			},
		}, nil
	case dbmodels.AnnualAppraisal:
		return map[string]interface{}{
			"CoreCompetencies":    nonNilScores(r.CoreCompetencies),
			"NonCoreCompetencies": nonNilScores(r.NonCoreCompetencies),
			"OverallAssessment":   overallAssessment(r),
		}, nil
	case dbmodels.FinalSections:
		updMap := map[string]interface{}{
			"AppraiserComments":         r.AppraiserComments,
			"CareerDevelopmentComments": r.CareerDevelopmentComments,
			"AssessmentDecision":        r.AssessmentDecision,
			"AppraiseeComments":         r.AppraiseeComments,
			"AppraiseeCommentsDate":     r.AppraiseeDate,
			"AppraiserSignature":        r.AppraiserSignatureUrl,
			"AppraiserSignatureDate":    r.AppraiserDate,
			"AppraiseeSignature":        r.AppraiseeSignatureUrl,
			"AppraiseeSignatureDate":    r.AppraiseeDate,
		}
		// сохранение итогового раздела отправляет форму руководителю
		if appraisal.Status == models.AppraisalStatusInProgress {
			updMap["Status"] = models.AppraisalStatusSubmitted
			updMap["SubmittedAt"] = now
		}
		return updMap, nil
	}
	return nil, errors.Errorf("неизвестный тип раздела: %T", rec)
}

// Snapshot полная сводка всех разделов на момент отправки формы.
// Отсутствующие разделы (nil) не затирают уже перенесенные данные.
func Snapshot(appraisal dbmodels.Appraisal, records []dbmodels.StageRecord, now time.Time) (map[string]interface{}, error) {
	snapshot := map[string]interface{}{}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		updMap, err := Project(appraisal, rec, now)
		if err != nil {
			return nil, err
		}
		for k, v := range updMap {
			snapshot[k] = v
		}
	}
	snapshot["Status"] = models.AppraisalStatusSubmitted
	snapshot["SubmittedAt"] = now
	return snapshot, nil
}

func employeeInfo(r dbmodels.PersonalInfo) dbmodels.EmployeeInfo {
	info := dbmodels.EmployeeInfo{
		PeriodFrom:      formatDate(&r.PeriodFrom),
		PeriodTo:        formatDate(&r.PeriodTo),
		Title:           r.Title,
		OtherTitle:      r.OtherTitle,
		Surname:         r.Surname,
		FirstName:       r.FirstName,
		OtherNames:      r.OtherNames,
		Gender:          r.Gender,
		PresentJobTitle: r.PresentJobTitle,
		GradeSalary:     r.GradeSalary,
		Division:        r.Division,
	}
	info.DateOfAppointment = formatDate(r.DateOfAppointment)
	return info
}

func overallAssessment(r dbmodels.AnnualAppraisal) dbmodels.OverallAssessment {
	return dbmodels.OverallAssessment{
		PerformanceAssessmentScore: r.PerformanceAssessmentScore,
		CoreCompetenciesAverage:    r.CoreCompetenciesAverage,
		NonCoreCompetenciesAverage: r.NonCoreCompetenciesAverage,
		OverallTotal:               r.OverallTotal,
		OverallScorePercentage:     r.OverallScorePercentage,
		OverallRating:              r.OverallRating,
	}
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func trainingRecords(list dbmodels.TrainingRecords) dbmodels.TrainingRecords {
	if list == nil {
		return dbmodels.TrainingRecords{}
	}
	return list
}

func nonNilKRA(list dbmodels.KeyResultAreas) dbmodels.KeyResultAreas {
	if list == nil {
		return dbmodels.KeyResultAreas{}
	}
	return list
}

func nonNilCompetencies(list dbmodels.KeyCompetencies) dbmodels.KeyCompetencies {
	if list == nil {
		return dbmodels.KeyCompetencies{}
	}
	return list
}

func nonNilReviewItems(list dbmodels.ReviewItems) dbmodels.ReviewItems {
	if list == nil {
		return dbmodels.ReviewItems{}
	}
	return list
}

func nonNilTargets(list dbmodels.EndYearTargets) dbmodels.EndYearTargets {
	if list == nil {
		return dbmodels.EndYearTargets{}
	}
	return list
}

func nonNilScores(list dbmodels.CompetencyScores) dbmodels.CompetencyScores {
	if list == nil {
		return dbmodels.CompetencyScores{}
	}
	return list
}
