package autofill

import (
	dbmodels "appraisal-backend/models/db"
)

// DefaultTargetWeight вес цели в годовой оценке по умолчанию
const DefaultTargetWeight = 0.6

// MidYearFromPlanning заготовка промежуточной оценки: цели и компетенции из плана, в том же порядке
func MidYearFromPlanning(plan dbmodels.PerformancePlanning) dbmodels.MidYearReview {
	targets := make(dbmodels.ReviewItems, 0, len(plan.KeyResultAreas))
	for _, kra := range plan.KeyResultAreas {
		targets = append(targets, dbmodels.ReviewItem{Description: kra.Targets})
	}
	competencies := make(dbmodels.ReviewItems, 0, len(plan.KeyCompetencies))
	for _, kc := range plan.KeyCompetencies {
		competencies = append(competencies, dbmodels.ReviewItem{Description: kc.Competency})
	}
	return dbmodels.MidYearReview{
		StageBase:    seedBase(plan.StageBase),
		Targets:      targets,
		Competencies: competencies,
	}
}

// EndYearFromMidYear заготовка годовой оценки по целям промежуточной оценки
func EndYearFromMidYear(review dbmodels.MidYearReview) dbmodels.EndYearReview {
	targets := make(dbmodels.EndYearTargets, 0, len(review.Targets))
	for _, item := range review.Targets {
		targets = append(targets, dbmodels.EndYearTarget{
			Target:         item.Description,
			WeightOfTarget: DefaultTargetWeight,
			Score:          0,
		})
	}
	return dbmodels.EndYearReview{
		StageBase: seedBase(review.StageBase),
		Targets:   targets,
	}
}

func seedBase(src dbmodels.StageBase) dbmodels.StageBase {
	return dbmodels.StageBase{
		UserID:      src.UserID,
		ManagerID:   src.ManagerID,
		AppraisalID: src.AppraisalID,
	}
}
