package autofill

import (
	"testing"

	dbmodels "appraisal-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestMidYearFromPlanning(t *testing.T) {
	appraisalID := "a1"
	managerID := "m1"
	plan := dbmodels.PerformancePlanning{
		StageBase: dbmodels.StageBase{
			BaseModel:   dbmodels.BaseModel{ID: "p1"},
			UserID:      "u1",
			ManagerID:   &managerID,
			AppraisalID: &appraisalID,
		},
		KeyResultAreas: dbmodels.KeyResultAreas{
			{Area: "Продажи", Targets: "Рост 10%"},
			{Area: "Клиенты", Targets: "NPS 50"},
		},
		KeyCompetencies: dbmodels.KeyCompetencies{{Competency: "Лидерство"}},
		DualSignature:   dbmodels.DualSignature{AppraiseeSignatureUrl: "http://s3/a.png"},
	}

	review := MidYearFromPlanning(plan)
	require.Empty(t, review.ID)
	require.Equal(t, "u1", review.UserID)
	require.Equal(t, &managerID, review.ManagerID)
	require.Equal(t, &appraisalID, review.AppraisalID)
	require.Equal(t, dbmodels.ReviewItems{{Description: "Рост 10%"}, {Description: "NPS 50"}}, review.Targets)
	require.Equal(t, dbmodels.ReviewItems{{Description: "Лидерство"}}, review.Competencies)
	require.False(t, review.IsFullySigned())
	require.Empty(t, review.AppraiseeSignatureUrl)
}

func TestEndYearFromMidYear(t *testing.T) {
	t.Run(`targets with default weight`, func(t *testing.T) {
		review := dbmodels.MidYearReview{
			StageBase: dbmodels.StageBase{UserID: "u1"},
			Targets: dbmodels.ReviewItems{
				{Description: "Рост 10%", Progress: "50%"},
				{Description: "NPS 50"},
			},
			Competencies: dbmodels.ReviewItems{{Description: "Лидерство"}},
		}
		eyr := EndYearFromMidYear(review)
		require.Equal(t, "u1", eyr.UserID)
		require.Equal(t, dbmodels.EndYearTargets{
			{Target: "Рост 10%", WeightOfTarget: DefaultTargetWeight},
			{Target: "NPS 50", WeightOfTarget: DefaultTargetWeight},
		}, eyr.Targets)
		require.Equal(t, dbmodels.EndYearCalculations{}, eyr.Calculations)
	})

	t.Run(`no targets`, func(t *testing.T) {
		eyr := EndYearFromMidYear(dbmodels.MidYearReview{})
		require.NotNil(t, eyr.Targets)
		require.Empty(t, eyr.Targets)
	})
}
