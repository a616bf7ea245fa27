package appraisalapimodels

import (
	"testing"
	"time"

	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewStagePayload(t *testing.T) {
	for _, stage := range models.AllStages {
		payload, err := NewStagePayload(stage)
		require.NoError(t, err)
		require.Equal(t, stage, payload.Stage())
	}
	_, err := NewStagePayload(models.StageName("unknown"))
	require.True(t, models.IsValidationError(err))
}

func TestPersonalInfoData(t *testing.T) {
	t.Run(`period order`, func(t *testing.T) {
		data := PersonalInfoData{PeriodFrom: ptr("2025-12-31"), PeriodTo: ptr("2025-01-01")}
		err := data.Validate()
		require.True(t, models.IsValidationError(err))
		require.Equal(t, "Period end date must be after start date", err.Error())
	})

	t.Run(`date format`, func(t *testing.T) {
		data := PersonalInfoData{PeriodFrom: ptr("31.12.2025")}
		err := data.Validate()
		require.True(t, models.IsValidationError(err))
		require.Contains(t, err.Error(), "PeriodFrom must be a date in format YYYY-MM-DD")
	})

	t.Run(`gender`, func(t *testing.T) {
		require.Error(t, PersonalInfoData{Gender: ptr("Other")}.Validate())
		require.NoError(t, PersonalInfoData{Gender: ptr("Female")}.Validate())
	})

	t.Run(`record`, func(t *testing.T) {
		data := PersonalInfoData{
			PeriodFrom: ptr("2025-01-01"),
			PeriodTo:   ptr("2025-12-31"),
			Surname:    ptr("Иванов"),
			Appraiser:  &AppraiserData{Surname: "Петрова"},
			SignatureData: SignatureData{
				AppraiseeSignatureUrl: ptr("http://s3/a.png"),
				AppraiseeDate:         ptr("2025-02-01"),
			},
		}
		rec, err := data.ToRecord(dbmodels.StageBase{UserID: "u1"})
		require.NoError(t, err)
		require.Equal(t, "u1", rec.UserID)
		require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), rec.PeriodFrom)
		require.Equal(t, "Иванов", rec.Surname)
		require.Equal(t, "Петрова", rec.Appraiser.Surname)
		require.NotNil(t, rec.TrainingRecords)
		require.Equal(t, "http://s3/a.png", rec.AppraiseeSignatureUrl)
		require.False(t, rec.IsFullySigned())
	})
}

func TestUpdateMap(t *testing.T) {
	t.Run(`only passed fields`, func(t *testing.T) {
		updMap, err := PersonalInfoData{Surname: ptr("Петров"), Division: ptr("")}.UpdateMap()
		require.NoError(t, err)
		require.Equal(t, map[string]interface{}{"Surname": "Петров", "Division": ""}, updMap)
	})

	t.Run(`empty payload`, func(t *testing.T) {
		updMap, err := FinalSectionsData{}.UpdateMap()
		require.NoError(t, err)
		require.Empty(t, updMap)
	})

	t.Run(`signatures`, func(t *testing.T) {
		updMap, err := MidYearReviewData{SignatureData: SignatureData{
			AppraiserSignatureUrl: ptr("http://s3/m.png"),
			AppraiserDate:         ptr("2025-06-30"),
		}}.UpdateMap()
		require.NoError(t, err)
		require.Equal(t, "http://s3/m.png", updMap["AppraiserSignatureUrl"])
		date := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		require.Equal(t, &date, updMap["AppraiserDate"])
	})

	t.Run(`end year targets`, func(t *testing.T) {
		updMap, err := EndYearReviewData{Targets: &[]EndYearTargetData{{Target: "A", WeightOfTarget: 0.6, Score: 4}}}.UpdateMap()
		require.NoError(t, err)
		require.Equal(t, dbmodels.EndYearTargets{{Target: "A", WeightOfTarget: 0.6, Score: 4}}, updMap["Targets"])
		_, ok := updMap["Calculations"]
		require.False(t, ok)
	})

	t.Run(`assessment decision`, func(t *testing.T) {
		require.Error(t, FinalSectionsData{AssessmentDecision: ptr("promote")}.Validate())
		updMap, err := FinalSectionsData{AssessmentDecision: ptr("not_ready")}.UpdateMap()
		require.NoError(t, err)
		require.Equal(t, models.AssessmentNotReady, updMap["AssessmentDecision"])
	})
}

func TestScoresValidation(t *testing.T) {
	require.Error(t, AnnualAppraisalData{CoreCompetencies: &[]CompetencyScoreData{{Name: "A", Score: 6}}}.Validate())
	require.Error(t, AnnualAppraisalData{CoreCompetencies: &[]CompetencyScoreData{{Score: 3}}}.Validate())
	require.Error(t, AnnualAppraisalData{OverallScorePercentage: ptr(120.0)}.Validate())
	require.NoError(t, AnnualAppraisalData{CoreCompetencies: &[]CompetencyScoreData{{Name: "A", Score: 3}}}.Validate())

	require.Error(t, PerformancePlanningData{KeyResultAreas: &[]dbmodels.KeyResultArea{{Area: "A", Weight: 120}}}.Validate())
}

func TestRequests(t *testing.T) {
	t.Run(`allocate`, func(t *testing.T) {
		require.Error(t, AllocateRequest{PeriodStart: "2025-01-01", PeriodEnd: "2025-12-31"}.Validate())
		require.Error(t, AllocateRequest{EmployeeID: "u1", PeriodStart: "2025-12-31", PeriodEnd: "2025-01-01"}.Validate())
		req := AllocateRequest{EmployeeID: "u1", PeriodStart: "2025-01-01", PeriodEnd: "2025-12-31"}
		require.NoError(t, req.Validate())
		start, end, err := req.Period()
		require.NoError(t, err)
		require.True(t, end.After(start))
	})

	t.Run(`reject`, func(t *testing.T) {
		require.Error(t, RejectRequest{Comments: "  "}.Validate())
		require.NoError(t, RejectRequest{Comments: "Уточните цели"}.Validate())
	})

	t.Run(`step`, func(t *testing.T) {
		require.Error(t, StepRequest{Step: -1}.Validate())
		require.Error(t, StepRequest{Step: len(models.AllStages) + 1}.Validate())
		require.NoError(t, StepRequest{Step: 3}.Validate())
	})
}
