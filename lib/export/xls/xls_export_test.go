package xlsexport

import (
	"testing"
	"time"

	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportAppraisal(t *testing.T) {
	submitted := time.Date(2025, 12, 20, 10, 30, 0, 0, time.UTC)
	rec := dbmodels.Appraisal{
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      models.AppraisalStatusSubmitted,
		SubmittedAt: &submitted,
		EmployeeInfo: dbmodels.EmployeeInfo{
			FirstName:       "Иван",
			Surname:         "Иванов",
			PresentJobTitle: "Инженер",
		},
		KeyResultAreas: dbmodels.KeyResultAreas{{Area: "Продажи", Targets: "Рост 10%", Weight: 60}},
		EndOfYearReview: dbmodels.EndYearReviewSection{
			Targets:      dbmodels.EndYearTargets{{Target: "Рост 10%", WeightOfTarget: 0.6, Score: 4}},
			Calculations: dbmodels.EndYearCalculations{TotalScore: 4, AverageScore: 4, WeightedScore: 2.4},
		},
		CoreCompetencies:   dbmodels.CompetencyScores{{Name: "Ответственность", Score: 5}},
		AppraiserComments:  "Хорошая работа",
		AssessmentDecision: models.AssessmentSuitable,
	}

	buf, err := impl{}.ExportAppraisal(rec)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{sheetSummary}, f.GetSheetList())
	rows, err := f.GetRows(sheetSummary)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	require.Equal(t, "Период", rows[0][0])
	require.Equal(t, "01.01.2025 - 31.12.2025", rows[1][0])
	require.Equal(t, "submitted", rows[1][1])
	require.Equal(t, "20.12.2025 10:30", rows[1][3])

	cells := map[string]bool{}
	for _, row := range rows {
		for _, cell := range row {
			cells[cell] = true
		}
	}
	for _, expected := range []string{"Сотрудник", "Инженер", "Продажи", "Годовая оценка", "Ответственность", "Хорошая работа", "suitable"} {
		require.True(t, cells[expected], expected)
	}
}
