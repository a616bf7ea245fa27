package consolidator

import (
	dbmodels "appraisal-backend/models/db"

	"github.com/shopspring/decimal"
)

const scorePrecision = 2

// EndYearCalculations итоги оценки целей: сумма баллов, средний балл и сумма баллов с учетом веса цели
func EndYearCalculations(targets dbmodels.EndYearTargets) dbmodels.EndYearCalculations {
	if len(targets) == 0 {
		return dbmodels.EndYearCalculations{}
	}
	total := decimal.Zero
	weighted := decimal.Zero
	for _, target := range targets {
		score := decimal.NewFromFloat(target.Score)
		total = total.Add(score)
		weighted = weighted.Add(score.Mul(decimal.NewFromFloat(target.WeightOfTarget)))
	}
	average := total.Div(decimal.NewFromInt(int64(len(targets))))
	return dbmodels.EndYearCalculations{
		TotalScore:    total.Round(scorePrecision).InexactFloat64(),
		AverageScore:  average.Round(scorePrecision).InexactFloat64(),
		WeightedScore: weighted.Round(scorePrecision).InexactFloat64(),
	}
}

// CompetencyAverage средний балл по компетенциям, 0 для пустого списка
func CompetencyAverage(list dbmodels.CompetencyScores) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, item := range list {
		sum = sum.Add(decimal.NewFromFloat(item.Score))
	}
	return sum.Div(decimal.NewFromInt(int64(len(list)))).Round(scorePrecision).InexactFloat64()
}

// FillEndYear досчитывает итоги, если клиент их не передал
func FillEndYear(rec *dbmodels.EndYearReview) {
	if rec.Calculations == (dbmodels.EndYearCalculations{}) {
		rec.Calculations = EndYearCalculations(rec.Targets)
	}
}

// FillAnnual досчитывает средние по компетенциям, если клиент их не передал
func FillAnnual(rec *dbmodels.AnnualAppraisal) {
	if rec.CoreCompetenciesAverage == 0 {
		rec.CoreCompetenciesAverage = CompetencyAverage(rec.CoreCompetencies)
	}
	if rec.NonCoreCompetenciesAverage == 0 {
		rec.NonCoreCompetenciesAverage = CompetencyAverage(rec.NonCoreCompetencies)
	}
}
