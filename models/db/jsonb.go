package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

func jsonbValue(v interface{}) (driver.Value, error) {
	valueString, err := json.Marshal(v)
	return string(valueString), err
}

func jsonbScan(value interface{}, dst interface{}) error {
	switch data := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return errors.Errorf("неподдерживаемый тип jsonb: %T", value)
	}
}

type TrainingRecord struct {
	Institution string `json:"institution"`
	Date        string `json:"date"`
	Programme   string `json:"programme"`
}

type TrainingRecords []TrainingRecord

func (j TrainingRecords) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *TrainingRecords) Scan(value any) error       { return jsonbScan(value, j) }

type AppraiserDetails struct {
	Title      string `json:"title"`
	Surname    string `json:"surname"`
	FirstName  string `json:"firstName"`
	OtherNames string `json:"otherNames"`
	Position   string `json:"position"`
}

func (j AppraiserDetails) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *AppraiserDetails) Scan(value any) error       { return jsonbScan(value, j) }

// IsEmpty блок оценивающего не заполнен
func (j AppraiserDetails) IsEmpty() bool {
	return j == AppraiserDetails{}
}

type EmployeeInfo struct {
	PeriodFrom        string `json:"periodFrom"`
	PeriodTo          string `json:"periodTo"`
	Title             string `json:"title"`
	OtherTitle        string `json:"otherTitle"`
	Surname           string `json:"surname"`
	FirstName         string `json:"firstName"`
	OtherNames        string `json:"otherNames"`
	Gender            string `json:"gender"`
	PresentJobTitle   string `json:"presentJobTitle"`
	GradeSalary       string `json:"gradeSalary"`
	Division          string `json:"division"`
	DateOfAppointment string `json:"dateOfAppointment"`
}

func (j EmployeeInfo) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *EmployeeInfo) Scan(value any) error       { return jsonbScan(value, j) }

type KeyResultArea struct {
	Area              string  `json:"area"`
	Targets           string  `json:"targets"`
	ResourcesRequired string  `json:"resourcesRequired"`
	Weight            float64 `json:"weight"`
}

type KeyResultAreas []KeyResultArea

func (j KeyResultAreas) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *KeyResultAreas) Scan(value any) error       { return jsonbScan(value, j) }

type KeyCompetency struct {
	Competency  string `json:"competency"`
	Description string `json:"description"`
}

type KeyCompetencies []KeyCompetency

func (j KeyCompetencies) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *KeyCompetencies) Scan(value any) error       { return jsonbScan(value, j) }

type ReviewItem struct {
	Description string `json:"description"`
	Progress    string `json:"progress"`
	Remarks     string `json:"remarks"`
}

type ReviewItems []ReviewItem

func (j ReviewItems) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *ReviewItems) Scan(value any) error       { return jsonbScan(value, j) }

type MidYearReviewSection struct {
	Targets      ReviewItems `json:"targets"`
	Competencies ReviewItems `json:"competencies"`
}

func (j MidYearReviewSection) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *MidYearReviewSection) Scan(value any) error       { return jsonbScan(value, j) }

type EndYearTarget struct {
	Target                string  `json:"target"`
	PerformanceAssessment string  `json:"performanceAssessment"`
	WeightOfTarget        float64 `json:"weightOfTarget"`
	Score                 float64 `json:"score"`
	Comments              string  `json:"comments"`
}

type EndYearTargets []EndYearTarget

func (j EndYearTargets) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *EndYearTargets) Scan(value any) error       { return jsonbScan(value, j) }

type EndYearCalculations struct {
	TotalScore    float64 `json:"totalScore"`
	AverageScore  float64 `json:"averageScore"`
	WeightedScore float64 `json:"weightedScore"`
}

func (j EndYearCalculations) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *EndYearCalculations) Scan(value any) error       { return jsonbScan(value, j) }

type EndYearReviewSection struct {
	Targets      EndYearTargets      `json:"targets"`
	Calculations EndYearCalculations `json:"calculations"`
}

func (j EndYearReviewSection) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *EndYearReviewSection) Scan(value any) error       { return jsonbScan(value, j) }

type CompetencyScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Comments string  `json:"comments"`
}

type CompetencyScores []CompetencyScore

func (j CompetencyScores) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *CompetencyScores) Scan(value any) error       { return jsonbScan(value, j) }

type OverallAssessment struct {
	PerformanceAssessmentScore float64 `json:"performanceAssessmentScore"`
	CoreCompetenciesAverage    float64 `json:"coreCompetenciesAverage"`
	NonCoreCompetenciesAverage float64 `json:"nonCoreCompetenciesAverage"`
	OverallTotal               float64 `json:"overallTotal"`
	OverallScorePercentage     float64 `json:"overallScorePercentage"`
	OverallRating              string  `json:"overallRating"`
}

func (j OverallAssessment) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *OverallAssessment) Scan(value any) error       { return jsonbScan(value, j) }
