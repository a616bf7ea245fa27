package appraisalapimodels

import (
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"
	"time"
)

// StagePayload данные одного раздела формы. Набор реализаций закрыт: по одной на каждый раздел.
type StagePayload interface {
	Stage() models.StageName
	Validate() error
	// UpdateMap только переданные поля, для частичного обновления
	UpdateMap() (map[string]interface{}, error)
}

// NewStagePayload пустые данные раздела для разбора тела запроса
func NewStagePayload(stage models.StageName) (StagePayload, error) {
	switch stage {
	case models.StagePersonalInfo:
		return &PersonalInfoData{}, nil
	case models.StagePerformancePlanning:
		return &PerformancePlanningData{}, nil
	case models.StageMidYearReview:
		return &MidYearReviewData{}, nil
	case models.StageEndYearReview:
		return &EndYearReviewData{}, nil
	case models.StageAnnualAppraisal:
		return &AnnualAppraisalData{}, nil
	case models.StageFinalSections:
		return &FinalSectionsData{}, nil
	}
	return nil, models.NewValidationError("unknown stage: %s", stage)
}

type SignatureData struct {
	AppraiseeSignatureUrl *string `json:"appraiseeSignatureUrl"`
	AppraiseeDate         *string `json:"appraiseeDate" validate:"omitempty,datetime=2006-01-02"`
	AppraiserSignatureUrl *string `json:"appraiserSignatureUrl"`
	AppraiserDate         *string `json:"appraiserDate" validate:"omitempty,datetime=2006-01-02"`
}

func (s SignatureData) toModel() (dbmodels.DualSignature, error) {
	appraiseeDate, err := parseDate(s.AppraiseeDate)
	if err != nil {
		return dbmodels.DualSignature{}, err
	}
	appraiserDate, err := parseDate(s.AppraiserDate)
	if err != nil {
		return dbmodels.DualSignature{}, err
	}
	return dbmodels.DualSignature{
		AppraiseeSignatureUrl: strValue(s.AppraiseeSignatureUrl),
		AppraiseeDate:         appraiseeDate,
		AppraiserSignatureUrl: strValue(s.AppraiserSignatureUrl),
		AppraiserDate:         appraiserDate,
	}, nil
}

func (s SignatureData) fillUpdMap(updMap map[string]interface{}) error {
	if s.AppraiseeSignatureUrl != nil {
		updMap["AppraiseeSignatureUrl"] = *s.AppraiseeSignatureUrl
	}
	if s.AppraiserSignatureUrl != nil {
		updMap["AppraiserSignatureUrl"] = *s.AppraiserSignatureUrl
	}
	if s.AppraiseeDate != nil {
		date, err := parseDate(s.AppraiseeDate)
		if err != nil {
			return err
		}
		updMap["AppraiseeDate"] = date
	}
	if s.AppraiserDate != nil {
		date, err := parseDate(s.AppraiserDate)
		if err != nil {
			return err
		}
		updMap["AppraiserDate"] = date
	}
	return nil
}

type AppraiserData struct {
	Title      string `json:"title"`
	Surname    string `json:"surname"`
	FirstName  string `json:"firstName"`
	OtherNames string `json:"otherNames"`
	Position   string `json:"position"`
}

type PersonalInfoData struct {
	PeriodFrom        *string                    `json:"periodFrom" validate:"omitempty,datetime=2006-01-02"`
	PeriodTo          *string                    `json:"periodTo" validate:"omitempty,datetime=2006-01-02"`
	Title             *string                    `json:"title"`
	OtherTitle        *string                    `json:"otherTitle"`
	Surname           *string                    `json:"surname"`
	FirstName         *string                    `json:"firstName"`
	OtherNames        *string                    `json:"otherNames"`
	Gender            *string                    `json:"gender" validate:"omitempty,oneof=Male Female"`
	PresentJobTitle   *string                    `json:"presentJobTitle"`
	GradeSalary       *string                    `json:"gradeSalary"`
	Division          *string                    `json:"division"`
	DateOfAppointment *string                    `json:"dateOfAppointment" validate:"omitempty,datetime=2006-01-02"`
	TrainingRecords   *[]dbmodels.TrainingRecord `json:"trainingRecords"`
	Appraiser         *AppraiserData             `json:"appraiser"`
	SignatureData
}

func (d PersonalInfoData) Stage() models.StageName { return models.StagePersonalInfo }

func (d PersonalInfoData) Validate() error {
	if err := validateStruct(d); err != nil {
		return err
	}
	from, to, err := d.Period()
	if err != nil {
		return err
	}
	if from != nil && to != nil && to.Before(*from) {
		return models.NewValidationError("Period end date must be after start date")
	}
	return nil
}

// Period период аттестации, указанный в разделе
func (d PersonalInfoData) Period() (from, to *time.Time, err error) {
	from, err = parseDate(d.PeriodFrom)
	if err != nil {
		return nil, nil, err
	}
	to, err = parseDate(d.PeriodTo)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (d PersonalInfoData) ToRecord(base dbmodels.StageBase) (dbmodels.PersonalInfo, error) {
	from, to, err := d.Period()
	if err != nil {
		return dbmodels.PersonalInfo{}, err
	}
	if from == nil || to == nil {
		return dbmodels.PersonalInfo{}, models.NewValidationError("Period from and period to are required")
	}
	appointment, err := parseDate(d.DateOfAppointment)
	if err != nil {
		return dbmodels.PersonalInfo{}, err
	}
	signature, err := d.SignatureData.toModel()
	if err != nil {
		return dbmodels.PersonalInfo{}, err
	}
	rec := dbmodels.PersonalInfo{
		StageBase:         base,
		PeriodFrom:        *from,
		PeriodTo:          *to,
		Title:             strValue(d.Title),
		OtherTitle:        strValue(d.OtherTitle),
		Surname:           strValue(d.Surname),
		FirstName:         strValue(d.FirstName),
		OtherNames:        strValue(d.OtherNames),
		Gender:            strValue(d.Gender),
		PresentJobTitle:   strValue(d.PresentJobTitle),
		GradeSalary:       strValue(d.GradeSalary),
		Division:          strValue(d.Division),
		DateOfAppointment: appointment,
		TrainingRecords:   dbmodels.TrainingRecords{},
		DualSignature:     signature,
	}
	if d.TrainingRecords != nil {
		rec.TrainingRecords = *d.TrainingRecords
	}
	if d.Appraiser != nil {
		rec.Appraiser = dbmodels.AppraiserDetails(*d.Appraiser)
	}
	return rec, nil
}

func (d PersonalInfoData) UpdateMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	from, to, err := d.Period()
	if err != nil {
		return nil, err
	}
	if from != nil {
		updMap["PeriodFrom"] = *from
	}
	if to != nil {
		updMap["PeriodTo"] = *to
	}
	setString(updMap, "Title", d.Title)
	setString(updMap, "OtherTitle", d.OtherTitle)
	setString(updMap, "Surname", d.Surname)
	setString(updMap, "FirstName", d.FirstName)
	setString(updMap, "OtherNames", d.OtherNames)
	setString(updMap, "Gender", d.Gender)
	setString(updMap, "PresentJobTitle", d.PresentJobTitle)
	setString(updMap, "GradeSalary", d.GradeSalary)
	setString(updMap, "Division", d.Division)
	if d.DateOfAppointment != nil {
		appointment, err := parseDate(d.DateOfAppointment)
		if err != nil {
			return nil, err
		}
		updMap["DateOfAppointment"] = appointment
	}
	if d.TrainingRecords != nil {
		updMap["TrainingRecords"] = dbmodels.TrainingRecords(*d.TrainingRecords)
	}
	if d.Appraiser != nil {
		updMap["Appraiser"] = dbmodels.AppraiserDetails(*d.Appraiser)
	}
	if err = d.SignatureData.fillUpdMap(updMap); err != nil {
		return nil, err
	}
	return updMap, nil
}

type PerformancePlanningData struct {
	KeyResultAreas  *[]dbmodels.KeyResultArea `json:"keyResultAreas" validate:"omitempty,dive"`
	KeyCompetencies *[]dbmodels.KeyCompetency `json:"keyCompetencies"`
	SignatureData
}

func (d PerformancePlanningData) Stage() models.StageName { return models.StagePerformancePlanning }

func (d PerformancePlanningData) Validate() error {
	if d.KeyResultAreas != nil {
		for _, kra := range *d.KeyResultAreas {
			if kra.Weight < 0 || kra.Weight > 100 {
				return models.NewValidationError("Key result area weight must be between 0 and 100")
			}
		}
	}
	return validateStruct(d)
}

func (d PerformancePlanningData) ToRecord(base dbmodels.StageBase) (dbmodels.PerformancePlanning, error) {
	signature, err := d.SignatureData.toModel()
	if err != nil {
		return dbmodels.PerformancePlanning{}, err
	}
	rec := dbmodels.PerformancePlanning{
		StageBase:       base,
		KeyResultAreas:  dbmodels.KeyResultAreas{},
		KeyCompetencies: dbmodels.KeyCompetencies{},
		DualSignature:   signature,
	}
	if d.KeyResultAreas != nil {
		rec.KeyResultAreas = *d.KeyResultAreas
	}
	if d.KeyCompetencies != nil {
		rec.KeyCompetencies = *d.KeyCompetencies
	}
	return rec, nil
}

func (d PerformancePlanningData) UpdateMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	if d.KeyResultAreas != nil {
		updMap["KeyResultAreas"] = dbmodels.KeyResultAreas(*d.KeyResultAreas)
	}
	if d.KeyCompetencies != nil {
		updMap["KeyCompetencies"] = dbmodels.KeyCompetencies(*d.KeyCompetencies)
	}
	if err := d.SignatureData.fillUpdMap(updMap); err != nil {
		return nil, err
	}
	return updMap, nil
}

type MidYearReviewData struct {
	Targets      *[]dbmodels.ReviewItem `json:"targets"`
	Competencies *[]dbmodels.ReviewItem `json:"competencies"`
	SignatureData
}

func (d MidYearReviewData) Stage() models.StageName { return models.StageMidYearReview }

func (d MidYearReviewData) Validate() error {
	return validateStruct(d)
}

func (d MidYearReviewData) ToRecord(base dbmodels.StageBase) (dbmodels.MidYearReview, error) {
	signature, err := d.SignatureData.toModel()
	if err != nil {
		return dbmodels.MidYearReview{}, err
	}
	rec := dbmodels.MidYearReview{
		StageBase:     base,
		Targets:       dbmodels.ReviewItems{},
		Competencies:  dbmodels.ReviewItems{},
		DualSignature: signature,
	}
	if d.Targets != nil {
		rec.Targets = *d.Targets
	}
	if d.Competencies != nil {
		rec.Competencies = *d.Competencies
	}
	return rec, nil
}

func (d MidYearReviewData) UpdateMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	if d.Targets != nil {
		updMap["Targets"] = dbmodels.ReviewItems(*d.Targets)
	}
	if d.Competencies != nil {
		updMap["Competencies"] = dbmodels.ReviewItems(*d.Competencies)
	}
	if err := d.SignatureData.fillUpdMap(updMap); err != nil {
		return nil, err
	}
	return updMap, nil
}

type EndYearTargetData struct {
	Target                string  `json:"target"`
	PerformanceAssessment string  `json:"performanceAssessment"`
	WeightOfTarget        float64 `json:"weightOfTarget" validate:"gte=0"`
	Score                 float64 `json:"score" validate:"gte=0,lte=5"`
	Comments              string  `json:"comments"`
}

type EndYearReviewData struct {
	Targets      *[]EndYearTargetData          `json:"targets" validate:"omitempty,dive"`
	Calculations *dbmodels.EndYearCalculations `json:"calculations"`
	SignatureData
}

func (d EndYearReviewData) Stage() models.StageName { return models.StageEndYearReview }

func (d EndYearReviewData) Validate() error {
	return validateStruct(d)
}

func (d EndYearReviewData) targets() dbmodels.EndYearTargets {
	targets := dbmodels.EndYearTargets{}
	if d.Targets == nil {
		return targets
	}
	for _, item := range *d.Targets {
		targets = append(targets, dbmodels.EndYearTarget(item))
	}
	return targets
}

func (d EndYearReviewData) ToRecord(base dbmodels.StageBase) (dbmodels.EndYearReview, error) {
	signature, err := d.SignatureData.toModel()
	if err != nil {
		return dbmodels.EndYearReview{}, err
	}
	rec := dbmodels.EndYearReview{
		StageBase:     base,
		Targets:       d.targets(),
		DualSignature: signature,
	}
	if d.Calculations != nil {
		rec.Calculations = *d.Calculations
	}
	return rec, nil
}

func (d EndYearReviewData) UpdateMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	if d.Targets != nil {
		updMap["Targets"] = d.targets()
	}
	if d.Calculations != nil {
		updMap["Calculations"] = *d.Calculations
	}
	if err := d.SignatureData.fillUpdMap(updMap); err != nil {
		return nil, err
	}
	return updMap, nil
}

type CompetencyScoreData struct {
	Name     string  `json:"name" validate:"required"`
	Score    float64 `json:"score" validate:"gte=0,lte=5"`
	Comments string  `json:"comments"`
}

type AnnualAppraisalData struct {
	CoreCompetencies           *[]CompetencyScoreData `json:"coreCompetencies" validate:"omitempty,dive"`
	NonCoreCompetencies        *[]CompetencyScoreData `json:"nonCoreCompetencies" validate:"omitempty,dive"`
	PerformanceAssessmentScore *float64               `json:"performanceAssessmentScore" validate:"omitempty,gte=0,lte=100"`
	CoreCompetenciesAverage    *float64               `json:"coreCompetenciesAverage" validate:"omitempty,gte=0"`
	NonCoreCompetenciesAverage *float64               `json:"nonCoreCompetenciesAverage" validate:"omitempty,gte=0"`
	OverallTotal               *float64               `json:"overallTotal" validate:"omitempty,gte=0"`
	OverallScorePercentage     *float64               `json:"overallScorePercentage" validate:"omitempty,gte=0,lte=100"`
	OverallRating              *string                `json:"overallRating"`
	SignatureData
}

func (d AnnualAppraisalData) Stage() models.StageName { return models.StageAnnualAppraisal }

func (d AnnualAppraisalData) Validate() error {
	return validateStruct(d)
}

func competencyScores(list *[]CompetencyScoreData) dbmodels.CompetencyScores {
	scores := dbmodels.CompetencyScores{}
	if list == nil {
		return scores
	}
	for _, item := range *list {
		scores = append(scores, dbmodels.CompetencyScore(item))
	}
	return scores
}

func (d AnnualAppraisalData) ToRecord(base dbmodels.StageBase) (dbmodels.AnnualAppraisal, error) {
	signature, err := d.SignatureData.toModel()
	if err != nil {
		return dbmodels.AnnualAppraisal{}, err
	}
	return dbmodels.AnnualAppraisal{
		StageBase:                  base,
		CoreCompetencies:           competencyScores(d.CoreCompetencies),
		NonCoreCompetencies:        competencyScores(d.NonCoreCompetencies),
		PerformanceAssessmentScore: floatValue(d.PerformanceAssessmentScore),
		CoreCompetenciesAverage:    floatValue(d.CoreCompetenciesAverage),
		NonCoreCompetenciesAverage: floatValue(d.NonCoreCompetenciesAverage),
		OverallTotal:               floatValue(d.OverallTotal),
		OverallScorePercentage:     floatValue(d.OverallScorePercentage),
		OverallRating:              strValue(d.OverallRating),
		DualSignature:              signature,
	}, nil
}

func (d AnnualAppraisalData) UpdateMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	if d.CoreCompetencies != nil {
		updMap["CoreCompetencies"] = competencyScores(d.CoreCompetencies)
	}
	if d.NonCoreCompetencies != nil {
		updMap["NonCoreCompetencies"] = competencyScores(d.NonCoreCompetencies)
	}
	setFloat(updMap, "PerformanceAssessmentScore", d.PerformanceAssessmentScore)
	setFloat(updMap, "CoreCompetenciesAverage", d.CoreCompetenciesAverage)
	setFloat(updMap, "NonCoreCompetenciesAverage", d.NonCoreCompetenciesAverage)
	setFloat(updMap, "OverallTotal", d.OverallTotal)
	setFloat(updMap, "OverallScorePercentage", d.OverallScorePercentage)
	setString(updMap, "OverallRating", d.OverallRating)
	if err := d.SignatureData.fillUpdMap(updMap); err != nil {
		return nil, err
	}
	return updMap, nil
}

type FinalSectionsData struct {
	AppraiserComments         *string `json:"appraiserComments"`
	CareerDevelopmentComments *string `json:"careerDevelopmentComments"`
	AssessmentDecision        *string `json:"assessmentDecision" validate:"omitempty,oneof=outstanding suitable likely_ready not_ready unlikely"`
	AppraiseeComments         *string `json:"appraiseeComments"`
	SignatureData
}

func (d FinalSectionsData) Stage() models.StageName { return models.StageFinalSections }

func (d FinalSectionsData) Validate() error {
	return validateStruct(d)
}

func (d FinalSectionsData) ToRecord(base dbmodels.StageBase) (dbmodels.FinalSections, error) {
	signature, err := d.SignatureData.toModel()
	if err != nil {
		return dbmodels.FinalSections{}, err
	}
	return dbmodels.FinalSections{
		StageBase:                 base,
		AppraiserComments:         strValue(d.AppraiserComments),
		CareerDevelopmentComments: strValue(d.CareerDevelopmentComments),
		AssessmentDecision:        models.AssessmentDecision(strValue(d.AssessmentDecision)),
		AppraiseeComments:         strValue(d.AppraiseeComments),
		DualSignature:             signature,
	}, nil
}

func (d FinalSectionsData) UpdateMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	setString(updMap, "AppraiserComments", d.AppraiserComments)
	setString(updMap, "CareerDevelopmentComments", d.CareerDevelopmentComments)
	setString(updMap, "AppraiseeComments", d.AppraiseeComments)
	if d.AssessmentDecision != nil {
		updMap["AssessmentDecision"] = models.AssessmentDecision(*d.AssessmentDecision)
	}
	if err := d.SignatureData.fillUpdMap(updMap); err != nil {
		return nil, err
	}
	return updMap, nil
}

func setString(updMap map[string]interface{}, field string, value *string) {
	if value != nil {
		updMap[field] = *value
	}
}

func setFloat(updMap map[string]interface{}, field string, value *float64) {
	if value != nil {
		updMap[field] = *value
	}
}
