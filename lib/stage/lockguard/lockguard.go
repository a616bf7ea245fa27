package lockguard

import (
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"
)

// Check запрет изменения раздела, закрытого подписями обеих сторон.
// Без аттестации блокировать нечего.
func Check(appraisal *dbmodels.Appraisal, stage models.StageName) error {
	if appraisal == nil {
		return nil
	}
	if appraisal.IsStageLocked(stage) {
		return models.NewValidationError("%s form is locked", stage.ToHuman())
	}
	return nil
}

// LockedStages разделы, которые закрываются после сохранения записи.
// Подписанное планирование закрывает и личные данные: оба раздела заполняются до первой двойной подписи.
func LockedStages(rec dbmodels.StageRecord) []models.StageName {
	if rec == nil || !rec.IsFullySigned() {
		return nil
	}
	if rec.Stage() == models.StagePerformancePlanning {
		return []models.StageName{models.StagePersonalInfo, models.StagePerformancePlanning}
	}
	return []models.StageName{rec.Stage()}
}

// LockUpdates поля аттестации для установки флагов блокировки
func LockUpdates(rec dbmodels.StageRecord) map[string]interface{} {
	updMap := map[string]interface{}{}
	for _, stage := range LockedStages(rec) {
		updMap[stage.LockField()] = true
	}
	return updMap
}
