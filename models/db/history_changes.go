package dbmodels

import (
	"database/sql/driver"
)

// HistoryChanges изменения, сопровождающие переход аттестации
type HistoryChanges struct {
	Description string        `json:"description"`
	Data        []FieldChange `json:"data,omitempty"`
}

// FieldChange для удаления записей разделов: Field - раздел, OldValue - число удаленных записей
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

func NewHistoryChanges(description string, data []FieldChange) HistoryChanges {
	return HistoryChanges{
		Description: description,
		Data:        data,
	}
}

func (j HistoryChanges) Value() (driver.Value, error) { return jsonbValue(j) }
func (j *HistoryChanges) Scan(value any) error       { return jsonbScan(value, j) }
