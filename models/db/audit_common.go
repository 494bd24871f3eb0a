package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"slices"
)

// CommentTag тег с названием поля для журнала изменений
const CommentTag = "comment"

type EntityChanges struct {
	Description string         `json:"description"` // Комментарий
	Data        []FieldChanges `json:"data"`        // Список изменений
}

type FieldChanges struct {
	Field    string `json:"field"`     // Измененное поле
	OldValue any    `json:"old_value"` // Старое значение
	NewValue any    `json:"new_value"` // Новое значение
}

func (j EntityChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *EntityChanges) Scan(value any) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, j)
}

func (j EntityChanges) WithChange(field string, oldValue, newValue any) EntityChanges {
	j.Data = append(slices.Clip(j.Data), FieldChanges{Field: field, OldValue: oldValue, NewValue: newValue})
	return j
}
