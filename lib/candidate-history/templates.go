package candidatehistoryhandler

import (
	"fmt"
	dbmodels "hr-onboarding-backend/models/db"
	"reflect"
	"strings"
)

// GetCreateChanges заполненные поля кандидата, у которых задан тег comment
func GetCreateChanges(descr string, rec dbmodels.Candidate) dbmodels.EntityChanges {
	result := dbmodels.EntityChanges{
		Description: descr,
		Data:        make([]dbmodels.FieldChanges, 0),
	}
	rType := reflect.TypeOf(rec)
	vType := reflect.ValueOf(rec)
	for k := 0; k < rType.NumField(); k++ {
		field := rType.Field(k)
		comment := field.Tag.Get(dbmodels.CommentTag)
		if comment == "" {
			continue
		}
		if vType.Field(k).IsZero() {
			// пропускаем пустые поля
			continue
		}
		result.Data = append(result.Data, dbmodels.FieldChanges{
			Field:    comment,
			OldValue: "",
			NewValue: getValue(vType.Field(k).Interface()),
		})
	}
	return result
}

func GetAddedDescription(rec dbmodels.Candidate) string {
	if name := rec.GetFullName(); name != "" {
		return fmt.Sprintf("Кандидат %v добавлен", name)
	}
	return "Кандидат добавлен"
}

func getValue(value interface{}) interface{} {
	switch v := value.(type) {
	case dbmodels.StringList:
		return strings.Join(v, ", ")
	case []string:
		return strings.Join(v, ", ")
	case string:
		return v
	}
	return fmt.Sprintf("%+v", value)
}
