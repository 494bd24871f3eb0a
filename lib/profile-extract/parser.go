package profileextract

import (
	"encoding/json"
	profileapimodels "hr-onboarding-backend/models/api/profile"
	"strings"
)

const extractPromt = `Ты извлекаешь данные кандидата из текста резюме или профиля.
Верни только JSON объект без пояснений со следующими полями:
name (строка, полное имя), email (строка), phone (строка), title (строка, должность),
experience_years (число, общий опыт работы в годах), skills (массив строк), sectors (массив строк, отрасли).
Если значение не найдено, не включай поле в ответ.`

// parseExtraction разбирает ответ модели. Пустой или некорректный ответ дает пустой профиль.
func parseExtraction(answer string) (profileapimodels.ExtractedProfile, bool) {
	result := profileapimodels.ExtractedProfile{}
	text := strings.TrimSpace(answer)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return result, false
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return profileapimodels.ExtractedProfile{}, false
	}
	result.Name = cleanString(result.Name)
	result.Email = cleanString(result.Email)
	result.Phone = cleanString(result.Phone)
	result.Title = cleanString(result.Title)
	if result.ExperienceYears != nil && *result.ExperienceYears < 0 {
		result.ExperienceYears = nil
	}
	return result, true
}

func cleanString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
