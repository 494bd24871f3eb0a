package helpers

import (
	"regexp"
	"strings"
)

var phoneNoise = regexp.MustCompile(`[\s\-\(\)\.]`)
var ruPhone = regexp.MustCompile(`^\+7\d{10}$`)

// NormalizePhone приводит российский номер к виду +7XXXXXXXXXX.
// Возвращает false, если номер не подходит под формат.
func NormalizePhone(phone string) (string, bool) {
	value := phoneNoise.ReplaceAllString(strings.TrimSpace(phone), "")
	switch {
	case len(value) == 11 && strings.HasPrefix(value, "8"):
		value = "+7" + value[1:]
	case len(value) == 11 && strings.HasPrefix(value, "7"):
		value = "+" + value
	}
	if !ruPhone.MatchString(value) {
		return "", false
	}
	return value, true
}

// NormalizeSkills убирает пустые значения и дубликаты без учета регистра,
// сохраняя первое написание и порядок
func NormalizeSkills(skills []string) []string {
	result := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		value := strings.Join(strings.Fields(skill), " ")
		if value == "" {
			continue
		}
		key := strings.ToLower(value)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, value)
	}
	return result
}

// SplitFullName "Имя Фамилия" -> имя, фамилия
func SplitFullName(name string) (firstName, lastName string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
