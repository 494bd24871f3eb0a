package candidatehandler

import (
	"hr-onboarding-backend/lib/utils/helpers"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	profileapimodels "hr-onboarding-backend/models/api/profile"
	dbmodels "hr-onboarding-backend/models/db"
	"math"
	"strings"
)

// ProfileToCandidate переносит результат разбора резюме в данные кандидата.
// Некорректный телефон отбрасывается, опыт округляется вниз до целых лет.
func ProfileToCandidate(profile profileapimodels.ExtractedProfile) candidateapimodels.CandidateData {
	result := candidateapimodels.CandidateData{
		Skills:  profile.Skills,
		Sectors: profile.Sectors,
	}
	if profile.Name != nil {
		result.FirstName, result.LastName = helpers.SplitFullName(*profile.Name)
	}
	if profile.Email != nil {
		result.Email = *profile.Email
	}
	if profile.Phone != nil {
		if phone, ok := helpers.NormalizePhone(*profile.Phone); ok {
			result.Phone = phone
		}
	}
	if profile.Title != nil {
		result.Title = *profile.Title
	}
	if profile.ExperienceYears != nil && *profile.ExperienceYears > 0 {
		result.ExperienceYears = int(math.Floor(*profile.ExperienceYears))
	}
	return result
}

// toDB единые правила нормализации входящих данных кандидата
func toDB(data candidateapimodels.CandidateData) dbmodels.Candidate {
	rec := dbmodels.Candidate{
		FirstName:       strings.TrimSpace(data.FirstName),
		LastName:        strings.TrimSpace(data.LastName),
		Email:           strings.ToLower(strings.TrimSpace(data.Email)),
		Title:           strings.TrimSpace(data.Title),
		ExperienceYears: data.ExperienceYears,
		Skills:          helpers.NormalizeSkills(data.Skills),
		Sectors:         helpers.NormalizeSkills(data.Sectors),
	}
	if phone, ok := helpers.NormalizePhone(data.Phone); ok {
		rec.Phone = phone
	}
	return rec
}
