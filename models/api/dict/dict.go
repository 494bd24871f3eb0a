package dictapimodels

import "hr-onboarding-backend/models"

type DictView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func GetStages() []DictView {
	stages := []models.CandidateStage{models.StagePending, models.StageReview, models.StageAccepted, models.StageRejected}
	result := make([]DictView, 0, len(stages))
	for _, stage := range stages {
		result = append(result, DictView{Code: string(stage), Name: stage.ToHuman()})
	}
	return result
}

func GetPlatforms() []DictView {
	platforms := []models.InterviewPlatform{models.PlatformZoom, models.PlatformGoogleMeet, models.PlatformTeams, models.PlatformOther}
	result := make([]DictView, 0, len(platforms))
	for _, platform := range platforms {
		result = append(result, DictView{Code: string(platform), Name: platform.ToHuman()})
	}
	return result
}

func GetRecommendations() []DictView {
	recommendations := []models.Recommendation{models.RecommendationAccept, models.RecommendationReject, models.RecommendationReview}
	result := make([]DictView, 0, len(recommendations))
	for _, rec := range recommendations {
		result = append(result, DictView{Code: string(rec), Name: rec.ToHuman()})
	}
	return result
}

func GetRoles() []DictView {
	roles := []models.UserRole{models.HRAdminRole, models.HRManagerRole, models.EmployeeRole}
	result := make([]DictView, 0, len(roles))
	for _, role := range roles {
		result = append(result, DictView{Code: string(role), Name: role.ToHuman()})
	}
	return result
}
