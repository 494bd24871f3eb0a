package models

type CandidateStage string

const (
	StagePending  CandidateStage = "pending"
	StageReview   CandidateStage = "review"
	StageAccepted CandidateStage = "accepted"
	StageRejected CandidateStage = "rejected"
)

var stageHumanName = map[CandidateStage]string{
	StagePending:  "Ожидает собеседования",
	StageReview:   "На рассмотрении",
	StageAccepted: "Принят",
	StageRejected: "Отклонен",
}

// допустимые переходы между этапами, accepted и rejected конечные
var stageEdges = map[CandidateStage][]CandidateStage{
	StagePending: {StageReview},
	StageReview:  {StageAccepted, StageRejected},
}

func (s CandidateStage) ToHuman() string {
	if human, exist := stageHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s CandidateStage) IsValid() bool {
	_, ok := stageHumanName[s]
	return ok
}

func (s CandidateStage) CanMoveTo(target CandidateStage) bool {
	for _, next := range stageEdges[s] {
		if next == target {
			return true
		}
	}
	return false
}

type InterviewPlatform string

const (
	PlatformZoom       InterviewPlatform = "zoom"
	PlatformGoogleMeet InterviewPlatform = "google-meet"
	PlatformTeams      InterviewPlatform = "teams"
	PlatformOther      InterviewPlatform = "other"
)

var platformHumanName = map[InterviewPlatform]string{
	PlatformZoom:       "Zoom",
	PlatformGoogleMeet: "Google Meet",
	PlatformTeams:      "Microsoft Teams",
	PlatformOther:      "Другое",
}

func (p InterviewPlatform) ToHuman() string {
	if human, exist := platformHumanName[p]; exist {
		return human
	}
	return string(p)
}

func (p InterviewPlatform) IsValid() bool {
	_, ok := platformHumanName[p]
	return ok
}

type Recommendation string

const (
	RecommendationAccept Recommendation = "accept"
	RecommendationReject Recommendation = "reject"
	RecommendationReview Recommendation = "review"
)

var recommendationStage = map[Recommendation]CandidateStage{
	RecommendationAccept: StageAccepted,
	RecommendationReject: StageRejected,
	RecommendationReview: StageReview,
}

var recommendationHumanName = map[Recommendation]string{
	RecommendationAccept: "Принять",
	RecommendationReject: "Отклонить",
	RecommendationReview: "Требуется дополнительное рассмотрение",
}

func (r Recommendation) IsValid() bool {
	_, ok := recommendationStage[r]
	return ok
}

// ToStage этап, на который переводит кандидата рекомендация интервьюера
func (r Recommendation) ToStage() (CandidateStage, bool) {
	stage, ok := recommendationStage[r]
	return stage, ok
}

func (r Recommendation) ToHuman() string {
	if human, exist := recommendationHumanName[r]; exist {
		return human
	}
	return string(r)
}

type CandidateSource string

const (
	CandidateSourceManual  CandidateSource = "manual"
	CandidateSourceResume  CandidateSource = "resume"
	CandidateSourceProfile CandidateSource = "profile_link"
)

type SkillPriority string

const (
	SkillPriorityHigh   SkillPriority = "high"
	SkillPriorityMedium SkillPriority = "medium"
	SkillPriorityLow    SkillPriority = "low"
)

var skillPriorityHumanName = map[SkillPriority]string{
	SkillPriorityHigh:   "Высокий",
	SkillPriorityMedium: "Средний",
	SkillPriorityLow:    "Низкий",
}

func (p SkillPriority) ToHuman() string {
	if human, exist := skillPriorityHumanName[p]; exist {
		return human
	}
	return string(p)
}

const SystemUser = "Система"
