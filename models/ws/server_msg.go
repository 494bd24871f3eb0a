package wsmodels

import "hr-onboarding-backend/models"

type EventCode string

const (
	EventStageChanged       EventCode = "candidate_stage_changed"
	EventInterviewScheduled EventCode = "candidate_interview_scheduled"
	EventFeedbackReceived   EventCode = "candidate_feedback_received"
	EventActivated          EventCode = "candidate_activated"
	EventCreated            EventCode = "candidate_created"
)

type ServerMessage struct {
	ToUserID    string                `json:"-"`
	Time        string                `json:"time"`                   // время события
	Code        EventCode             `json:"code"`                   // код события
	CandidateID string                `json:"candidate_id,omitempty"` // кандидат
	Stage       models.CandidateStage `json:"stage,omitempty"`        // этап кандидата после события
	Msg         string                `json:"msg"`                    // текст события
}
