package activationapimodels

import (
	"hr-onboarding-backend/models"
	"strings"
)

type ActivateRequest struct {
	TempPassword   string  `json:"temp_password"`     // Временный пароль (если не задан - generate_password)
	GenerateSecret bool    `json:"generate_password"` // Сгенерировать временный пароль
	Role           string  `json:"role"`              // Роль пользователя
	DepartmentID   *string `json:"department_id"`     // Подразделение (необязательно)
	SendWelcome    bool    `json:"send_welcome"`      // Отправить приветственное письмо
}

func (r ActivateRequest) Validate() error {
	if strings.TrimSpace(r.Role) == "" {
		return models.NewValidationError("role", "не указана роль пользователя")
	}
	if r.TempPassword == "" && !r.GenerateSecret {
		return models.NewValidationError("temp_password", "не указан временный пароль")
	}
	return nil
}

type ActivationResult struct {
	CandidateID      string   `json:"candidate_id"`
	AccountID        string   `json:"account_id"`
	TempPassword     string   `json:"temp_password,omitempty"` // возвращается только если пароль сгенерирован
	WelcomeSent      bool     `json:"welcome_sent"`
	Degraded         bool     `json:"degraded"` // активация выполнена, но уведомление не доставлено
	Warnings         []string `json:"warnings,omitempty"`
	notificationFail error
}

func (r *ActivationResult) SetNotificationError(err error) {
	r.notificationFail = err
	r.Degraded = true
	r.Warnings = append(r.Warnings, "приветственное письмо не отправлено: "+err.Error())
}

func (r ActivationResult) NotificationError() error {
	return r.notificationFail
}

// WelcomePayload данные приветственного письма
type WelcomePayload struct {
	FullName     string
	Email        string
	TempPassword string
	Role         string
	LoginURL     string
	CompanyName  string
}
