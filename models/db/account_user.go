package dbmodels

import "time"

// AccountUser учетная запись, созданная при активации принятого кандидата
type AccountUser struct {
	BaseModel
	CandidateID        string `gorm:"type:varchar(36);uniqueIndex"`
	Email              string `gorm:"type:varchar(255);uniqueIndex"`
	Password           string `gorm:"type:varchar(128)"`
	Role               string `gorm:"type:varchar(100)"`
	DepartmentID       *string
	IsActive           bool
	MustChangePassword bool
	LastLogin          time.Time
}
