package models

type UserRole string

const (
	HRAdminRole   UserRole = "HR_ADMIN_ROLE"
	HRManagerRole UserRole = "HR_MANAGER_ROLE"
	EmployeeRole  UserRole = "EMPLOYEE_ROLE"
)

var roleHumanName = map[UserRole]string{
	HRAdminRole:   "Администратор HR",
	HRManagerRole: "HR-менеджер",
	EmployeeRole:  "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// CanOnboard роль может вести кандидатов по воронке
func (r UserRole) CanOnboard() bool {
	return r == HRAdminRole || r == HRManagerRole
}
