package models

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrCandidateNotFound = errors.New("кандидат не найден")
	ErrIllegalTransition = errors.New("недопустимый переход между этапами")
	ErrInvalidState      = errors.New("активация доступна только для принятого кандидата")
	ErrAlreadyActivated  = errors.New("учетная запись кандидата уже активирована")
	ErrValidation        = errors.New("ошибка проверки данных")
	ErrProvision         = errors.New("ошибка создания учетной записи")
	ErrDelivery          = errors.New("ошибка отправки уведомления")
	ErrVersionConflict   = errors.New("запись была изменена другим пользователем")
	ErrRecordBusy        = errors.New("запись занята другим действием, повторите попытку")
	ErrFileNotFound      = errors.New("файл не найден")
)

// ValidationError незаполненное или некорректное поле формы
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IllegalTransitionError переход from -> to не предусмотрен
func IllegalTransitionError(from, to CandidateStage) error {
	return errors.Wrapf(ErrIllegalTransition, "%s -> %s", from.ToHuman(), to.ToHuman())
}
