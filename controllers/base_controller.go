package controllers

import (
	"hr-onboarding-backend/middleware"
	"hr-onboarding-backend/models"
	apimodels "hr-onboarding-backend/models/api"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(ctx.Params("id"))
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

// GetAuthor сотрудник из токена, от имени которого выполняется действие
func (c *BaseAPIController) GetAuthor(ctx *fiber.Ctx) candidateapimodels.Author {
	return candidateapimodels.Author{
		UserID:   middleware.GetUserID(ctx),
		UserName: middleware.GetUserName(ctx),
	}
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("path", ctx.Path())
}

// SendError ответ с кодом по типу ошибки, внутренние ошибки логируются с msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).Error(msg)
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrCandidateNotFound), errors.Is(err, models.ErrFileNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrIllegalTransition),
		errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrAlreadyActivated),
		errors.Is(err, models.ErrVersionConflict),
		errors.Is(err, models.ErrRecordBusy):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrProvision), errors.Is(err, models.ErrDelivery):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
