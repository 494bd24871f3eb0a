package apiv1

import (
	"hr-onboarding-backend/controllers"
	activationhandler "hr-onboarding-backend/lib/activation"
	interviewhandler "hr-onboarding-backend/lib/interview"
	apimodels "hr-onboarding-backend/models/api"
	activationapimodels "hr-onboarding-backend/models/api/activation"
	interviewapimodels "hr-onboarding-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
)

type onboardingApiController struct {
	controllers.BaseAPIController
}

func InitOnboardingApiRouters(app *fiber.App) {
	controller := onboardingApiController{}
	app.Route("candidate/:id", func(router fiber.Router) {
		router.Put("interview", controller.scheduleInterview)
		router.Put("feedback", controller.feedback)
		router.Put("activate", controller.activate)
	})
}

// @Summary Назначить собеседование
// @Tags Собеседование
// @Description Назначение собеседования кандидату на этапе pending, кандидат переходит на этап review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Param	body body	 interviewapimodels.ScheduleRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/interview [put]
func (c *onboardingApiController) scheduleInterview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload interviewapimodels.ScheduleRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interviewhandler.Instance.Schedule(ctx.UserContext(), id, payload, c.GetAuthor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения собеседования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Отзыв по собеседованию
// @Tags Собеседование
// @Description Отзыв интервьюера, кандидат переходит на этап по рекомендации (accept, reject, review)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Param	body body	 interviewapimodels.FeedbackRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/feedback [put]
func (c *onboardingApiController) feedback(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload interviewapimodels.FeedbackRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interviewhandler.Instance.Feedback(ctx.UserContext(), id, payload, c.GetAuthor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения отзыва по собеседованию")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Активация сотрудника
// @Tags Активация
// @Description Создание учетной записи принятому кандидату, при ошибке отправки письма возвращается status=warning
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Param	body body	 activationapimodels.ActivateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=activationapimodels.ActivationResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/activate [put]
func (c *onboardingApiController) activate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload activationapimodels.ActivateRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := activationhandler.Instance.Activate(ctx.UserContext(), id, payload, c.GetAuthor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка активации сотрудника")
	}
	if result.Degraded {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewWarningResponse(result, result.NotificationError().Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
