package dict

import (
	"hr-onboarding-backend/controllers"
	apimodels "hr-onboarding-backend/models/api"
	dictapimodels "hr-onboarding-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type onboardingDictApiController struct {
	controllers.BaseAPIController
}

func InitOnboardingDictApiRouters(app *fiber.App) {
	controller := onboardingDictApiController{}
	app.Get("stage/list", controller.stageList)
	app.Get("platform/list", controller.platformList)
	app.Get("recommendation/list", controller.recommendationList)
	app.Get("role/list", controller.roleList)
}

// @Summary Список этапов кандидата
// @Tags Справочник
// @Description Список этапов кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 403
// @router /api/v1/dict/stage/list [get]
func (c *onboardingDictApiController) stageList(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetStages()))
}

// @Summary Список платформ для собеседования
// @Tags Справочник
// @Description Список платформ для собеседования
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 403
// @router /api/v1/dict/platform/list [get]
func (c *onboardingDictApiController) platformList(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetPlatforms()))
}

// @Summary Список рекомендаций интервьюера
// @Tags Справочник
// @Description Список рекомендаций интервьюера
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 403
// @router /api/v1/dict/recommendation/list [get]
func (c *onboardingDictApiController) recommendationList(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetRecommendations()))
}

// @Summary Список ролей
// @Tags Справочник
// @Description Список ролей
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 403
// @router /api/v1/dict/role/list [get]
func (c *onboardingDictApiController) roleList(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetRoles()))
}
