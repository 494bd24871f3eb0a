package apiv1

import (
	"fmt"
	"hr-onboarding-backend/controllers"
	xlsexport "hr-onboarding-backend/lib/export/xls"
	skillsgap "hr-onboarding-backend/lib/skills-gap"
	apimodels "hr-onboarding-backend/models/api"
	skillsgapapimodels "hr-onboarding-backend/models/api/skills-gap"
	"time"

	"github.com/gofiber/fiber/v2"
)

type skillsGapApiController struct {
	controllers.BaseAPIController
}

func InitSkillsGapApiRouters(app *fiber.App) {
	controller := skillsGapApiController{}
	app.Route("skills_gap", func(router fiber.Router) {
		router.Get("", controller.report)
		router.Get("export", controller.export)
	})
}

// @Summary Нехватка навыков
// @Tags Аналитика
// @Description Топ-10 навыков сотрудников с расчетом нехватки, has_data=false при отсутствии данных
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   include_candidates	query	bool	false	"учитывать кандидатов на всех этапах"
// @Success 200 {object} apimodels.Response{data=skillsgapapimodels.Report}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/skills_gap [get]
func (c *skillsGapApiController) report(ctx *fiber.Ctx) error {
	var filter skillsgapapimodels.SkillGapFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры запроса"))
	}
	report, err := skillsgap.Instance.Report(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчета нехватки навыков")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(report))
}

// @Summary Выгрузка нехватки навыков в Excel
// @Tags Аналитика
// @Description Выгрузка нехватки навыков в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   include_candidates	query	bool	false	"учитывать кандидатов на всех этапах"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/skills_gap/export [get]
func (c *skillsGapApiController) export(ctx *fiber.Ctx) error {
	var filter skillsgapapimodels.SkillGapFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры запроса"))
	}
	report, err := skillsgap.Instance.Report(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчета нехватки навыков")
	}
	data, err := xlsexport.Instance.ExportSkillGaps(report)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки нехватки навыков в Excel")
	}
	fileName := fmt.Sprintf("skills-gap-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
