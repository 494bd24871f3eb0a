package apiv1

import (
	"fmt"
	"hr-onboarding-backend/controllers"
	candidatehandler "hr-onboarding-backend/lib/candidate"
	candidatehistoryhandler "hr-onboarding-backend/lib/candidate-history"
	pdfexport "hr-onboarding-backend/lib/export/pdf"
	filestorage "hr-onboarding-backend/lib/file-storage"
	profileextract "hr-onboarding-backend/lib/profile-extract"
	"hr-onboarding-backend/models"
	apimodels "hr-onboarding-backend/models/api"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	profileapimodels "hr-onboarding-backend/models/api/profile"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Route("candidate", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("extract", controller.extract) // разбор резюме или ссылки на профиль
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("change_stage", controller.changeStage)
			idRouter.Put("changes", controller.changes)
			idRouter.Post("upload-resume", controller.uploadResume) // загрузить резюме кандидата
			idRouter.Get("resume", controller.getResume)            // скачать резюме кандидата
			idRouter.Get("card", controller.getCard)                // карточка кандидата в pdf
		})
	})
}

// @Summary Список кандидатов
// @Tags Кандидат
// @Description Список кандидатов с фильтром по этапам и поиском
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/list [post]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Создание
// @Tags Кандидат
// @Description Создание кандидата вручную, кандидат попадает на этап pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate [post]
func (c *candidateApiController) create(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := candidatehandler.Instance.Create(ctx.UserContext(), payload, models.CandidateSourceManual, c.GetAuthor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Разбор резюме
// @Tags Кандидат
// @Description Разбор файла резюме или ссылки на профиль, при create=true создается кандидат
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   resume		formData	file 	false 	"файл резюме"
// @Param   url			formData	string 	false 	"ссылка на профиль"
// @Param   create		formData	bool 	false 	"создать кандидата"
// @Success 200 {object} apimodels.Response{data=profileapimodels.ExtractResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/extract [post]
func (c *candidateApiController) extract(ctx *fiber.Ctx) error {
	var payload profileapimodels.ExtractRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	source := profileapimodels.Source{URL: payload.URL}
	if file, err := ctx.FormFile("resume"); err == nil {
		body, err := readFile(file)
		if err != nil {
			log.WithError(err).Error("Ошибка при получении файла резюме")
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл резюме"))
		}
		source.FileName = file.Filename
		source.Body = body
	}
	if err := source.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	profile, err := profileextract.Instance.Extract(ctx.UserContext(), source)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка разбора резюме")
	}
	result := profileapimodels.ExtractResponse{Profile: profile}
	if payload.Create {
		view, err := candidatehandler.Instance.CreateFromProfile(ctx.UserContext(), profile, source.GetCandidateSource(), c.GetAuthor(ctx))
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания кандидата по резюме")
		}
		result.CandidateID = view.ID
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Получить по ИД
// @Tags Кандидат
// @Description Получить по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id} [get]
func (c *candidateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := candidatehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Перевести на этап
// @Tags Кандидат
// @Description Перевод кандидата на этап, допустимы только переходы pending->review, review->accepted, review->rejected
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Param	body body	 candidateapimodels.ChangeStageRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/change_stage [put]
func (c *candidateApiController) changeStage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.ChangeStageRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := candidatehandler.Instance.ChangeStage(ctx.UserContext(), id, payload, c.GetAuthor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка перевода кандидата на этап")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Лог действий
// @Tags Кандидат
// @Description Журнал действий по кандидату в порядке выполнения
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Param	body body	 candidateapimodels.CandidateHistoryFilter	true	"request filter"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/changes [put]
func (c *candidateApiController) changes(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.CandidateHistoryFilter
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehistoryhandler.Instance.List(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Загрузить резюме кандидата
// @Tags Кандидат
// @Description Загрузить резюме кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Param   resume		formData	file 	true 	"file to upload"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/upload-resume [post]
func (c *candidateApiController) uploadResume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile("resume")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не передан файл резюме"))
	}
	body, err := readFile(file)
	if err != nil {
		log.WithError(err).Error("Ошибка при загрузке файла резюме")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл резюме"))
	}
	key, err := filestorage.Instance.UploadResume(ctx.UserContext(), id, body, file.Filename, c.GetAuthor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки резюме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(key))
}

// @Summary Скачать резюме кандидата
// @Tags Кандидат
// @Description Скачать резюме кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/resume [get]
func (c *candidateApiController) getResume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, fileName, err := filestorage.Instance.GetResume(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения резюме")
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(body)
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	buffer, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer buffer.Close()
	return io.ReadAll(buffer)
}

// @Summary Карточка кандидата
// @Tags Кандидат
// @Description Карточка кандидата в pdf: данные, собеседование, отзыв, учетная запись
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "Идентификатор кандидата"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/card [get]
func (c *candidateApiController) getCard(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := candidatehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения кандидата")
	}
	data, err := pdfexport.Instance.CandidateCard(view)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования карточки кандидата")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="candidate-%v.pdf"`, view.ID))
	return ctx.Send(data)
}
