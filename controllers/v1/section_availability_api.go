package apiv1

import (
	"appraisal-backend/controllers"
	sectionavailabilityhandler "appraisal-backend/lib/section-availability"
	"appraisal-backend/middleware"
	apimodels "appraisal-backend/models/api"
	appraisalapimodels "appraisal-backend/models/api/appraisal"

	"github.com/gofiber/fiber/v2"
)

type sectionAvailabilityApiController struct {
	controllers.BaseAPIController
}

func InitSectionAvailabilityApiRouters(app *fiber.App) {
	controller := sectionAvailabilityApiController{}
	app.Route("section_availability", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":stage", controller.get)
		router.Put(":stage", middleware.AdminRoleRequired(), controller.update)
	})
}

// @Summary Доступность разделов
// @Tags Доступность разделов
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]appraisalapimodels.SectionAvailabilityView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/section_availability [get]
func (c *sectionAvailabilityApiController) list(ctx *fiber.Ctx) error {
	resp, err := sectionavailabilityhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доступности разделов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(resp))
}

// @Summary Доступность раздела
// @Tags Доступность разделов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		path    string  				    	true         "stage name"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.SectionAvailabilityView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/section_availability/{stage} [get]
func (c *sectionAvailabilityApiController) get(ctx *fiber.Ctx) error {
	stage, err := c.GetStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := sectionavailabilityhandler.Instance.Get(stage)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доступности раздела")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение доступности раздела
// @Tags Доступность разделов
// @Description Открыть или закрыть раздел, либо задать дату открытия
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		path    string  				    	true         "stage name"
// @Param	body body	 appraisalapimodels.SectionAvailabilityData	true	"request body"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.SectionAvailabilityView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/section_availability/{stage} [put]
func (c *sectionAvailabilityApiController) update(ctx *fiber.Ctx) error {
	stage, err := c.GetStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload appraisalapimodels.SectionAvailabilityData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := sectionavailabilityhandler.Instance.Update(stage, payload, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения доступности раздела")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
