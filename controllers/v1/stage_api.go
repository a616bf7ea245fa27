package apiv1

import (
	"appraisal-backend/controllers"
	stagehandler "appraisal-backend/lib/stage"
	"appraisal-backend/middleware"
	apimodels "appraisal-backend/models/api"
	appraisalapimodels "appraisal-backend/models/api/appraisal"

	"github.com/gofiber/fiber/v2"
)

type stageApiController struct {
	controllers.BaseAPIController
}

func InitStageApiRouters(app *fiber.App) {
	controller := stageApiController{}
	app.Route("stage/:stage", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("my", controller.my)
		router.Get("user/:user_id", middleware.ManagerRoleRequired(), controller.listByUser)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
		})
	})
}

// @Summary Создание записи раздела
// @Tags Разделы формы
// @Description Раздел: personal_info, performance_planning, mid_year_review, end_year_review, annual_appraisal, final_sections.
// @Description Руководитель может заполнить раздел за сотрудника, указав user_id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		path    string  				    	true         "stage name"
// @Param   user_id          	query    string  				    	false         "employee ID"
// @Param	body body	 object	true	"данные раздела"
// @Success 200 {object} apimodels.Response{data=object}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/stage/{stage} [post]
func (c *stageApiController) create(ctx *fiber.Ctx) error {
	stage, err := c.GetStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload, err := appraisalapimodels.NewStagePayload(stage)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.BodyParser(ctx, payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if employeeID := ctx.Query("user_id"); employeeID != "" && employeeID != userID {
		if !middleware.GetUserRole(ctx).IsManagerRole() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция доступна только руководителю"))
		}
		userID = employeeID
	}
	resp, err := stagehandler.Instance.Create(ctx.UserContext(), userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("stage", stage), err, "Ошибка сохранения раздела")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление записи раздела
// @Tags Разделы формы
// @Description Изменяются только переданные поля. Раздел, подписанный обеими сторонами, изменить нельзя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		path    string  				    	true         "stage name"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 object	true	"данные раздела"
// @Success 200 {object} apimodels.Response{data=object}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/stage/{stage}/{id} [put]
func (c *stageApiController) update(ctx *fiber.Ctx) error {
	stage, err := c.GetStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload, err := appraisalapimodels.NewStagePayload(stage)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.BodyParser(ctx, payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	logger := c.GetLogger(ctx).WithField("stage", stage)
	existed, err := stagehandler.Instance.GetByID(stage, id)
	if err != nil {
		return c.SendError(ctx, logger, err, "Ошибка получения раздела")
	}
	if existed.GetUserID() != middleware.GetUserID(ctx) && !middleware.GetUserRole(ctx).IsManagerRole() {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
	}
	resp, err := stagehandler.Instance.Update(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, logger, err, "Ошибка обновления раздела")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение записи раздела
// @Tags Разделы формы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		path    string  				    	true         "stage name"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=object}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/stage/{stage}/{id} [get]
func (c *stageApiController) get(ctx *fiber.Ctx) error {
	stage, err := c.GetStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := stagehandler.Instance.GetByID(stage, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения раздела")
	}
	if resp.GetUserID() != middleware.GetUserID(ctx) && !middleware.GetUserRole(ctx).IsManagerRole() {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мои записи раздела
// @Tags Разделы формы
// @Description Записи текущего пользователя, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		path    string  				    	true         "stage name"
// @Success 200 {object} apimodels.ListResponse{data=[]object}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/stage/{stage}/my [get]
func (c *stageApiController) my(ctx *fiber.Ctx) error {
	stage, err := c.GetStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := stagehandler.Instance.ListByUser(stage, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записей раздела")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(resp))
}

// @Summary Записи раздела сотрудника
// @Tags Разделы формы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		path    string  				    	true         "stage name"
// @Param   user_id          	path    string  				    	true         "employee ID"
// @Success 200 {object} apimodels.ListResponse{data=[]object}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/stage/{stage}/user/{user_id} [get]
func (c *stageApiController) listByUser(ctx *fiber.Ctx) error {
	stage, err := c.GetStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID, err := c.GetParam(ctx, "user_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := stagehandler.Instance.ListByUser(stage, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записей раздела")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(resp))
}
