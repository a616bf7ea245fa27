package apiv1

import (
	"fmt"

	"appraisal-backend/controllers"
	appraisalhandler "appraisal-backend/lib/appraisal"
	"appraisal-backend/middleware"
	apimodels "appraisal-backend/models/api"
	appraisalapimodels "appraisal-backend/models/api/appraisal"

	"github.com/gofiber/fiber/v2"
)

type appraisalApiController struct {
	controllers.BaseAPIController
}

func InitAppraisalApiRouters(app *fiber.App) {
	controller := appraisalApiController{}
	app.Route("appraisal", func(router fiber.Router) {
		router.Post("allocate", middleware.ManagerRoleRequired(), controller.allocate)
		router.Get("current", controller.current)
		router.Get("lock_status", controller.lockStatus)
		router.Get("my", controller.my)
		router.Get("team", middleware.ManagerRoleRequired(), controller.team)
		router.Get("team/members", middleware.ManagerRoleRequired(), controller.teamMembers)
		router.Post("submit", controller.submit)
		router.Put("current_step", controller.currentStep)
		router.Put("manager_step", middleware.ManagerRoleRequired(), controller.managerStep)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("history", controller.history)
			idRoute.Get("export", controller.export)
			idRoute.Get("export/pdf", controller.exportPDF)
			idRoute.Put("approve", middleware.ManagerRoleRequired(), controller.approve)   // согласовать
			idRoute.Put("reject", middleware.ManagerRoleRequired(), controller.reject)     // отклонить
			idRoute.Put("complete", middleware.ManagerRoleRequired(), controller.complete) // завершить
		})
	})
}

// @Summary Создание аттестации
// @Tags Аттестация
// @Description Создание аттестации сотрудника за период или получение существующей
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 appraisalapimodels.AllocateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/allocate [post]
func (c *appraisalApiController) allocate(ctx *fiber.Ctx) error {
	var payload appraisalapimodels.AllocateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	start, end, err := payload.Period()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	managerID := middleware.GetUserID(ctx)
	id, err := appraisalhandler.Instance.Allocate(payload.EmployeeID, &managerID, start, end)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания аттестации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Текущая аттестация
// @Tags Аттестация
// @Description Активная аттестация текущего пользователя, null если ее нет
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AppraisalView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/current [get]
func (c *appraisalApiController) current(ctx *fiber.Ctx) error {
	resp, err := appraisalhandler.Instance.GetCurrent(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения текущей аттестации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Блокировки разделов
// @Tags Аттестация
// @Description Какие разделы формы закрыты подписями. Руководитель может указать сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   user_id          	query    string  				    	false         "employee ID"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.LockStatusView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/lock_status [get]
func (c *appraisalApiController) lockStatus(ctx *fiber.Ctx) error {
	employeeID := middleware.GetUserID(ctx)
	if userID := ctx.Query("user_id"); userID != "" && userID != employeeID {
		if !middleware.GetUserRole(ctx).IsManagerRole() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция доступна только руководителю"))
		}
		employeeID = userID
	}
	resp, err := appraisalhandler.Instance.GetLockStatus(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения блокировок разделов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мои аттестации
// @Tags Аттестация
// @Description Все аттестации текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]appraisalapimodels.AppraisalView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/my [get]
func (c *appraisalApiController) my(ctx *fiber.Ctx) error {
	resp, err := appraisalhandler.Instance.ListByEmployee(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка аттестаций")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(resp))
}

// @Summary Аттестации команды
// @Tags Аттестация
// @Description Аттестации, где текущий пользователь оценивающий
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]appraisalapimodels.AppraisalView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/team [get]
func (c *appraisalApiController) team(ctx *fiber.Ctx) error {
	resp, err := appraisalhandler.Instance.ListTeam(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка аттестаций команды")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(resp))
}

// @Summary Подчиненные
// @Tags Аттестация
// @Description Активные подчиненные текущего руководителя и их текущие аттестации
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]appraisalapimodels.TeamMemberView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/team/members [get]
func (c *appraisalApiController) teamMembers(ctx *fiber.Ctx) error {
	resp, err := appraisalhandler.Instance.TeamMembers(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка подчиненных")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(resp))
}

// @Summary Отправка на согласование
// @Tags Аттестация
// @Description Сводка последних записей разделов в аттестацию и перевод в статус submitted
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/submit [post]
func (c *appraisalApiController) submit(ctx *fiber.Ctx) error {
	resp, err := appraisalhandler.Instance.Submit(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки аттестации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Шаг формы сотрудника
// @Tags Аттестация
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 appraisalapimodels.StepRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/current_step [put]
func (c *appraisalApiController) currentStep(ctx *fiber.Ctx) error {
	var payload appraisalapimodels.StepRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := appraisalhandler.Instance.UpdateCurrentStep(middleware.GetUserID(ctx), payload.Step)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения шага формы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Шаг формы руководителя
// @Tags Аттестация
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 appraisalapimodels.StepRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/manager_step [put]
func (c *appraisalApiController) managerStep(ctx *fiber.Ctx) error {
	var payload appraisalapimodels.StepRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.AppraisalID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указана аттестация"))
	}
	err := appraisalhandler.Instance.UpdateManagerCurrentStep(payload.AppraisalID, middleware.GetUserID(ctx), payload.Step)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения шага формы руководителя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Аттестация
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/{id} [get]
func (c *appraisalApiController) get(ctx *fiber.Ctx) error {
	resp, err := c.getAllowed(ctx)
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary История
// @Tags Аттестация
// @Description Журнал переходов аттестации
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.ListResponse{data=[]appraisalapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/{id}/history [get]
func (c *appraisalApiController) history(ctx *fiber.Ctx) error {
	rec, err := c.getAllowed(ctx)
	if err != nil || rec == nil {
		return err
	}
	resp, err := appraisalhandler.Instance.History(rec.ID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории аттестации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(resp))
}

// @Summary Выгрузка в xlsx
// @Tags Аттестация
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/{id}/export [get]
func (c *appraisalApiController) export(ctx *fiber.Ctx) error {
	rec, err := c.getAllowed(ctx)
	if err != nil || rec == nil {
		return err
	}
	buf, err := appraisalhandler.Instance.Export(rec.ID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки аттестации")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=appraisal_%s.xlsx", rec.PeriodStart))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Выгрузка в pdf
// @Tags Аттестация
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/{id}/export/pdf [get]
func (c *appraisalApiController) exportPDF(ctx *fiber.Ctx) error {
	rec, err := c.getAllowed(ctx)
	if err != nil || rec == nil {
		return err
	}
	pdfFile, err := appraisalhandler.Instance.ExportPDF(rec.ID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки аттестации")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=appraisal_%s.pdf", rec.PeriodStart))
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}

// @Summary Согласовать
// @Tags Аттестация
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 appraisalapimodels.ReviewRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/{id}/approve [put]
func (c *appraisalApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload appraisalapimodels.ReviewRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = appraisalhandler.Instance.Approve(id, middleware.GetUserID(ctx), payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования аттестации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить
// @Tags Аттестация
// @Description Отклонение с обязательным комментарием, статус аттестации не меняется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 appraisalapimodels.RejectRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/{id}/reject [put]
func (c *appraisalApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload appraisalapimodels.RejectRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = appraisalhandler.Instance.Reject(id, middleware.GetUserID(ctx), payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения аттестации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Завершить
// @Tags Аттестация
// @Description Завершение согласованной аттестации, записи разделов удаляются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisal/{id}/complete [put]
func (c *appraisalApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = appraisalhandler.Instance.Complete(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка завершения аттестации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// getAllowed аттестация доступна сотруднику и руководителям. При отказе ответ уже отправлен и возвращается nil.
func (c *appraisalApiController) getAllowed(ctx *fiber.Ctx) (*appraisalapimodels.AppraisalView, error) {
	id, err := c.GetID(ctx)
	if err != nil {
		return nil, ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := appraisalhandler.Instance.GetByID(id)
	if err != nil {
		return nil, c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения аттестации")
	}
	if resp.EmployeeID != middleware.GetUserID(ctx) && !middleware.GetUserRole(ctx).IsManagerRole() {
		return nil, ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
	}
	return &resp, nil
}
