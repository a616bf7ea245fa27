package apiv1

import (
	"appraisal-backend/controllers"
	filestorage "appraisal-backend/lib/file-storage"
	"appraisal-backend/middleware"
	apimodels "appraisal-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type signatureApiController struct {
	controllers.BaseAPIController
}

func InitSignatureApiRouters(app *fiber.App) {
	controller := signatureApiController{}
	app.Route("signature", func(router fiber.Router) {
		router.Post("", controller.upload)
		router.Get("my", controller.my)
		router.Get(":id", controller.get)
	})
}

// @Summary Загрузка подписи
// @Tags Подпись
// @Description Изображение подписи (png, jpeg, svg), в ответе ссылка для полей подписи раздела
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file 				formData 	file 	true 	"signature image"
// @Success 200 {object} apimodels.Response{data=dbmodels.SignatureFile}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/signature [post]
func (c *signatureApiController) upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл подписи"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл подписи"))
	}
	defer file.Close()

	rec, err := filestorage.Instance.UploadSignature(ctx.UserContext(), filestorage.SignatureUpload{
		OwnerID:     middleware.GetUserID(ctx),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки подписи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Мои подписи
// @Tags Подпись
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]dbmodels.SignatureFile}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/signature/my [get]
func (c *signatureApiController) my(ctx *fiber.Ctx) error {
	list, err := filestorage.Instance.ListSignatures(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка подписей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list))
}

// @Summary Подпись
// @Tags Подпись
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "signature ID"
// @Success 200 {object} apimodels.Response{data=dbmodels.SignatureFile}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/signature/{id} [get]
func (c *signatureApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := filestorage.Instance.GetSignature(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения подписи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}
