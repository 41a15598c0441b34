package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core"
	"github.com/xufeiok/PineScript-Study/core/progress"
)

type progressApi struct {
	svc        progress.Service
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
}

func registerProgressAPI(
	app *echo.Echo,
	svc progress.Service,
	logger core.Logger,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := progressApi{
		svc:        svc,
		logger:     logger,
		validate:   validate,
		translator: translator,
	}

	pg := app.Group("/progress")
	pg.GET("", api.retrieve)
	pg.POST("", api.save)
}

// Handlers

func (api *progressApi) retrieve(ctx echo.Context) error {
	up := api.svc.Get(ctx.Request().Context(), ctx.QueryParam("user"))
	return ctx.JSON(http.StatusOK, up)
}

func (api *progressApi) save(ctx echo.Context) error {
	var data progress.SaveProgress
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveProgress")
	}
	if err := data.Validate(api.validate); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			return core.NewValidationError(nil, core.TranslateErrors(vErrs, api.translator)...)
		}
		return err
	}

	if err := api.svc.Save(ctx.Request().Context(), data.User, data.Progress); err != nil {
		api.logger.Error("saving progress", err, core.LogUser(data.User))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save progress: "+errors.Cause(err).Error()).
			SetInternal(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"ok": true})
}
