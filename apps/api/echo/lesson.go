package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core/lesson"
)

type lessonApi struct {
	repo lesson.Repository
}

func registerLessonAPI(app *echo.Echo, repo lesson.Repository) {
	api := lessonApi{repo: repo}

	app.GET("/lessons", api.list)
}

// list serves the published document as stored, sealed fields included.
func (api *lessonApi) list(ctx echo.Context) error {
	data, err := api.repo.ReadRaw(ctx.Request().Context())
	if err != nil {
		if lesson.IsNotFound(err) {
			return errHttpLessonsNotFound
		}
		return errors.Wrap(err, "reading lessons")
	}
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, data)
}
