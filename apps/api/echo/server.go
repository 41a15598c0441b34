package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/xufeiok/PineScript-Study/core"
	"github.com/xufeiok/PineScript-Study/core/lesson"
	"github.com/xufeiok/PineScript-Study/core/progress"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		LessonRepo  lesson.Repository // published document
		ProgressSvc progress.Service
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server struct {
		app      *echo.Echo
		conf     *core.Config
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	srv := &Server{
		app:      echo.New(),
		conf:     deps.Conf,
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	srv.setup(deps)
	return srv
}

func (srv *Server) setup(deps ServerDeps) {
	app := srv.app
	conf := deps.Conf

	app.HideBanner = true
	app.Debug = conf.Debug
	app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, srv.signalShutdown)

	app.Pre(middleware.RemoveTrailingSlash())
	app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !conf.Server.DisableReqLogs {
		app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	// the web client is served from anywhere during development
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	app.GET("/", srv.home)

	registerLessonAPI(app, deps.LessonRepo)
	registerProgressAPI(app, deps.ProgressSvc, deps.Logger, deps.Validate, deps.Translator)
}

// Start listens on the configured address; a failure is reported on Errors.
// It also starts relaying SIGINT and SIGTERM to ShutdownSignal.
func (srv *Server) Start() {
	signal.Notify(srv.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := srv.app.Start(srv.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		srv.errors <- err
	}
}

func (srv *Server) Errors() <-chan error {
	return srv.errors
}

func (srv *Server) ShutdownSignal() <-chan os.Signal {
	return srv.shutdown
}

func (srv *Server) signalShutdown() {
	select {
	case srv.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (srv *Server) Shutdown(ctx context.Context) error {
	signal.Stop(srv.shutdown)
	return srv.app.Shutdown(ctx)
}

func (srv *Server) Close() error {
	return srv.app.Close()
}

func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	srv.app.ServeHTTP(w, r)
}

func (srv *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+srv.conf.AppName+" API!")
}
