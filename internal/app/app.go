package app

import (
	"context"
	"net/http"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgconfig"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkglog"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgmetric"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgrouter"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	metrics   *pkgmetric.Metrics

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
