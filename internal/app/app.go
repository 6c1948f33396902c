// Package app wires dependencies and manages the service lifecycle.
package app

import (
	"context"
	"net/http"

	"github.com/cotodev/smsauth/internal/pkg/clock"
	"github.com/cotodev/smsauth/internal/pkg/config"
	"github.com/cotodev/smsauth/internal/pkg/instrument"
	"github.com/cotodev/smsauth/internal/pkg/jwt"
	"github.com/cotodev/smsauth/internal/pkg/router"
	"github.com/cotodev/smsauth/internal/pkg/session"
	"github.com/cotodev/smsauth/internal/pkg/uid"
	"github.com/cotodev/smsauth/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	cacheConn *redis.Client
	notes     session.Store

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initSessionStore()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
