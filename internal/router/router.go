package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/tasklist/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, accessLog func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	if accessLog == nil {
		accessLog = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/view", accessLog(handlers.Task.GetView))
	r.GET("/api/v1/commands", accessLog(handlers.Task.ListCommands))
	r.POST("/api/v1/commands/{name}", accessLog(handlers.Task.ExecuteCommand))

	return r
}
