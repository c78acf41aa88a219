package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/api/transport"
	"github.com/fastygo/tasklist/pkg/httpcontext"
	appLogger "github.com/fastygo/tasklist/pkg/logger"
	"github.com/fastygo/tasklist/usecase"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

// TaskHandler serves the view layer: it runs named commands and returns the
// recomputed view.
type TaskHandler struct {
	baseHandler
	dispatcher *usecase.Dispatcher
}

func NewTaskHandler(dispatcher *usecase.Dispatcher, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		dispatcher:  dispatcher,
	}
}

// @Summary Current view
// @Tags tasks
// @Router /api/v1/view [get]
func (h *TaskHandler) GetView(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.dispatcher.ExecuteQuery(stdCtx, taskUC.QueryView, nil)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary List commands
// @Tags tasks
// @Router /api/v1/commands [get]
func (h *TaskHandler) ListCommands(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.dispatcher.Commands())
}

// @Summary Run command
// @Tags tasks
// @Router /api/v1/commands/{name} [post]
func (h *TaskHandler) ExecuteCommand(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue("name").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	logger := appLogger.WithRequestID(stdCtx, h.logger)

	result, err := h.dispatcher.ExecuteCommand(stdCtx, name, ctx.PostBody())
	if err != nil {
		logger.Debug("command rejected", zap.String("command", name), zap.Error(err))
		h.respondError(ctx, err)
		return
	}

	view, err := h.dispatcher.ExecuteQuery(stdCtx, taskUC.QueryView, nil)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	logger.Debug("command executed", zap.String("command", name))
	h.respondSuccess(ctx, http.StatusOK, transport.CommandResponse{
		Command: name,
		Result:  result,
		View:    view,
	})
}
