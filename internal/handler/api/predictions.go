package api

import (
	models "SentimentDash/internal/domain/models"
	"SentimentDash/internal/presentation"
	"SentimentDash/internal/usecase"
	xhttp "SentimentDash/pkg/http"
	xlogger "SentimentDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictionsHandler serves the dashboard data views.
type PredictionsHandler struct {
	logger *xlogger.Logger
	svc    *usecase.PredictionService
}

func NewPredictionsHandler(logger *xlogger.Logger, svc *usecase.PredictionService) *PredictionsHandler {
	return &PredictionsHandler{logger: logger, svc: svc}
}

func (h *PredictionsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/predictions")
	g.GET("", h.List)
	g.GET("/grouped", h.Grouped)
	g.GET("/individual", h.Individual)
	g.GET("/context", h.Context)
}

func (h *PredictionsHandler) Grouped(c echo.Context) error {
	req := &models.GroupedPredictionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.svc.GetAssetPredictions(c.Request().Context(), req.Symbol, req.CompanyName, req.Start, req.End, req.Interval)
	if err != nil {
		return h.fail(c, "grouped", err)
	}
	if req.Interpolate {
		return xhttp.SuccessResponse(c, presentation.BuildChart(res))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsHandler) Individual(c echo.Context) error {
	req := &models.IndividualPredictionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.svc.GetIndividualPredictions(c.Request().Context(), req.Symbol, req.CompanyName, req.Start, req.End, req.Interval, req.Username)
	if err != nil {
		return h.fail(c, "individual", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsHandler) List(c echo.Context) error {
	req := &models.PredictionListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.svc.ListPredictions(c.Request().Context(), req.Limit)
	if err != nil {
		return h.fail(c, "list", err)
	}
	return xhttp.ListResponse(c, res, int64(len(res)))
}

func (h *PredictionsHandler) Context(c echo.Context) error {
	req := &models.SentimentContextRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.svc.SentimentContext(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "context", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsHandler) fail(c echo.Context, view string, err error) error {
	appErr := toAppError(err)
	if appErr.Status >= 500 {
		h.logger.Error("predictions usecase error", xlogger.String("view", view), xlogger.Error(err))
	} else {
		h.logger.Debug("predictions request rejected", xlogger.String("view", view), xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}
