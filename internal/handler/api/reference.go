package api

import (
	models "SentimentDash/internal/domain/models"
	"SentimentDash/internal/usecase"
	xhttp "SentimentDash/pkg/http"
	xlogger "SentimentDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReferenceHandler serves ticker lookups used by the dashboard cards.
type ReferenceHandler struct {
	logger *xlogger.Logger
	svc    *usecase.PredictionService
}

func NewReferenceHandler(logger *xlogger.Logger, svc *usecase.PredictionService) *ReferenceHandler {
	return &ReferenceHandler{logger: logger, svc: svc}
}

func (h *ReferenceHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/company-name", h.CompanyName)
	e.GET("/api/stock-data", h.StockData)
}

func (h *ReferenceHandler) CompanyName(c echo.Context) error {
	req := &models.CompanyNameRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.svc.Company(req.Ticker))
}

func (h *ReferenceHandler) StockData(c echo.Context) error {
	req := &models.StockDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	points, err := h.svc.PriceHistory(c.Request().Context(), req.Ticker, req.Start, req.End)
	if err != nil {
		appErr := toAppError(err)
		if appErr.Status >= 500 {
			h.logger.Error("price history failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, appErr)
	}
	return xhttp.SuccessResponse(c, points)
}
