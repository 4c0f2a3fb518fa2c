package api

import (
	"errors"
	"net/http"

	models "SentimentDash/internal/domain/models"
	domrepo "SentimentDash/internal/domain/repository"
	"SentimentDash/internal/service/ratelimit"
	xhttp "SentimentDash/pkg/http"
	xlogger "SentimentDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProxyHandler relays feed requests upstream, attaching the credential held by
// the relay. Responses keep the feed's own {data} / {error} shape.
type ProxyHandler struct {
	logger  *xlogger.Logger
	relay   domrepo.FeedRelay
	limiter *ratelimit.Limiter
}

func NewProxyHandler(logger *xlogger.Logger, relay domrepo.FeedRelay, limiter *ratelimit.Limiter) *ProxyHandler {
	return &ProxyHandler{logger: logger, relay: relay, limiter: limiter}
}

func (h *ProxyHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/proxy", h.Proxy)
}

func (h *ProxyHandler) Proxy(c echo.Context) error {
	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": http.StatusText(http.StatusTooManyRequests)})
	}

	req := &models.FeedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "Missing required fields: 'start', 'end', 'asset'",
			"details": verr,
		})
	}

	items, err := h.relay.Relay(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, req, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *ProxyHandler) fail(c echo.Context, req *models.FeedRequest, err error) error {
	fields := []xlogger.Field{
		xlogger.String("asset", req.Asset),
		xlogger.String("start", req.Start),
		xlogger.String("end", req.End),
		xlogger.Bool("latest", req.IsLatest()),
	}

	var ue *models.UpstreamError
	switch {
	case errors.As(err, &ue):
		h.logger.Warn("proxy: upstream error", append(fields, xlogger.Int("status", ue.Status))...)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": ue.Error()})
	case errors.Is(err, models.ErrMalformedResponse):
		h.logger.Warn("proxy: malformed upstream response", append(fields, xlogger.Error(err))...)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": msgMalformed})
	case errors.Is(err, models.ErrCredentialMissing):
		h.logger.Error("proxy: prediction api credential is not configured", fields...)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgInternal})
	default:
		h.logger.Error("proxy: relay failed", append(fields, xlogger.Error(err))...)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgInternal})
	}
}
