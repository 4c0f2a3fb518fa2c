package api

import (
	xhttp "SentimentDash/pkg/http"

	"github.com/labstack/echo/v4"
)

// Router registers every API handler on one Echo instance.
type Router struct {
	handlers []xhttp.Handler
}

func NewRouter(proxy *ProxyHandler, predictions *PredictionsHandler, reference *ReferenceHandler, comps *ComponentsHandler) *Router {
	return &Router{handlers: []xhttp.Handler{proxy, predictions, reference, comps}}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	for _, h := range r.handlers {
		h.RegisterRoutes(e)
	}
}
