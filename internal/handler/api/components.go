package api

import (
	"net/http"

	"SentimentDash/internal/service/components"
	xhttp "SentimentDash/pkg/http"

	"github.com/labstack/echo/v4"
)

// ComponentsHandler publishes the component catalog and liveness.
type ComponentsHandler struct {
	catalog components.Catalog
}

func NewComponentsHandler(catalog components.Catalog) *ComponentsHandler {
	return &ComponentsHandler{catalog: catalog}
}

func (h *ComponentsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/components", h.List)
	e.GET("/api/components/:name", h.Get)
	e.GET("/healthz", h.Health)
}

func (h *ComponentsHandler) List(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=300")
	return xhttp.SuccessResponse(c, h.catalog)
}

func (h *ComponentsHandler) Get(c echo.Context) error {
	comp, ok := h.catalog.Lookup(c.Param("name"))
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("component not found").WithParam("name", c.Param("name")))
	}
	return xhttp.SuccessResponse(c, comp)
}

func (h *ComponentsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
