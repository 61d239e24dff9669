package diagnosis

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mediscan/mediscan/internal/platform/apperr"
	"github.com/mediscan/mediscan/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the diagnosis endpoints. Submission lives on the guest
// group so unauthenticated preview evaluations work; history and detail
// require a caller identity.
func (h *Handler) RegisterRoutes(guest *echo.Group, protected *echo.Group) {
	guest.POST("/diagnoses", h.Submit)
	protected.GET("/diagnoses", h.ListHistory)
	protected.GET("/diagnoses/:id", h.Get)
}

type submitRequest struct {
	Symptoms string `json:"symptoms"`
}

func (h *Handler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id := auth.IdentityFromContext(c.Request().Context())
	d, err := h.svc.Submit(c.Request().Context(), id, req.Symptoms)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}

	if id == nil {
		// Guest preview: evaluation only, nothing persisted.
		return c.JSON(http.StatusOK, d)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.Get(c.Request().Context(), auth.IdentityFromContext(c.Request().Context()), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListHistory(c echo.Context) error {
	items, err := h.svc.ListForUser(c.Request().Context(), auth.IdentityFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}
	if items == nil {
		items = []*Diagnosis{}
	}
	return c.JSON(http.StatusOK, items)
}
