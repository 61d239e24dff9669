package appointment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mediscan/mediscan/internal/platform/apperr"
	"github.com/mediscan/mediscan/internal/platform/auth"
	"github.com/mediscan/mediscan/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the appointment endpoints. Booking requires any
// authenticated identity; the doctor views additionally require the doctor
// role.
func (h *Handler) RegisterRoutes(protected *echo.Group) {
	protected.POST("/appointments", h.Book)

	doctor := protected.Group("/doctor", auth.RequireRole(auth.RoleDoctor))
	doctor.GET("/appointments", h.ListForDoctor)
	doctor.GET("/appointments/:id", h.GetForDoctor)
}

func (h *Handler) Book(c echo.Context) error {
	var in BookInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	a, err := h.svc.Book(c.Request().Context(), auth.IdentityFromContext(c.Request().Context()), in)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "appointment booked successfully",
		"appointment": a,
	})
}

func (h *Handler) GetForDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	detail, err := h.svc.GetForDoctor(c.Request().Context(), auth.IdentityFromContext(c.Request().Context()), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) ListForDoctor(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListForDoctor(c.Request().Context(), auth.IdentityFromContext(c.Request().Context()), p)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err))
	}
	if items == nil {
		items = []*DoctorListItem{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p))
}
