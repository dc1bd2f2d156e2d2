package notification

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medibook/medibook/internal/platform/auth"
	"github.com/medibook/medibook/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/notifications", h.ListNotifications)
	api.GET("/notifications/unread-count", h.UnreadCount)
	api.PUT("/notifications/:id/read", h.MarkRead)
}

func (h *Handler) ListNotifications(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	items, total, err := h.svc.List(c.Request().Context(), actor, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) UnreadCount(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())

	count, err := h.svc.UnreadCount(c.Request().Context(), actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"unread": count})
}

func (h *Handler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor := auth.ActorFromContext(c.Request().Context())

	if err := h.svc.MarkRead(c.Request().Context(), actor, id); err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
