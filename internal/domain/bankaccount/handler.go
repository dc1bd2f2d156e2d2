package bankaccount

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medibook/medibook/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/bank-accounts", h.ListBankAccounts)
	api.GET("/bank-accounts/:id", h.GetBankAccount)

	admin := api.Group("/admin", auth.RequireAdmin())
	admin.POST("/bank-accounts", h.CreateBankAccount)
	admin.PUT("/bank-accounts/:id", h.UpdateBankAccount)
}

func (h *Handler) ListBankAccounts(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())
	includeInactive := c.QueryParam("all") == "true"

	items, err := h.svc.List(c.Request().Context(), actor, includeInactive)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": items})
}

func (h *Handler) GetBankAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor := auth.ActorFromContext(c.Request().Context())

	a, err := h.svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "bank account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CreateBankAccount(c echo.Context) error {
	var a BankAccount
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor := auth.ActorFromContext(c.Request().Context())

	if err := h.svc.Create(c.Request().Context(), actor, &a); err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateBankAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a BankAccount
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = id
	actor := auth.ActorFromContext(c.Request().Context())

	if err := h.svc.Update(c.Request().Context(), actor, &a); err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "bank account not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}
