package consultation

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
	api.POST("/consultations", h.CreateConsultation)
	api.GET("/consultations", h.ListConsultations)
	api.GET("/consultations/:id", h.GetConsultation)
	api.POST("/consultations/:id/payment", h.ConfirmPayment)
	api.POST("/consultations/:id/cancel", h.CancelConsultation)

	admin := api.Group("/admin", auth.RequireAdmin())
	admin.PUT("/consultations/:id/status", h.SetStatus)
}

func (h *Handler) CreateConsultation(c echo.Context) error {
	var req Consultation
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor := auth.ActorFromContext(c.Request().Context())

	if err := h.svc.Create(c.Request().Context(), actor, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, req)
}

func (h *Handler) GetConsultation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor := auth.ActorFromContext(c.Request().Context())

	cons, err := h.svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "consultation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cons)
}

func (h *Handler) ListConsultations(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	items, total, err := h.svc.List(c.Request().Context(), actor, c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

type statusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
	AdminNotes    *string `json:"admin_notes"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor := auth.ActorFromContext(c.Request().Context())

	cons, err := h.svc.SetStatus(c.Request().Context(), actor, id, StatusChange{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		AdminNotes:    req.AdminNotes,
	})
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "consultation not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cons)
}

func (h *Handler) CancelConsultation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor := auth.ActorFromContext(c.Request().Context())

	cons, err := h.svc.Cancel(c.Request().Context(), actor, id)
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "consultation not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cons)
}

type paymentRequest struct {
	BankAccountID uuid.UUID `json:"bank_account_id"`
}

func (h *Handler) ConfirmPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor := auth.ActorFromContext(c.Request().Context())

	cons, err := h.svc.ConfirmPayment(c.Request().Context(), actor, id, req.BankAccountID)
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "consultation not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cons)
}
