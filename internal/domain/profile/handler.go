package profile

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medibook/medibook/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts the unauthenticated auth endpoints.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/register", h.register)
	g.POST("/auth/login", h.login)
	g.POST("/auth/refresh", h.refresh)
}

// RegisterRoutes mounts the endpoints that require a valid token.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/logout", h.logout)
	g.GET("/profile", h.me)
	g.PUT("/profile", h.updateProfile)
}

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	Profile *Profile   `json:"profile"`
	Tokens  *TokenPair `json:"tokens"`
}

func (h *Handler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, tokens, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, authResponse{Profile: p, Tokens: tokens})
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, tokens, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	return c.JSON(http.StatusOK, authResponse{Profile: p, Tokens: tokens})
}

func (h *Handler) refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	tokens, err := h.svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "refresh failed")
	}
	return c.JSON(http.StatusOK, map[string]*TokenPair{"tokens": tokens})
}

func (h *Handler) logout(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())
	if err := h.svc.Logout(c.Request().Context(), actor); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) me(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())
	p, err := h.svc.Me(c.Request().Context(), actor)
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
}

func (h *Handler) updateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := auth.ActorFromContext(c.Request().Context())
	p, err := h.svc.UpdateName(c.Request().Context(), actor, req.FullName)
	if err != nil {
		if errors.Is(err, ErrNoEffect) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}
