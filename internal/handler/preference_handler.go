package handler

import (
	"net/http"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PreferenceHandler struct {
	sf *usecase.Storefront
}

func NewPreferenceHandler(sf *usecase.Storefront) *PreferenceHandler {
	return &PreferenceHandler{sf: sf}
}

type ThemeBody struct {
	Theme model.Theme `json:"theme"`
}

func (h *PreferenceHandler) RegisterRoutes(g *echo.Group) {
	pg := g.Group("/preferences/theme")

	pg.GET("", h.get)
	pg.PUT("", h.put)
	pg.POST("/toggle", h.toggle)
}

func (h *PreferenceHandler) get(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}
	return c.JSON(http.StatusOK, ThemeBody{Theme: s.Preferences.Theme(c.Request().Context())})
}

func (h *PreferenceHandler) put(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	var req ThemeBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	t, err := s.Preferences.SetTheme(c.Request().Context(), req.Theme)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ThemeBody{Theme: t})
}

func (h *PreferenceHandler) toggle(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	t, err := s.Preferences.ToggleTheme(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ThemeBody{Theme: t})
}
