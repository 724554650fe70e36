package handler

import (
	"net/http"

	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文サービスの /api/tickets
type TicketAPIHandler struct {
	uc *usecase.TicketUsecase
}

func NewTicketAPIHandler(uc *usecase.TicketUsecase) *TicketAPIHandler {
	return &TicketAPIHandler{uc: uc}
}

func (h *TicketAPIHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/tickets", h.list)
	e.GET("/api/tickets/:id", h.detail)
}

func (h *TicketAPIHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketAPIHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
