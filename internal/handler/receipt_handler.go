package handler

import (
	"net/http"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /receipts（注文履歴）
type ReceiptHandler struct {
	sf *usecase.Storefront
}

func NewReceiptHandler(sf *usecase.Storefront) *ReceiptHandler {
	return &ReceiptHandler{sf: sf}
}

type ReceiptsResponse struct {
	Orders   []model.Order         `json:"orders"`
	Source   usecase.HistorySource `json:"source"`
	Degraded bool                  `json:"degraded"`
	Reason   string                `json:"reason,omitempty"`
}

func (h *ReceiptHandler) RegisterRoutes(g *echo.Group) {
	rg := g.Group("/receipts")

	rg.GET("", h.list)
	rg.GET("/:id", h.detail)
	rg.DELETE("", h.clear)
}

func (h *ReceiptHandler) list(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	res := s.History.GetOrders(c.Request().Context())
	return c.JSON(http.StatusOK, ReceiptsResponse{
		Orders:   res.Orders,
		Source:   res.Source,
		Degraded: res.Degraded(),
		Reason:   reasonText(res.Reason),
	})
}

func (h *ReceiptHandler) detail(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	// 代替注文は負のID
	id, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	o, err := s.History.FindOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *ReceiptHandler) clear(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	if err := s.History.ClearAll(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
