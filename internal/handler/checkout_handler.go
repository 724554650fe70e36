package handler

import (
	"net/http"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkout, /orders（送信側）
type CheckoutHandler struct {
	sf *usecase.Storefront
}

func NewCheckoutHandler(sf *usecase.Storefront) *CheckoutHandler {
	return &CheckoutHandler{sf: sf}
}

type CreateOrderRequest struct {
	Amount *int64 `json:"amount"`
}

// 代替注文でも201（注文自体は存在する）
type CheckoutResponse struct {
	Order    model.Order `json:"order"`
	Degraded bool        `json:"degraded"`
	Reason   string      `json:"reason,omitempty"`
}

func newCheckoutResponse(res usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{Order: res.Order, Degraded: res.Degraded(), Reason: reasonText(res.Reason)}
}

func (h *CheckoutHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/checkout", h.checkout)
	g.POST("/orders", h.createOrder)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	res, err := s.Checkout.Checkout(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, newCheckoutResponse(res))
}

func (h *CheckoutHandler) createOrder(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Amount == nil || *req.Amount < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid amount"})
	}

	res := s.Checkout.CreateOrder(c.Request().Context(), *req.Amount)
	return c.JSON(http.StatusCreated, newCheckoutResponse(res))
}
