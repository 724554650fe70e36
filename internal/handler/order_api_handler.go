package handler

import (
	"math"
	"net/http"

	"ticketstore/internal/middleware"
	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文サービスの /orders
type OrderAPIHandler struct {
	uc *usecase.OrderServiceUsecase
}

func NewOrderAPIHandler(uc *usecase.OrderServiceUsecase) *OrderAPIHandler {
	return &OrderAPIHandler{uc: uc}
}

type OrderAPICreateRequest struct {
	Amount float64 `json:"amount"`
}

// int64に収まる上限（2^63）
const maxAmount = float64(1 << 63)

type ClearOrdersResponse struct {
	Deleted int64 `json:"deleted"`
}

func (h *OrderAPIHandler) RegisterRoutes(e *echo.Echo, admin middleware.AdminVerifier) {
	g := e.Group("/orders")

	g.POST("", h.create)
	g.GET("", h.list)
	g.DELETE("/clear", h.clear, middleware.AdminSecret(admin))
}

func (h *OrderAPIHandler) create(c echo.Context) error {
	var req OrderAPICreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 金額は整数（最小単位）。小数は四捨五入
	rounded := math.Round(req.Amount)
	if rounded >= maxAmount || rounded < -maxAmount {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Amount is out of range"})
	}
	amount := int64(rounded)
	out, err := h.uc.Create(c.Request().Context(), amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderAPIHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderAPIHandler) clear(c echo.Context) error {
	n, err := h.uc.Clear(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ClearOrdersResponse{Deleted: n})
}
