package handler

import (
	"net/http"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	sf      *usecase.Storefront
	catalog *usecase.CatalogUsecase
}

func NewCartHandler(sf *usecase.Storefront, catalog *usecase.CatalogUsecase) *CartHandler {
	return &CartHandler{sf: sf, catalog: catalog}
}

type AddCartRequest struct {
	TicketID int64 `json:"ticket_id"`
	Quantity int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type CartResponse struct {
	Items []model.CartLineItem `json:"items"`
	Total int64                `json:"total"`
	Count int64                `json:"count"`
}

func newCartResponse(items []model.CartLineItem) CartResponse {
	return CartResponse{Items: items, Total: usecase.CartTotal(items), Count: usecase.CartCount(items)}
}

// /cart, /cart/{id} を登録（Profileミドルウェア配下）
func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	cg := g.Group("/cart")

	cg.GET("", h.getCart)
	cg.POST("", h.addToCart)
	cg.DELETE("", h.clearCart)
	cg.GET("/badge", h.badge)
	cg.PATCH("/:id", h.patchItem)
	cg.DELETE("/:id", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	items := s.Cart.GetCart(c.Request().Context())
	return c.JSON(http.StatusOK, newCartResponse(items))
}

func (h *CartHandler) addToCart(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	// 数量省略は1枚
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := c.Request().Context()
	ticket, err := h.catalog.Get(ctx, req.TicketID)
	if err != nil {
		return writeError(c, err)
	}

	items, err := s.Cart.AddToCart(ctx, ticket, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(items))
}

func (h *CartHandler) patchItem(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	ticketID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items, err := s.Cart.UpdateQuantity(c.Request().Context(), ticketID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(items))
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	ticketID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	items, err := s.Cart.RemoveFromCart(c.Request().Context(), ticketID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(items))
}

func (h *CartHandler) clearCart(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	items, err := s.Cart.ClearCart(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(items))
}

func (h *CartHandler) badge(c echo.Context) error {
	s, ok := sessionFrom(c, h.sf)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile required"})
	}

	// 再起動後でも保存済みカートから件数を流し直す
	s.Cart.SyncCount(c.Request().Context())
	return c.JSON(http.StatusOK, h.sf.Badges().Snapshot(s.ProfileID))
}
