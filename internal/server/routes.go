package server

import (
	"ticketstore/internal/handler"
	"ticketstore/internal/middleware"
	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StorefrontRoutes struct {
	Storefront *usecase.Storefront
	Catalog    *usecase.CatalogUsecase
	Profiles   middleware.ProfileIDs
}

func RegisterStorefront(e *echo.Echo, r StorefrontRoutes) {
	handler.RegisterHealth(e, "storefront")
	handler.NewCatalogHandler(r.Catalog).RegisterRoutes(e)

	// ここから下はプロファイル単位
	g := e.Group("", middleware.Profile(r.Profiles))
	handler.NewCartHandler(r.Storefront, r.Catalog).RegisterRoutes(g)
	handler.NewCheckoutHandler(r.Storefront).RegisterRoutes(g)
	handler.NewReceiptHandler(r.Storefront).RegisterRoutes(g)
	handler.NewPreferenceHandler(r.Storefront).RegisterRoutes(g)
}

type OrderServiceRoutes struct {
	Orders  *usecase.OrderServiceUsecase
	Tickets *usecase.TicketUsecase
	Admin   middleware.AdminVerifier
}

func RegisterOrderService(e *echo.Echo, r OrderServiceRoutes) {
	handler.RegisterHealth(e, "order-service")
	handler.NewOrderAPIHandler(r.Orders).RegisterRoutes(e, r.Admin)
	handler.NewTicketAPIHandler(r.Tickets).RegisterRoutes(e)
}
