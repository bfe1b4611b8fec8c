package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/metrics"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// 全handlerのルート登録をここに集約する
type Handlers struct {
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	Invoice      *handler.InvoiceHandler
	AdminCatalog *handler.AdminCatalogHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, userRepo repository.UserRepository) {
	//公開API
	h.Auth.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e)

	//要認証API
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Checkout.RegisterRoutes(e, cfg, userRepo)
	h.Invoice.RegisterRoutes(e, cfg, userRepo)

	//管理者API
	h.AdminCatalog.RegisterRoutes(e, cfg, userRepo)

	//運用系
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
