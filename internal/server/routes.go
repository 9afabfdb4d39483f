package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Session  *handler.SessionHandler
	Page     *handler.PageHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.Static("/static", cfg.StaticDir)
	// ファイル読み込みのときはカタログも配信する
	if cfg.CatalogSource == config.CatalogSourceFile {
		e.File("/catalog.json", cfg.CatalogPath)
	}

	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Session.RegisterRoutes(e)
	h.Page.RegisterRoutes(e)
}
