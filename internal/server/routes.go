package server

import (
	"net/http"

	"github.com/sakibullah2006/dmart/internal/middleware"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status string `json:"status"`
}

func RegisterRoutes(e *echo.Echo, opts Options, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	})

	//公開
	h.Product.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Image.RegisterRoutes(e)

	//ログイン必須（画面）
	page := middleware.RequireSessionPage(opts.Sessions, opts.Hint)
	h.Cart.RegisterRoutes(e, page)
	h.Checkout.RegisterRoutes(e, page)
	h.Order.RegisterRoutes(e, page)

	// /admin/api 配下は全部「リモートでセッション確認 + ADMIN限定」
	admin := e.Group(
		"/admin/api",
		middleware.RequireSession(opts.Sessions, opts.Hint),
		middleware.AdminRoleGuard(),
	)
	h.AdminProduct.RegisterRoutes(admin)
	h.AdminCatalog.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminUser.RegisterRoutes(admin)
}
