package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminRoleGuard はRequireSessionの後ろに置く。
// 確認済みユーザーがADMINで、無効化されていないときだけ通す。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := UserFrom(c)
			if !ok || u.ID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if !u.IsAdmin() {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}
			if u.IsActive != nil && !*u.IsActive {
				return c.JSON(http.StatusForbidden, errorJSON("account is disabled"))
			}
			return next(c)
		}
	}
}
