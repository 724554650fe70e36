package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// 管理トークンの検証
type AdminVerifier interface {
	VerifyAdmin(token string) error
}

// AdminSecret はクエリ ?secret= の管理トークンを検証する。
// Authorization: Bearer でも受け付ける。
func AdminSecret(v AdminVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.QueryParam("secret"))
			if raw == "" {
				raw = bearerToken(c.Request().Header.Get("Authorization"))
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if err := v.VerifyAdmin(raw); err != nil {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}

func bearerToken(authz string) string {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
