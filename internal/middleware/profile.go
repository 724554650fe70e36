package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	CtxProfileIDKey   = "profile_id" // string
	ProfileCookieName = "profile_id"
	ProfileHeader     = "X-Profile-ID"

	profileCookieMaxAge = 365 * 24 * time.Hour
)

// プロファイルIDの採番と検証
type ProfileIDs interface {
	NewProfileID() string
	ValidProfileID(id string) bool
}

// Profile はヘッダーかcookieからプロファイル（ブラウザ相当）を決める。
// どちらも無ければ新しく発行してcookieで返す。
func Profile(ids ProfileIDs) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if h := strings.TrimSpace(c.Request().Header.Get(ProfileHeader)); h != "" {
				if !ids.ValidProfileID(h) {
					return c.JSON(http.StatusBadRequest, errorJSON("invalid profile id"))
				}
				c.Set(CtxProfileIDKey, h)
				return next(c)
			}

			if ck, err := c.Cookie(ProfileCookieName); err == nil && ids.ValidProfileID(ck.Value) {
				c.Set(CtxProfileIDKey, ck.Value)
				return next(c)
			}

			id := ids.NewProfileID()
			c.SetCookie(&http.Cookie{
				Name:     ProfileCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(profileCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(CtxProfileIDKey, id)
			return next(c)
		}
	}
}

// contextからプロファイルIDを取り出す
func ProfileID(c echo.Context) (string, bool) {
	v, ok := c.Get(CtxProfileIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
