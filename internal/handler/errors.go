package handler

import (
	"net/http"
	"strconv"

	"ticketstore/internal/middleware"
	"ticketstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func parseIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// プロファイルのSession（Profileミドルウェアの後で使う）
func sessionFrom(c echo.Context, sf *usecase.Storefront) (*usecase.Session, bool) {
	pid, ok := middleware.ProfileID(c)
	if !ok {
		return nil, false
	}
	return sf.Session(pid), true
}

// 理由のエラー文（無ければ空）
func reasonText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
