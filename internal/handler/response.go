package handler

import (
	"net/http"
	"strconv"

	"github.com/sakibullah2006/dmart/internal/middleware"
	"github.com/sakibullah2006/dmart/internal/repository"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse は { message: string } の形に寄せます。
type SuccessResponse struct {
	Message string `json:"message"`
}

func errorJSON(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := usecase.AsValidationError(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message, Details: ve.Fields})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// エラーのHTTPステータス
func statusOf(err error) int {
	if _, ok := usecase.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return he.Status
	}
	return http.StatusInternalServerError
}

// middleware.RequireSession が c.Set("user_id", string) した値を取り出す
func getUserIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return "", false
	}

	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

// ?page=&size=&sort=（pageは0始まり）
func pageQuery(c echo.Context) (repository.PageQuery, error) {
	var q repository.PageQuery
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return q, usecase.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		q.Page = p
	}
	if v := c.QueryParam("size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return q, usecase.NewHTTPError(http.StatusBadRequest, "invalid size")
		}
		q.Size = s
	}
	q.Sort = c.QueryParam("sort")
	return q, nil
}
