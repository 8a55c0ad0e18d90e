package handler

import (
	"net/http"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

const imageCacheControl = "public, max-age=31536000, immutable"

// 画像のプロキシ（/api/images, /api/products/:productId/images/primary）
type ImageProxyHandler struct {
	uc *usecase.MediaUsecase
}

func NewImageProxyHandler(uc *usecase.MediaUsecase) *ImageProxyHandler {
	return &ImageProxyHandler{uc: uc}
}

func (h *ImageProxyHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/images/:id", h.image)
	g.GET("/products/:productId/images/primary", h.primary)
}

func (h *ImageProxyHandler) image(c echo.Context) error {
	img, err := h.uc.OpenImage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return streamImage(c, img)
}

func (h *ImageProxyHandler) primary(c echo.Context) error {
	img, err := h.uc.OpenPrimaryImage(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return streamImage(c, img)
}

func streamImage(c echo.Context, img *model.ImageStream) error {
	defer img.Body.Close()

	ct := img.ContentType
	if ct == "" {
		ct = "image/jpeg"
	}
	c.Response().Header().Set("Cache-Control", imageCacheControl)
	return c.Stream(http.StatusOK, ct, img.Body)
}
