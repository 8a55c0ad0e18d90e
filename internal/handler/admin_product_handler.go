package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sakibullah2006/dmart/internal/repository"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// multipartをメモリに置く上限（超えた分は一時ファイル）
const maxUploadMemory = 10 << 20

// /admin/api/products と商品画像をまとめる
type AdminProductHandler struct {
	uc    *usecase.ProductUsecase
	media *usecase.MediaUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase, media *usecase.MediaUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc, media: media}
}

type productAttributesRequest struct {
	Attributes []repository.AttributeSelection `json:"attributes"`
}

// adminを登録（groupは認証・ADMIN限定済み）
func (h *AdminProductHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/products", h.listProducts)
	admin.GET("/products/:id", h.getProduct)
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.PUT("/products/:id/attributes", h.updateAttributes)
	admin.DELETE("/products/:id", h.deleteProduct)

	admin.GET("/products/:id/images", h.listImages)
	admin.POST("/products/:id/images", h.uploadImage)
	admin.DELETE("/products/:id/images", h.deleteAllImages)
	admin.PUT("/images/:publicId", h.updateImage)
	admin.DELETE("/images/:publicId", h.deleteImage)
}

// ?q=&category=&page=&size=&sort=
func (h *AdminProductHandler) listProducts(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	in := usecase.SearchProductsInput{
		Term: strings.TrimSpace(c.QueryParam("q")),
		Sort: q.Sort,
		Page: q.Page,
		Size: q.Size,
	}
	if v := c.QueryParam("category"); v != "" {
		in.CategoryIDs = strings.Split(v, ",")
	}

	out, err := h.uc.Search(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) getProduct(c echo.Context) error {
	out, err := h.uc.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) createProduct(c echo.Context) error {
	var req repository.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.AdminCreate(c.Request().Context(), adminID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) updateProduct(c echo.Context) error {
	var req repository.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.AdminUpdate(c.Request().Context(), adminID, c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) updateAttributes(c echo.Context) error {
	var req productAttributesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.AdminUpdateAttributes(c.Request().Context(), adminID, c.Param("id"), req.Attributes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) deleteProduct(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDelete(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// ===== 画像 =====

func (h *AdminProductHandler) listImages(c echo.Context) error {
	out, err := h.media.ListImages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// multipart: file, isPrimary, displayOrder, altText
func (h *AdminProductHandler) uploadImage(c echo.Context) error {
	if err := c.Request().ParseMultipartForm(maxUploadMemory); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart body"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
	}
	if fh.Size > usecase.MaxUploadBytes {
		return writeError(c, usecase.ErrUploadTooLarge)
	}

	in := repository.ImageUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		IsPrimary:   c.FormValue("isPrimary") == "true",
		AltText:     strings.TrimSpace(c.FormValue("altText")),
	}
	if v := c.FormValue("displayOrder"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid displayOrder"})
		}
		in.DisplayOrder = n
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
	}
	defer f.Close()
	in.Body = f

	out, err := h.media.Upload(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) updateImage(c echo.Context) error {
	var req repository.ImageUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.media.UpdateImage(c.Request().Context(), c.Param("publicId"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) deleteImage(c echo.Context) error {
	if err := h.media.DeleteImage(c.Request().Context(), c.Param("publicId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminProductHandler) deleteAllImages(c echo.Context) error {
	if err := h.media.DeleteAll(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
