package handler

import (
	"net/http"

	"github.com/sakibullah2006/dmart/internal/repository"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/api のカテゴリと属性
type AdminCatalogHandler struct {
	categories *usecase.CategoryUsecase
	attributes *usecase.AttributeUsecase
}

func NewAdminCatalogHandler(categories *usecase.CategoryUsecase, attributes *usecase.AttributeUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{categories: categories, attributes: attributes}
}

func (h *AdminCatalogHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/categories", h.listCategories)
	admin.GET("/categories/:id", h.getCategory)
	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)

	admin.GET("/attributes", h.listAttributes)
	admin.POST("/attributes", h.createAttribute)
	admin.PUT("/attributes/:id", h.updateAttribute)
	admin.DELETE("/attributes/:id", h.deleteAttribute)

	admin.GET("/attributes/:id/options", h.listOptions)
	admin.POST("/attributes/:id/options", h.createOption)
	admin.PUT("/attribute-options/:optionId", h.updateOption)
	admin.DELETE("/attribute-options/:optionId", h.deleteOption)
}

// ===== カテゴリ =====

func (h *AdminCatalogHandler) listCategories(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.categories.AdminList(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) getCategory(c echo.Context) error {
	out, err := h.categories.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) createCategory(c echo.Context) error {
	var req repository.CategoryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	out, err := h.categories.AdminCreate(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) updateCategory(c echo.Context) error {
	var req repository.CategoryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	out, err := h.categories.AdminUpdate(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteCategory(c echo.Context) error {
	if err := h.categories.AdminDelete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// ===== 属性 =====

func (h *AdminCatalogHandler) listAttributes(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.attributes.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) createAttribute(c echo.Context) error {
	var req repository.AttributeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	out, err := h.attributes.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) updateAttribute(c echo.Context) error {
	var req repository.AttributeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	out, err := h.attributes.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteAttribute(c echo.Context) error {
	if err := h.attributes.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminCatalogHandler) listOptions(c echo.Context) error {
	out, err := h.attributes.ListOptions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) createOption(c echo.Context) error {
	var req repository.AttributeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	out, err := h.attributes.CreateOption(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) updateOption(c echo.Context) error {
	var req repository.AttributeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	out, err := h.attributes.UpdateOption(c.Request().Context(), c.Param("optionId"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteOption(c echo.Context) error {
	if err := h.attributes.DeleteOption(c.Request().Context(), c.Param("optionId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
