package handler

import (
	"net/http"
	"strings"

	"github.com/sakibullah2006/dmart/internal/middleware"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartの画面
type CartHandler struct {
	uc       *usecase.CartUsecase
	products *usecase.ProductUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, products *usecase.ProductUsecase) *CartHandler {
	return &CartHandler{uc: uc, products: products}
}

type AddCartRequest struct {
	ProductID string `form:"productId"`
	Quantity  int    `form:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `form:"quantity"`
}

// /cart 以下を登録（authはログイン必須のミドルウェア）
func (h *CartHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/cart")
	g.Use(auth)

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.POST("/items/:id/update", h.updateItem)
	g.POST("/items/:id/remove", h.removeItem)
	g.POST("/clear", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	s, err := h.uc.FetchCart(c.Request().Context(), middleware.SessionTokenFrom(c))
	if isAuthError(err) {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/cart"))
	}
	return h.renderCart(c, s, err)
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid body"))
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	req.ProductID = strings.TrimSpace(req.ProductID)

	ctx := c.Request().Context()
	//在庫確認
	if _, err := h.products.EnsureInStock(ctx, req.ProductID); err != nil {
		return h.fail(c, err)
	}

	_, err := h.uc.AddItem(ctx, middleware.SessionTokenFrom(c), usecase.CartState{}, req.ProductID, req.Quantity)
	return h.done(c, err)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid body"))
	}

	_, err := h.uc.UpdateItem(c.Request().Context(), middleware.SessionTokenFrom(c), usecase.CartState{}, c.Param("id"), req.Quantity)
	return h.done(c, err)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	_, err := h.uc.RemoveItem(c.Request().Context(), middleware.SessionTokenFrom(c), usecase.CartState{}, c.Param("id"))
	return h.done(c, err)
}

func (h *CartHandler) clear(c echo.Context) error {
	_, err := h.uc.Clear(c.Request().Context(), middleware.SessionTokenFrom(c), usecase.CartState{})
	return h.done(c, err)
}

// 成功はPRGで/cartへ
func (h *CartHandler) done(c echo.Context, err error) error {
	if err != nil {
		return h.fail(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// 失敗はカートを取り直してエラー付きで描画
func (h *CartHandler) fail(c echo.Context, cause error) error {
	if isAuthError(cause) {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/cart"))
	}
	s, err := h.uc.FetchCart(c.Request().Context(), middleware.SessionTokenFrom(c))
	if err != nil {
		s.Error = usecase.UserMessage(err)
	}
	p := withError(Page{Title: "Cart", Data: s}, cause)
	return render(c, statusOf(cause), "cart", p)
}

func (h *CartHandler) renderCart(c echo.Context, s usecase.CartState, err error) error {
	p := withError(Page{Title: "Cart", Data: s}, err)
	status := http.StatusOK
	if err != nil {
		status = statusOf(err)
	}
	return render(c, status, "cart", p)
}

// リモートの401/403はどちらも未ログイン扱い（ログイン画面へ）
func isAuthError(err error) bool {
	he, ok := usecase.AsHTTPError(err)
	return ok && (he.Status == http.StatusUnauthorized || he.Status == http.StatusForbidden)
}
