package handler

import (
	"net/http"
	"strconv"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/middleware"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /ordersの画面（自分の注文）
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type ordersData struct {
	Orders         model.Page[model.Order]
	SuccessOrderID string
	Failed         bool
	RetryURL       string
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/orders")
	g.Use(auth)

	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) list(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	data := ordersData{}
	if c.QueryParam("success") == "true" {
		data.SuccessOrderID = c.QueryParam("orderId")
	}

	orders, err := h.uc.ListMine(c.Request().Context(), page)
	if isAuthError(err) {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect(c.Request().URL.RequestURI()))
	}
	if err != nil {
		data.Failed = true
		data.RetryURL = c.Request().URL.RequestURI()
		return render(c, statusOf(err), "orders", withError(Page{Title: "My orders", Data: data}, err))
	}
	data.Orders = orders
	return render(c, http.StatusOK, "orders", Page{Title: "My orders", Data: data})
}

func (h *OrderHandler) detail(c echo.Context) error {
	o, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if isAuthError(err) {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect(c.Request().URL.RequestURI()))
	}
	if err != nil {
		return render(c, statusOf(err), "error", withError(Page{Title: "Order"}, err))
	}
	return render(c, http.StatusOK, "order", Page{Title: "Order " + o.OrderNumber, Data: o})
}
