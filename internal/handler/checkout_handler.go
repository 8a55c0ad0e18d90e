package handler

import (
	"net/http"

	"github.com/sakibullah2006/dmart/internal/domain/checkout"
	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/middleware"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのウィザード画面
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type checkoutData struct {
	View    usecase.CheckoutView
	Methods []model.PaymentMethod
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/checkout")
	g.Use(auth)

	g.GET("", h.start)
	g.POST("/next", h.next)
	g.POST("/back", h.back)
	g.POST("/billing/copy", h.copyBilling)
	g.POST("/place", h.place)
}

// 毎回新しい下書きから始める
func (h *CheckoutHandler) start(c echo.Context) error {
	u, ok := middleware.UserFrom(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/checkout"))
	}

	view, err := h.uc.Start(c.Request().Context(), u)
	if err != nil {
		if statusOf(err) == http.StatusBadRequest {
			//空のカート
			return c.Redirect(http.StatusSeeOther, "/cart")
		}
		return h.failPage(c, err)
	}
	return h.renderStep(c, http.StatusOK, view, nil)
}

func (h *CheckoutHandler) next(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/checkout"))
	}
	in, err := bindStepInput(c)
	if err != nil {
		return h.failPage(c, err)
	}

	view, err := h.uc.Next(c.Request().Context(), userID, c.FormValue("draftId"), in)
	if err != nil {
		if view.Draft.ID == "" {
			return h.failPage(c, err)
		}
		return h.renderStep(c, statusOf(err), view, err)
	}
	return h.renderStep(c, http.StatusOK, view, nil)
}

func (h *CheckoutHandler) back(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/checkout"))
	}
	in, err := bindStepInput(c)
	if err != nil {
		return h.failPage(c, err)
	}

	view, err := h.uc.Back(c.Request().Context(), userID, c.FormValue("draftId"), in)
	if err != nil {
		return h.failPage(c, err)
	}
	return h.renderStep(c, http.StatusOK, view, nil)
}

func (h *CheckoutHandler) copyBilling(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/checkout"))
	}

	view, err := h.uc.CopyBilling(c.Request().Context(), userID, c.FormValue("draftId"))
	if err != nil {
		return h.failPage(c, err)
	}
	return h.renderStep(c, http.StatusOK, view, nil)
}

func (h *CheckoutHandler) place(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/checkout"))
	}
	ctx := c.Request().Context()
	draftID := c.FormValue("draftId")

	res, err := h.uc.Place(ctx, userID, draftID, usecase.StepInput{Notes: postedNotes(c)})
	if err == nil {
		return c.Redirect(http.StatusSeeOther, res.Redirect)
	}

	//少し待ってから移動
	if res.Redirect != "" && res.RedirectAfter > 0 {
		p := withError(Page{Title: "Checkout"}, err)
		p.Refresh = &Refresh{Seconds: int(res.RedirectAfter.Seconds()), URL: res.Redirect}
		return render(c, statusOf(err), "error", p)
	}
	if res.Redirect != "" {
		return c.Redirect(http.StatusSeeOther, res.Redirect)
	}
	if isAuthError(err) {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/checkout"))
	}

	//入力を残したままreviewに戻す
	view, gerr := h.uc.Get(ctx, userID, draftID)
	if gerr != nil {
		return h.failPage(c, err)
	}
	return h.renderStep(c, statusOf(err), view, err)
}

// フォームを各ステップの入力にまとめる
// 使われるのは現在のステップの分だけ。
func bindStepInput(c echo.Context) (usecase.StepInput, error) {
	var (
		addr    model.Address
		contact checkout.Contact
		card    checkout.CardDetails
	)
	for _, dst := range []any{&addr, &contact, &card} {
		if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
			return usecase.StepInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid form")
		}
	}
	addr = addr.Trimmed()
	in := usecase.StepInput{
		Shipping: &addr,
		Billing:  &addr,
		Contact:  &contact,
		Card:     &card,
	}
	//reviewから戻るときも備考は残す
	in.Notes = postedNotes(c)
	return in, nil
}

// 送られてきたときだけ備考を返す（フォームは解析済み）
func postedNotes(c echo.Context) *string {
	vals, ok := c.Request().PostForm["notes"]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func (h *CheckoutHandler) renderStep(c echo.Context, status int, view usecase.CheckoutView, err error) error {
	p := withError(Page{
		Title: "Checkout",
		Data:  checkoutData{View: view, Methods: model.PaymentMethods},
	}, err)
	return render(c, status, "checkout", p)
}

// 下書きが無いなどステップを描けないとき
func (h *CheckoutHandler) failPage(c echo.Context, err error) error {
	if isAuthError(err) {
		return c.Redirect(http.StatusSeeOther, middleware.LoginRedirect("/checkout"))
	}
	p := withError(Page{Title: "Checkout"}, err)
	p.Notice = "Please start checkout again from your cart."
	return render(c, statusOf(err), "error", p)
}
