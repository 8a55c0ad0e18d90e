package usecase

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/checkout"
	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
)

const (
	msgSelectPayment = "Please select a payment method"
	msgPaymentFailed = "Payment failed. Please try again or use a different payment method."
	msgOrderFailed   = "Failed to place order"

	myOrdersPageSize = 10
	ordersSort       = "createdAt,desc"

	// カートが空のエラー後にカート画面へ戻すまでの待ち
	emptyCartRedirectDelay = 2 * time.Second
)

// 注文確定の結果
// Messageが空でなければ画面にエラーとして出す。
type PlaceOrderResult struct {
	Order         *model.Order
	CartCleared   bool
	Redirect      string
	RedirectAfter time.Duration
	Message       string
}

type OrderUsecase struct {
	orders repo.OrderRepository
	carts  repo.CartRepository
	audit  auditor
	logger *zap.Logger
}

// DI
func NewOrderUsecase(
	orders repo.OrderRepository,
	carts repo.CartRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
	logger *zap.Logger,
) *OrderUsecase {
	logger = orNop(logger)
	return &OrderUsecase{
		orders: orders,
		carts:  carts,
		audit:  auditor{repo: auditRepo, clock: orSystemClock(clock), logger: logger},
		logger: logger,
	}
}

// PlaceOrder はカート確認・注文作成・決済・カートクリアを順に行う。
// 決済に失敗した注文は取り消さずに残す（監査ログに記録）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, actor string, d *checkout.Draft) (PlaceOrderResult, error) {
	//支払方法は必須
	method := d.Contact.PaymentMethod
	if method == "" {
		return PlaceOrderResult{Message: msgSelectPayment}, NewHTTPError(http.StatusBadRequest, msgSelectPayment)
	}

	//カートを取り直す
	cart, err := u.carts.Get(ctx)
	if err != nil {
		return u.failed(fromRemote(err, msgCartFetchError))
	}
	if cart != nil {
		cart.Recalculate()
	}
	if cart.IsEmpty() {
		return PlaceOrderResult{Message: msgEmptyCart, Redirect: "/cart"}, NewHTTPError(http.StatusBadRequest, msgEmptyCart)
	}

	//注文作成
	order, err := u.orders.Create(ctx, d.CreateOrderRequest())
	if err != nil {
		return u.failed(fromRemote(err, msgOrderFailed))
	}
	u.audit.record(ctx, actor, model.AuditActionCheckoutOrderCreated, model.AuditResourceOrder, order.ID, nil, orderSnapshot(order, method))

	//カード決済
	if method.RequiresCardDetails() {
		paid, err := u.orders.ProcessPayment(ctx, order.ID, model.ProcessPaymentRequest{PaymentDetails: d.PaymentDetails()})
		if err != nil {
			u.audit.record(ctx, actor, model.AuditActionCheckoutPaymentFailed, model.AuditResourcePayment, order.ID, nil, map[string]string{"error": err.Error()})
			res, ferr := u.failed(fromRemote(err, msgPaymentFailed))
			res.Order = &order
			return res, ferr
		}
		order = paid
	}

	if paymentFailed(order, method) {
		u.audit.record(ctx, actor, model.AuditActionCheckoutPaymentFailed, model.AuditResourcePayment, order.ID, nil, orderSnapshot(order, method))
		u.logger.Warn("checkout payment failed",
			zap.String("order_id", order.ID),
			zap.String("status", string(order.Status)),
		)
		return PlaceOrderResult{Order: &order, Message: msgPaymentFailed}, NewHTTPError(http.StatusPaymentRequired, msgPaymentFailed)
	}

	//成功したときだけカートを空にする
	if err := u.carts.Clear(ctx); err != nil {
		res, ferr := u.failed(fromRemote(err, "Failed to clear cart"))
		res.Order = &order
		return res, ferr
	}
	u.audit.record(ctx, actor, model.AuditActionCheckoutCompleted, model.AuditResourceOrder, order.ID, nil, orderSnapshot(order, method))

	return PlaceOrderResult{
		Order:       &order,
		CartCleared: true,
		Redirect:    "/orders?success=true&orderId=" + url.QueryEscape(order.ID),
	}, nil
}

// エラー文言に応じて結果を作る
// "cart is empty" を含むときは少し待ってカートへ戻す。
func (u *OrderUsecase) failed(err error) (PlaceOrderResult, error) {
	msg := UserMessage(err)
	res := PlaceOrderResult{Message: msg}
	if strings.Contains(strings.ToLower(msg), "cart is empty") {
		res.Redirect = "/cart"
		res.RedirectAfter = emptyCartRedirectDelay
	}
	return res, err
}

// CANCELLED、またはカード払いで決済が無い・失敗なら失敗
func paymentFailed(o model.Order, method model.PaymentMethod) bool {
	if o.Status == model.OrderStatusCancelled {
		return true
	}
	if o.Payment == nil {
		return method.RequiresCardDetails()
	}
	return o.Payment.EffectiveStatus() == model.PaymentStatusFailed
}

// 監査ログ用（カード情報は含めない）
func orderSnapshot(o model.Order, method model.PaymentMethod) map[string]string {
	snap := map[string]string{
		"orderNumber":   o.OrderNumber,
		"status":        string(o.Status),
		"paymentMethod": string(method),
		"totalAmount":   o.TotalAmount.StringFixed(2),
	}
	if o.Payment != nil {
		snap["paymentStatus"] = string(o.Payment.EffectiveStatus())
	}
	return snap
}

// ListMine はログイン中ユーザーの注文を新しい順に返す。
func (u *OrderUsecase) ListMine(ctx context.Context, page int) (model.Page[model.Order], error) {
	if page < 0 {
		page = 0
	}
	p, err := u.orders.ListMine(ctx, repo.PageQuery{Page: page, Size: myOrdersPageSize, Sort: ordersSort})
	if err != nil {
		return model.Page[model.Order]{}, fromRemote(err, "Failed to load orders")
	}
	return p, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID string) (model.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, fromRemote(err, "Failed to load order")
	}
	return o, nil
}
