package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
)

type AdminOrderUsecase struct {
	orders repo.OrderRepository
	audit  auditor
	logs   repo.AuditLogRepository
}

// DI
func NewAdminOrderUsecase(orders repo.OrderRepository, auditRepo repo.AuditLogRepository, clock Clock, logger *zap.Logger) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		orders: orders,
		audit:  auditor{repo: auditRepo, clock: orSystemClock(clock), logger: orNop(logger)},
		logs:   auditRepo,
	}
}

// 注文一覧（新しい順）
func (u *AdminOrderUsecase) List(ctx context.Context, q repo.PageQuery) (model.Page[model.Order], error) {
	q, err := adminPage(q, ordersSort)
	if err != nil {
		return model.Page[model.Order]{}, err
	}
	p, err := u.orders.ListAll(ctx, q)
	if err != nil {
		return model.Page[model.Order]{}, fromRemote(err, "Failed to load orders")
	}
	return p, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID string) (model.Order, error) {
	if err := requireID(orderID, "invalid id"); err != nil {
		return model.Order{}, err
	}
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, fromRemote(err, "Failed to load order")
	}
	return o, nil
}

// ステータス更新（監査ログを残す）
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actor, orderID, status string) (model.Order, error) {
	if strings.TrimSpace(actor) == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := requireID(orderID, "invalid id"); err != nil {
		return model.Order{}, err
	}
	newStatus := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !newStatus.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	before, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, fromRemote(err, "Failed to load order")
	}
	// すでに同じなら何もしない
	if before.Status == newStatus {
		return before, nil
	}
	// 終端ガード
	if before.Status == model.OrderStatusCancelled || before.Status == model.OrderStatusDelivered {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "cannot change "+strings.ToLower(string(before.Status))+" order")
	}

	after, err := u.orders.UpdateStatus(ctx, orderID, newStatus)
	if err != nil {
		return model.Order{}, fromRemote(err, "Failed to update order status")
	}

	u.audit.record(ctx, actor, model.AuditActionUpdateOrderStatus, model.AuditResourceOrder, orderID,
		map[string]string{"status": string(before.Status)},
		map[string]string{"status": string(newStatus)},
	)
	return after, nil
}

// 決済ステータス更新（監査ログを残す）
func (u *AdminOrderUsecase) UpdatePaymentStatus(ctx context.Context, actor, orderID, status string) (model.Order, error) {
	if strings.TrimSpace(actor) == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := requireID(orderID, "invalid id"); err != nil {
		return model.Order{}, err
	}
	newStatus := model.PaymentStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !newStatus.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}

	before, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, fromRemote(err, "Failed to load order")
	}
	var beforeStatus model.PaymentStatus
	if before.Payment != nil {
		beforeStatus = before.Payment.EffectiveStatus()
	}

	after, err := u.orders.UpdatePaymentStatus(ctx, orderID, newStatus)
	if err != nil {
		return model.Order{}, fromRemote(err, "Failed to update payment status")
	}

	u.audit.record(ctx, actor, model.AuditActionUpdatePaymentStatus, model.AuditResourcePayment, orderID,
		map[string]string{"paymentStatus": string(beforeStatus)},
		map[string]string{"paymentStatus": string(newStatus)},
	)
	return after, nil
}

// 監査ログ一覧の入力
type AuditLogQuery struct {
	Action       string
	ResourceType string
	ResourceID   string
	ActorUserID  string
	From         string
	To           string
	Limit        int
	Offset       int
}

// 監査ログ一覧（期間はRFC3339）
func (u *AdminOrderUsecase) AuditLogs(ctx context.Context, q AuditLogQuery) ([]model.AuditLog, error) {
	if u.logs == nil {
		return []model.AuditLog{}, nil
	}
	if q.Limit < 0 || q.Limit > 200 || q.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	f := repo.AuditLogFilter{Limit: q.Limit, Offset: q.Offset}
	if s := strings.TrimSpace(q.Action); s != "" {
		a := model.AuditAction(strings.ToUpper(s))
		f.Action = &a
	}
	if s := strings.TrimSpace(q.ResourceType); s != "" {
		rt := model.AuditResourceType(strings.ToLower(s))
		f.ResourceType = &rt
	}
	if s := strings.TrimSpace(q.ResourceID); s != "" {
		f.ResourceID = &s
	}
	if s := strings.TrimSpace(q.ActorUserID); s != "" {
		f.ActorUserID = &s
	}
	if q.From != "" {
		t, ok := parseDateTimeRFC3339(q.From)
		if !ok {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid from")
		}
		f.CreatedFrom = t
	}
	if q.To != "" {
		t, ok := parseDateTimeRFC3339(q.To)
		if !ok {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid to")
		}
		f.CreatedTo = t
	}

	logs, err := u.logs.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

func parseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
