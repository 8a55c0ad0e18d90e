package repository

import (
	"context"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

// 注文・決済の窓口
type OrderRepository interface {
	Create(ctx context.Context, req model.CreateOrderRequest) (model.Order, error)
	ProcessPayment(ctx context.Context, orderID string, req model.ProcessPaymentRequest) (model.Order, error)
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	//ログイン中ユーザーの注文
	ListMine(ctx context.Context, q PageQuery) (model.Page[model.Order], error)

	//管理者用
	ListAll(ctx context.Context, q PageQuery) (model.Page[model.Order], error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) (model.Order, error)
}
