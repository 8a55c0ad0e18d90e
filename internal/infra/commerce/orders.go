package commerce

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

const defaultOrderSort = "createdAt,desc"

type orderRepository struct {
	c *Client
}

func NewOrderRepository(c *Client) repo.OrderRepository {
	return &orderRepository{c: c}
}

func (r *orderRepository) Create(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	var o model.Order
	err := r.c.doJSON(ctx, http.MethodPost, "/orders", nil, req, &o, "Failed to create order")
	return o, err
}

func (r *orderRepository) ProcessPayment(ctx context.Context, orderID string, req model.ProcessPaymentRequest) (model.Order, error) {
	var o model.Order
	err := r.c.doJSON(ctx, http.MethodPost, "/orders/"+pathID(orderID)+"/pay", nil, req, &o, "Failed to process payment")
	return o, err
}

func (r *orderRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.c.doJSON(ctx, http.MethodGet, "/orders/"+pathID(orderID), nil, nil, &o, "Failed to fetch order")
	return o, notFound(err)
}

func (r *orderRepository) ListMine(ctx context.Context, q repo.PageQuery) (model.Page[model.Order], error) {
	var out model.Page[model.Order]
	err := r.c.doJSON(ctx, http.MethodGet, "/orders/my-orders/paginated", pageQuery(q, defaultOrderSort), nil, &out, "Failed to fetch orders")
	return out, err
}

func (r *orderRepository) ListAll(ctx context.Context, q repo.PageQuery) (model.Page[model.Order], error) {
	var out model.Page[model.Order]
	err := r.c.doJSON(ctx, http.MethodGet, "/orders/paginated", pageQuery(q, defaultOrderSort), nil, &out, "Failed to fetch orders")
	return out, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	var o model.Order
	q := url.Values{"status": {string(status)}}
	err := r.c.doJSON(ctx, http.MethodPatch, "/orders/"+pathID(orderID)+"/status", q, nil, &o, "Failed to update order status")
	return o, notFound(err)
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) (model.Order, error) {
	var o model.Order
	q := url.Values{"paymentStatus": {string(status)}}
	err := r.c.doJSON(ctx, http.MethodPatch, "/orders/"+pathID(orderID)+"/payment-status", q, nil, &o, "Failed to update payment status")
	return o, notFound(err)
}
