package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Get(ctx context.Context) (*model.Cart, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(*model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) AddItem(ctx context.Context, productID string, quantity int) (*model.Cart, error) {
	args := m.Called(ctx, productID, quantity)
	c, _ := args.Get(0).(*model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpdateItem(ctx context.Context, itemID string, quantity int) (*model.Cart, error) {
	args := m.Called(ctx, itemID, quantity)
	c, _ := args.Get(0).(*model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) RemoveItem(ctx context.Context, itemID string) (*model.Cart, error) {
	args := m.Called(ctx, itemID)
	c, _ := args.Get(0).(*model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	args := m.Called(ctx, req)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ProcessPayment(ctx context.Context, orderID string, req model.ProcessPaymentRequest) (model.Order, error) {
	args := m.Called(ctx, orderID, req)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListMine(ctx context.Context, q repo.PageQuery) (model.Page[model.Order], error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(model.Page[model.Order])
	return p, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context, q repo.PageQuery) (model.Page[model.Order], error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(model.Page[model.Order])
	return p, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	args := m.Called(ctx, orderID, status)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) (model.Order, error) {
	args := m.Called(ctx, orderID, status)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.PageQuery) (model.Page[model.Product], error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(model.Page[model.Product])
	return p, args.Error(1)
}

func (m *ProductRepoMock) Search(ctx context.Context, s repo.ProductSearch) (model.Page[model.Product], error) {
	args := m.Called(ctx, s)
	p, _ := args.Get(0).(model.Page[model.Product])
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, in repo.ProductInput) (model.Product, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, id string, in repo.ProductInput) (model.Product, error) {
	args := m.Called(ctx, id, in)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) UpdateAttributes(ctx context.Context, id string, attrs []repo.AttributeSelection) (model.Product, error) {
	args := m.Called(ctx, id, attrs)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MediaRepoMock struct{ mock.Mock }

func (m *MediaRepoMock) ListImages(ctx context.Context, productID string) ([]model.ProductImage, error) {
	args := m.Called(ctx, productID)
	imgs, _ := args.Get(0).([]model.ProductImage)
	return imgs, args.Error(1)
}

func (m *MediaRepoMock) Upload(ctx context.Context, productID string, in repo.ImageUpload) (model.ProductImage, error) {
	args := m.Called(ctx, productID, in)
	img, _ := args.Get(0).(model.ProductImage)
	return img, args.Error(1)
}

func (m *MediaRepoMock) UpdateImage(ctx context.Context, publicID string, in repo.ImageUpdate) (model.ProductImage, error) {
	args := m.Called(ctx, publicID, in)
	img, _ := args.Get(0).(model.ProductImage)
	return img, args.Error(1)
}

func (m *MediaRepoMock) DeleteImage(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func (m *MediaRepoMock) DeleteAll(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MediaRepoMock) OpenImage(ctx context.Context, publicID string) (*model.ImageStream, error) {
	args := m.Called(ctx, publicID)
	s, _ := args.Get(0).(*model.ImageStream)
	return s, args.Error(1)
}

func (m *MediaRepoMock) OpenPrimaryImage(ctx context.Context, productID string) (*model.ImageStream, *model.ProductImage, error) {
	args := m.Called(ctx, productID)
	s, _ := args.Get(0).(*model.ImageStream)
	img, _ := args.Get(1).(*model.ProductImage)
	return s, img, args.Error(2)
}

type SessionRepoMock struct{ mock.Mock }

func (m *SessionRepoMock) Register(ctx context.Context, req repo.RegisterRequest) (repo.SessionGrant, error) {
	args := m.Called(ctx, req)
	g, _ := args.Get(0).(repo.SessionGrant)
	return g, args.Error(1)
}

func (m *SessionRepoMock) Login(ctx context.Context, email, password string) (repo.SessionGrant, error) {
	args := m.Called(ctx, email, password)
	g, _ := args.Get(0).(repo.SessionGrant)
	return g, args.Error(1)
}

func (m *SessionRepoMock) Current(ctx context.Context) (model.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *SessionRepoMock) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// =====================
// Fixed clock / ids
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct {
	ids []string
	n   int
}

func (s *seqIDs) NewID() string {
	id := s.ids[s.n%len(s.ids)]
	s.n++
	return id
}

// =====================
// Helper
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
