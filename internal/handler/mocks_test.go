package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/handler"
	"github.com/sakibullah2006/dmart/internal/middleware"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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
	return m.Called(ctx).Error(0)
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
	panic("not used in handler tests")
}

func (m *ProductRepoMock) Update(ctx context.Context, id string, in repo.ProductInput) (model.Product, error) {
	panic("not used in handler tests")
}

func (m *ProductRepoMock) UpdateAttributes(ctx context.Context, id string, attrs []repo.AttributeSelection) (model.Product, error) {
	panic("not used in handler tests")
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	panic("not used in handler tests")
}

type MediaRepoMock struct{ mock.Mock }

func (m *MediaRepoMock) ListImages(ctx context.Context, productID string) ([]model.ProductImage, error) {
	args := m.Called(ctx, productID)
	imgs, _ := args.Get(0).([]model.ProductImage)
	return imgs, args.Error(1)
}

func (m *MediaRepoMock) Upload(ctx context.Context, productID string, in repo.ImageUpload) (model.ProductImage, error) {
	panic("not used in handler tests")
}

func (m *MediaRepoMock) UpdateImage(ctx context.Context, publicID string, in repo.ImageUpdate) (model.ProductImage, error) {
	panic("not used in handler tests")
}

func (m *MediaRepoMock) DeleteImage(ctx context.Context, publicID string) error {
	panic("not used in handler tests")
}

func (m *MediaRepoMock) DeleteAll(ctx context.Context, productID string) error {
	panic("not used in handler tests")
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

// =====================
// echo helpers
// =====================

const testCookieName = "SESSION"

func newHint() *middleware.SessionHint {
	return middleware.NewSessionHint("test-secret", time.Minute, false)
}

// 描画とセッション転送だけ入れたecho
func newTestEcho(t *testing.T, hint *middleware.SessionHint) *echo.Echo {
	t.Helper()
	r, err := handler.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = r
	e.Use(middleware.ForwardSession(testCookieName, hint))
	return e
}

// リモート確認を済ませた扱いにする
func loggedIn(u model.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxUserKey, u)
			c.Set(middleware.CtxHintUserKey, u)
			c.Set(middleware.CtxUserIDKey, u.ID)
			return next(c)
		}
	}
}

func customer() model.User {
	return model.User{ID: "u1", Email: "buyer@example.com", FirstName: "Ada", LastName: "Lovelace", Role: model.RoleCustomer}
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "tok"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "tok"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
