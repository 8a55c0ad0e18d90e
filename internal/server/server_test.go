package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/handler"
	"github.com/sakibullah2006/dmart/internal/middleware"
	"github.com/sakibullah2006/dmart/internal/server"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	user model.User
	err  error
}

func (s stubSessions) Current(context.Context) (model.User, error) {
	return s.user, s.err
}

func newServer(t *testing.T, sessions middleware.SessionChecker) http.Handler {
	t.Helper()
	r, err := handler.NewRenderer()
	require.NoError(t, err)

	return server.New(server.Options{
		SessionCookieName: "SESSION",
		Hint:              middleware.NewSessionHint("test-secret", time.Minute, false),
		Sessions:          sessions,
		Renderer:          r,
	}, server.Handlers{
		Product:      &handler.ProductHandler{},
		Cart:         &handler.CartHandler{},
		Checkout:     &handler.CheckoutHandler{},
		Order:        &handler.OrderHandler{},
		Auth:         &handler.AuthHandler{},
		Image:        &handler.ImageProxyHandler{},
		AdminProduct: &handler.AdminProductHandler{},
		AdminCatalog: &handler.AdminCatalogHandler{},
		AdminOrder:   &handler.AdminOrderHandler{},
		AdminUser:    &handler.AdminUserHandler{},
	})
}

func TestServer_Health(t *testing.T) {
	srv := newServer(t, stubSessions{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServer_AdminAPI_RequiresSession(t *testing.T) {
	srv := newServer(t, stubSessions{err: usecase.NewHTTPError(http.StatusUnauthorized, "Authentication required")})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
}

func TestServer_AdminAPI_CustomerForbidden(t *testing.T) {
	srv := newServer(t, stubSessions{user: model.User{ID: "u1", Role: model.RoleCustomer}})

	req := httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: "SESSION", Value: "tok"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_CartPage_RedirectsToLogin(t *testing.T) {
	srv := newServer(t, stubSessions{err: usecase.NewHTTPError(http.StatusUnauthorized, "Authentication required")})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart?x=1", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fcart%3Fx%3D1", rec.Header().Get("Location"))
}
