package commerce_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/infra/commerce"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =====================
// helper
// =====================

func newTestClient(t *testing.T, h http.Handler) *commerce.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return commerce.NewClient(srv.URL+"/api", "SESSION", 5*time.Second, zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =====================
// Cart
// =====================

func TestCartRepository_AddItem_ForwardsSessionAndBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		ck, err := r.Cookie("SESSION")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", ck.Value)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p-1", body["productId"])
		assert.Equal(t, float64(2), body["quantity"])

		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{
				{"id": "ci-1", "quantity": 2, "currentPrice": 9.5, "product": map[string]any{"id": "p-1", "name": "Tea"}},
			},
			"totalItems": 2,
			"totalPrice": 19,
		})
	})

	c := newTestClient(t, mux)
	carts := commerce.NewCartRepository(c)

	ctx := model.WithSessionToken(context.Background(), "tok-1")
	cart, err := carts.AddItem(ctx, "p-1", 2)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "Tea", cart.Items[0].Product.Name)
}

func TestCartRepository_RemoveItem_NoContentRefetches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/items/ci-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"items": []any{}, "totalItems": 0, "totalPrice": 0})
	})

	carts := commerce.NewCartRepository(newTestClient(t, mux))

	cart, err := carts.RemoveItem(context.Background(), "ci-1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Empty(t, cart.Items)
}

func TestCartRepository_Get_Unauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Full authentication is required"})
	})

	carts := commerce.NewCartRepository(newTestClient(t, mux))

	cart, err := carts.Get(context.Background())
	assert.Nil(t, cart)
	ae, ok := repo.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "Full authentication is required", ae.Message)
	assert.True(t, repo.IsUnauthenticated(err))
}

// =====================
// エラーメッセージ
// =====================

func TestClient_ErrorMessageFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"Insufficient stock"}`, "Insufficient stock"},
		{"detail", `{"detail":"Cart is empty"}`, "Cart is empty"},
		{"error", `{"error":"Bad things"}`, "Bad things"},
		{"not json", `<html>oops</html>`, "Failed to create order"},
		{"empty message", `{"message":"  "}`, "Failed to create order"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tc.body)
			})
			orders := commerce.NewOrderRepository(newTestClient(t, mux))

			_, err := orders.Create(context.Background(), model.CreateOrderRequest{})
			ae, ok := repo.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tc.want, ae.Message)
		})
	}
}

// =====================
// Catalog
// =====================

func TestProductRepository_FindBySlug_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/slug/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	products := commerce.NewProductRepository(newTestClient(t, mux))

	_, err := products.FindBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductRepository_Search_QueryParams(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "tea", q.Get("searchTerm"))
		assert.Equal(t, "c1,c2", q.Get("categoryIds"))
		assert.Equal(t, "true", q.Get("inStock"))
		assert.Equal(t, "name,asc", q.Get("sort"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "12", q.Get("size"))
		writeJSON(w, http.StatusOK, map[string]any{"content": []any{}, "page": 1, "size": 12, "totalElements": 0, "totalPages": 0})
	})
	products := commerce.NewProductRepository(newTestClient(t, mux))

	inStock := true
	page, err := products.Search(context.Background(), repo.ProductSearch{
		SearchTerm:  " tea ",
		CategoryIDs: []string{"c1", "c2"},
		InStock:     &inStock,
		Page:        1,
		Size:        12,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}

// =====================
// Auth
// =====================

func TestSessionRepository_Login_ReturnsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "abc123", MaxAge: 3600, HttpOnly: true})
		w.WriteHeader(http.StatusOK)
	})
	sessions := commerce.NewSessionRepository(newTestClient(t, mux))

	grant, err := sessions.Login(context.Background(), "a@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", grant.Token)
	assert.Equal(t, 3600, grant.MaxAge)
}

func TestUserRepository_ExistsByEmail_BothShapes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/exists", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "plain@example.com" {
			writeJSON(w, http.StatusOK, true)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"exists": false})
	})
	users := commerce.NewUserRepository(newTestClient(t, mux))

	ok, err := users.ExistsByEmail(context.Background(), "plain@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.ExistsByEmail(context.Background(), "wrapped@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

// =====================
// Media
// =====================

func TestMediaRepository_OpenPrimaryImage_Metadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/files/products/p-1/images/primary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"publicId": "img-9", "isPrimary": true})
	})
	media := commerce.NewMediaRepository(newTestClient(t, mux))

	stream, meta, err := media.OpenPrimaryImage(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Nil(t, stream)
	require.NotNil(t, meta)
	assert.Equal(t, "img-9", meta.PublicID)
}

func TestMediaRepository_OpenImage_StreamsBytes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/files/images/img-9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("PNGDATA"))
	})
	mux.HandleFunc("/api/files/images/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	media := commerce.NewMediaRepository(newTestClient(t, mux))

	stream, err := media.OpenImage(context.Background(), "img-9")
	require.NoError(t, err)
	defer stream.Body.Close()
	b, _ := io.ReadAll(stream.Body)
	assert.Equal(t, "PNGDATA", string(b))
	assert.Equal(t, "image/png", stream.ContentType)

	_, err = media.OpenImage(context.Background(), "gone")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
