package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/infra/cache"
	repo "github.com/sakibullah2006/dmart/internal/repository"
	"github.com/sakibullah2006/dmart/internal/usecase"
	"github.com/sakibullah2006/dmart/internal/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductFixture(t *testing.T) (*usecase.ProductUsecase, *ProductRepoMock, *AuditRepoMock, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	products := new(ProductRepoMock)
	audit := new(AuditRepoMock)
	u := usecase.NewProductUsecase(
		products,
		cache.NewRedisCache(client),
		time.Minute,
		validator.NewCatalogValidator(validator.New()),
		audit,
		fixedClock{t: time.Now()},
		nil,
	)
	return u, products, audit, mr
}

var featuredQuery = repo.PageQuery{Page: 0, Size: 8, Sort: "name,asc"}

// =====================
// Catalog reads
// =====================

func TestFeatured_SecondReadHitsCache(t *testing.T) {
	u, products, _, _ := newProductFixture(t)
	products.On("List", mock.Anything, featuredQuery).
		Return(model.Page[model.Product]{Content: []model.Product{{ID: "p1", Name: "Mug", Price: decimal.NewFromInt(12)}}}, nil).Once()

	first, err := u.Featured(context.Background())
	require.NoError(t, err)
	second, err := u.Featured(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, decimal.NewFromInt(12).Equal(second[0].Price))
	products.AssertNumberOfCalls(t, "List", 1)
}

func TestFeatured_CancelledCallerDoesNotCancelSharedLoad(t *testing.T) {
	u, products, _, _ := newProductFixture(t)
	products.On("List", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), featuredQuery).
		Return(model.Page[model.Product]{Content: []model.Product{{ID: "p1", Name: "Mug", Price: decimal.NewFromInt(12)}}}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := u.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	//読み込んだ結果はキャッシュにも入っている
	again, err := u.Featured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1", again[0].ID)
	products.AssertNumberOfCalls(t, "List", 1)
}

func TestFeatured_RedisDownFallsBackToRemote(t *testing.T) {
	u, products, _, mr := newProductFixture(t)
	mr.Close()
	products.On("List", mock.Anything, featuredQuery).
		Return(model.Page[model.Product]{Content: []model.Product{{ID: "p1"}}}, nil).Twice()

	_, err := u.Featured(context.Background())
	require.NoError(t, err)
	_, err = u.Featured(context.Background())
	require.NoError(t, err)

	products.AssertNumberOfCalls(t, "List", 2)
}

func TestSearch_DefaultsAndValidation(t *testing.T) {
	u, products, _, _ := newProductFixture(t)
	products.On("Search", mock.Anything, mock.MatchedBy(func(s repo.ProductSearch) bool {
		return s.Size == 12 && s.Sort == "name,asc" && s.SearchTerm == "mug" && len(s.CategoryIDs) == 1
	})).Return(model.Page[model.Product]{}, nil).Once()

	_, err := u.Search(context.Background(), usecase.SearchProductsInput{Term: " mug ", CategoryIDs: []string{"c1", " "}})
	require.NoError(t, err)
	products.AssertExpectations(t)

	minP, maxP := decimal.NewFromInt(50), decimal.NewFromInt(10)
	_, err = u.Search(context.Background(), usecase.SearchProductsInput{MinPrice: &minP, MaxPrice: &maxP})
	assertErrContains(t, err, "minPrice must be <= maxPrice")

	_, err = u.Search(context.Background(), usecase.SearchProductsInput{Sort: "id;drop"})
	assertErrContains(t, err, "invalid sort")

	_, err = u.Search(context.Background(), usecase.SearchProductsInput{Size: 500})
	assertErrContains(t, err, "invalid size")
}

func TestBySlug_NotFound(t *testing.T) {
	u, products, _, _ := newProductFixture(t)
	products.On("FindBySlug", mock.Anything, "nope").Return(nil, repo.ErrNotFound).Once()

	_, err := u.BySlug(context.Background(), "nope")

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Product not found", he.Message)
}

func TestEnsureInStock_OutOfStock(t *testing.T) {
	u, products, _, _ := newProductFixture(t)
	products.On("FindByID", mock.Anything, "p1").Return(model.Product{ID: "p1", StockQuantity: 0}, nil).Once()

	_, err := u.EnsureInStock(context.Background(), "p1")

	assert.ErrorIs(t, err, usecase.ErrOutOfStock)
}

// =====================
// Admin
// =====================

func TestAdminCreate_GeneratesSlugAndInvalidatesCache(t *testing.T) {
	u, products, audit, _ := newProductFixture(t)
	ctx := context.Background()
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreateProduct && l.ResourceID == "p9" && l.ActorUserID == "admin-1"
	})).Return(nil).Once()

	products.On("List", mock.Anything, featuredQuery).Return(model.Page[model.Product]{}, nil).Twice()
	_, err := u.Featured(ctx)
	require.NoError(t, err)

	products.On("Create", mock.Anything, mock.MatchedBy(func(in repo.ProductInput) bool {
		return in.Slug == "blue-shirt-sku-1" && in.Name == "Blue Shirt"
	})).Return(model.Product{ID: "p9"}, nil).Once()

	p, err := u.AdminCreate(ctx, "admin-1", repo.ProductInput{
		SKU:   "SKU-1",
		Name:  " Blue Shirt ",
		Price: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", p.ID)

	_, err = u.Featured(ctx)
	require.NoError(t, err)
	products.AssertNumberOfCalls(t, "List", 2)
	audit.AssertExpectations(t)
}

func TestAdminCreate_InvalidInputNotSent(t *testing.T) {
	u, products, _, _ := newProductFixture(t)
	sale := decimal.NewFromInt(30)

	_, err := u.AdminCreate(context.Background(), "admin-1", repo.ProductInput{
		SKU:       "SKU-1",
		Name:      "Shirt",
		Price:     decimal.NewFromInt(20),
		SalePrice: &sale,
	})

	ve, ok := usecase.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "salePrice")
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
