package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	featuredSize      = 8
	defaultSearchSize = 12
	maxPageSize       = 100
	defaultSort       = "name,asc"
)

// 並び順の許可リスト
var productSorts = map[string]bool{
	"name,asc":       true,
	"name,desc":      true,
	"price,asc":      true,
	"price,desc":     true,
	"createdAt,desc": true,
	"createdAt,asc":  true,
}

var ErrOutOfStock = NewHTTPError(http.StatusBadRequest, "Product is out of stock")

type ProductUsecase struct {
	products  repo.ProductRepository
	catalog   *catalogReader
	validator CatalogValidator
	audit     auditor
	logger    *zap.Logger
}

// DI
func NewProductUsecase(
	products repo.ProductRepository,
	cache repo.CatalogCache,
	cacheTTL time.Duration,
	v CatalogValidator,
	auditRepo repo.AuditLogRepository,
	clock Clock,
	logger *zap.Logger,
) *ProductUsecase {
	logger = orNop(logger)
	return &ProductUsecase{
		products:  products,
		catalog:   newCatalogReader(cache, cacheTTL, logger),
		validator: v,
		audit:     auditor{repo: auditRepo, clock: orSystemClock(clock), logger: logger},
		logger:    logger,
	}
}

// 商品検索の入力（/shop, /search）
type SearchProductsInput struct {
	Term        string
	CategoryIDs []string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStock     *bool
	Sort        string
	Page        int
	Size        int
}

// Featured はトップページの商品（先頭8件）
func (u *ProductUsecase) Featured(ctx context.Context) ([]model.Product, error) {
	page, err := readThrough(ctx, u.catalog, "featured", func(ctx context.Context) (model.Page[model.Product], error) {
		return u.products.List(ctx, repo.PageQuery{Page: 0, Size: featuredSize, Sort: defaultSort})
	})
	if err != nil {
		return nil, fromRemote(err, "Failed to load products")
	}
	return page.Content, nil
}

// Search は条件付きの商品一覧。
func (u *ProductUsecase) Search(ctx context.Context, in SearchProductsInput) (model.Page[model.Product], error) {
	s, err := normalizeSearch(in)
	if err != nil {
		return model.Page[model.Product]{}, err
	}

	page, err := readThrough(ctx, u.catalog, searchKey(s), func(ctx context.Context) (model.Page[model.Product], error) {
		return u.products.Search(ctx, s)
	})
	if err != nil {
		return model.Page[model.Product]{}, fromRemote(err, "Failed to load products")
	}
	return page, nil
}

func normalizeSearch(in SearchProductsInput) (repo.ProductSearch, error) {
	if in.Page < 0 {
		return repo.ProductSearch{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	size := in.Size
	if size == 0 {
		size = defaultSearchSize
	}
	if size < 1 || size > maxPageSize {
		return repo.ProductSearch{}, NewHTTPError(http.StatusBadRequest, "invalid size")
	}
	term := strings.TrimSpace(in.Term)
	if len(term) > 100 {
		return repo.ProductSearch{}, NewHTTPError(http.StatusBadRequest, "search term too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return repo.ProductSearch{}, NewHTTPError(http.StatusBadRequest, "minPrice must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return repo.ProductSearch{}, NewHTTPError(http.StatusBadRequest, "maxPrice must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return repo.ProductSearch{}, NewHTTPError(http.StatusBadRequest, "minPrice must be <= maxPrice")
	}
	sort := strings.TrimSpace(in.Sort)
	if sort == "" {
		sort = defaultSort
	}
	if !productSorts[sort] {
		return repo.ProductSearch{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	ids := make([]string, 0, len(in.CategoryIDs))
	for _, id := range in.CategoryIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	return repo.ProductSearch{
		SearchTerm:  term,
		CategoryIDs: ids,
		MinPrice:    in.MinPrice,
		MaxPrice:    in.MaxPrice,
		InStock:     in.InStock,
		Page:        in.Page,
		Size:        size,
		Sort:        sort,
	}, nil
}

func searchKey(s repo.ProductSearch) string {
	price := func(d *decimal.Decimal) string {
		if d == nil {
			return ""
		}
		return d.String()
	}
	stock := ""
	if s.InStock != nil {
		stock = strconv.FormatBool(*s.InStock)
	}
	return fmt.Sprintf("search:q=%s|c=%s|min=%s|max=%s|stock=%s|sort=%s|p=%d|s=%d",
		strings.ToLower(s.SearchTerm), strings.Join(s.CategoryIDs, ","),
		price(s.MinPrice), price(s.MaxPrice), stock, s.Sort, s.Page, s.Size)
}

// BySlug は商品ページ用
func (u *ProductUsecase) BySlug(ctx context.Context, productSlug string) (model.Product, error) {
	productSlug = strings.TrimSpace(productSlug)
	if productSlug == "" {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	p, err := readThrough(ctx, u.catalog, "product:slug:"+productSlug, func(ctx context.Context) (model.Product, error) {
		return u.products.FindBySlug(ctx, productSlug)
	})
	return p, productError(err)
}

func (u *ProductUsecase) ByID(ctx context.Context, id string) (model.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	p, err := readThrough(ctx, u.catalog, "product:id:"+id, func(ctx context.Context) (model.Product, error) {
		return u.products.FindByID(ctx, id)
	})
	return p, productError(err)
}

// EnsureInStock はカート追加前の在庫確認。
// キャッシュを通さず最新の在庫を見る。
func (u *ProductUsecase) EnsureInStock(ctx context.Context, productID string) (model.Product, error) {
	p, err := u.products.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, productError(err)
	}
	if !p.InStock() {
		return p, ErrOutOfStock
	}
	return p, nil
}

func productError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return fromRemote(err, "Failed to load product")
}

// ===== 管理者 =====

// slugが空なら名前とSKUから作る
func productSlug(in repo.ProductInput) string {
	if s := strings.TrimSpace(in.Slug); s != "" {
		return slug.Make(s)
	}
	return slug.Make(strings.TrimSpace(in.Name) + " " + strings.TrimSpace(in.SKU))
}

func normalizeProduct(in repo.ProductInput) repo.ProductInput {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.Slug = productSlug(in)
	return in
}

func (u *ProductUsecase) AdminCreate(ctx context.Context, actor string, in repo.ProductInput) (model.Product, error) {
	in = normalizeProduct(in)
	if err := u.validator.ValidateProduct(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.Create(ctx, in)
	if err != nil {
		return model.Product{}, fromRemote(err, "Failed to create product")
	}
	u.catalog.invalidate(ctx)
	u.audit.record(ctx, actor, model.AuditActionCreateProduct, model.AuditResourceProduct, p.ID, nil, in)
	return p, nil
}

func (u *ProductUsecase) AdminUpdate(ctx context.Context, actor, id string, in repo.ProductInput) (model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	in = normalizeProduct(in)
	if err := u.validator.ValidateProduct(in); err != nil {
		return model.Product{}, err
	}

	before, err := u.products.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, productError(err)
	}
	p, err := u.products.Update(ctx, id, in)
	if err != nil {
		return model.Product{}, fromRemote(err, "Failed to update product")
	}
	u.catalog.invalidate(ctx)
	u.audit.record(ctx, actor, model.AuditActionUpdateProduct, model.AuditResourceProduct, id, productAuditView(before), in)
	return p, nil
}

func (u *ProductUsecase) AdminUpdateAttributes(ctx context.Context, actor, id string, attrs []repo.AttributeSelection) (model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	for _, a := range attrs {
		if strings.TrimSpace(a.AttributeID) == "" || strings.TrimSpace(a.OptionID) == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "attributeId and optionId are required")
		}
	}

	p, err := u.products.UpdateAttributes(ctx, id, attrs)
	if err != nil {
		return model.Product{}, fromRemote(err, "Failed to update product attributes")
	}
	u.catalog.invalidate(ctx)
	u.audit.record(ctx, actor, model.AuditActionUpdateProduct, model.AuditResourceProduct, id, nil, map[string]any{"attributes": attrs})
	return p, nil
}

func (u *ProductUsecase) AdminDelete(ctx context.Context, actor, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return fromRemote(err, "Failed to delete product")
	}
	u.catalog.invalidate(ctx)
	u.audit.record(ctx, actor, model.AuditActionDeleteProduct, model.AuditResourceProduct, id, nil, nil)
	return nil
}

// 監査ログ用（画像・説明は省く）
func productAuditView(p model.Product) map[string]any {
	v := map[string]any{
		"sku":           p.SKU,
		"name":          p.Name,
		"slug":          p.Slug,
		"price":         p.Price.String(),
		"stockQuantity": p.StockQuantity,
	}
	if p.SalePrice != nil {
		v["salePrice"] = p.SalePrice.String()
	}
	return v
}
