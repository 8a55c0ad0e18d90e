package commerce

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

const defaultProductSort = "name,asc"

type productRepository struct {
	c *Client
}

func NewProductRepository(c *Client) repo.ProductRepository {
	return &productRepository{c: c}
}

func (r *productRepository) List(ctx context.Context, q repo.PageQuery) (model.Page[model.Product], error) {
	var out model.Page[model.Product]
	err := r.c.doJSON(ctx, http.MethodGet, "/products/paginated", pageQuery(q, defaultProductSort), nil, &out, "Failed to fetch products")
	return out, err
}

func (r *productRepository) Search(ctx context.Context, s repo.ProductSearch) (model.Page[model.Product], error) {
	v := pageQuery(repo.PageQuery{Page: s.Page, Size: s.Size, Sort: s.Sort}, defaultProductSort)
	if term := strings.TrimSpace(s.SearchTerm); term != "" {
		v.Set("searchTerm", term)
	}
	if len(s.CategoryIDs) > 0 {
		v.Set("categoryIds", strings.Join(s.CategoryIDs, ","))
	}
	if s.MinPrice != nil {
		v.Set("minPrice", s.MinPrice.String())
	}
	if s.MaxPrice != nil {
		v.Set("maxPrice", s.MaxPrice.String())
	}
	if s.InStock != nil {
		v.Set("inStock", strconv.FormatBool(*s.InStock))
	}

	var out model.Page[model.Product]
	err := r.c.doJSON(ctx, http.MethodGet, "/products/search", v, nil, &out, "Failed to search products")
	return out, err
}

func (r *productRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.c.doJSON(ctx, http.MethodGet, "/products/"+pathID(id), nil, nil, &p, "Failed to fetch product")
	return p, notFound(err)
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	err := r.c.doJSON(ctx, http.MethodGet, "/products/slug/"+pathID(slug), nil, nil, &p, "Failed to fetch product")
	return p, notFound(err)
}

func (r *productRepository) Create(ctx context.Context, in repo.ProductInput) (model.Product, error) {
	var p model.Product
	err := r.c.doJSON(ctx, http.MethodPost, "/products", nil, in, &p, "Failed to create product")
	return p, err
}

func (r *productRepository) Update(ctx context.Context, id string, in repo.ProductInput) (model.Product, error) {
	var p model.Product
	err := r.c.doJSON(ctx, http.MethodPut, "/products/"+pathID(id), nil, in, &p, "Failed to update product")
	return p, notFound(err)
}

type productAttributesRequest struct {
	Attributes []repo.AttributeSelection `json:"attributes"`
}

func (r *productRepository) UpdateAttributes(ctx context.Context, id string, attrs []repo.AttributeSelection) (model.Product, error) {
	var p model.Product
	body := productAttributesRequest{Attributes: attrs}
	err := r.c.doJSON(ctx, http.MethodPut, "/products/"+pathID(id)+"/attributes", nil, body, &p, "Failed to update product attributes")
	return p, notFound(err)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/products/"+pathID(id), nil, nil, nil, "Failed to delete product")
	return notFound(err)
}

type categoryRepository struct {
	c *Client
}

func NewCategoryRepository(c *Client) repo.CategoryRepository {
	return &categoryRepository{c: c}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := r.c.doJSON(ctx, http.MethodGet, "/categories", nil, nil, &out, "Failed to fetch categories")
	return out, err
}

func (r *categoryRepository) ListPage(ctx context.Context, q repo.PageQuery) (model.Page[model.Category], error) {
	var out model.Page[model.Category]
	err := r.c.doJSON(ctx, http.MethodGet, "/categories/paginated", pageQuery(q, "name,asc"), nil, &out, "Failed to fetch categories")
	return out, err
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (model.Category, error) {
	var cat model.Category
	err := r.c.doJSON(ctx, http.MethodGet, "/categories/"+pathID(id), nil, nil, &cat, "Failed to fetch category")
	return cat, notFound(err)
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	var cat model.Category
	err := r.c.doJSON(ctx, http.MethodGet, "/categories/slug/"+pathID(slug), nil, nil, &cat, "Failed to fetch category")
	return cat, notFound(err)
}

func (r *categoryRepository) Create(ctx context.Context, in repo.CategoryInput) (model.Category, error) {
	var cat model.Category
	err := r.c.doJSON(ctx, http.MethodPost, "/categories", nil, in, &cat, "Failed to create category")
	return cat, err
}

func (r *categoryRepository) Update(ctx context.Context, id string, in repo.CategoryInput) (model.Category, error) {
	var cat model.Category
	err := r.c.doJSON(ctx, http.MethodPut, "/categories/"+pathID(id), nil, in, &cat, "Failed to update category")
	return cat, notFound(err)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/categories/"+pathID(id), nil, nil, nil, "Failed to delete category")
	return notFound(err)
}

type attributeRepository struct {
	c *Client
}

func NewAttributeRepository(c *Client) repo.AttributeRepository {
	return &attributeRepository{c: c}
}

func (r *attributeRepository) ListPage(ctx context.Context, q repo.PageQuery) (model.Page[model.Attribute], error) {
	var out model.Page[model.Attribute]
	err := r.c.doJSON(ctx, http.MethodGet, "/attributes/paginated", pageQuery(q, "name,asc"), nil, &out, "Failed to fetch attributes")
	return out, err
}

func (r *attributeRepository) Create(ctx context.Context, in repo.AttributeInput) (model.Attribute, error) {
	var a model.Attribute
	err := r.c.doJSON(ctx, http.MethodPost, "/attributes", nil, in, &a, "Failed to create attribute")
	return a, err
}

func (r *attributeRepository) Update(ctx context.Context, id string, in repo.AttributeInput) (model.Attribute, error) {
	var a model.Attribute
	err := r.c.doJSON(ctx, http.MethodPut, "/attributes/"+pathID(id), nil, in, &a, "Failed to update attribute")
	return a, notFound(err)
}

func (r *attributeRepository) Delete(ctx context.Context, id string) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/attributes/"+pathID(id), nil, nil, nil, "Failed to delete attribute")
	return notFound(err)
}

func (r *attributeRepository) ListOptions(ctx context.Context, attributeID string) ([]model.AttributeOption, error) {
	var out []model.AttributeOption
	err := r.c.doJSON(ctx, http.MethodGet, "/attributes/"+pathID(attributeID)+"/options", nil, nil, &out, "Failed to fetch attribute options")
	return out, notFound(err)
}

func (r *attributeRepository) CreateOption(ctx context.Context, attributeID string, in repo.AttributeInput) (model.AttributeOption, error) {
	var o model.AttributeOption
	err := r.c.doJSON(ctx, http.MethodPost, "/attributes/"+pathID(attributeID)+"/options", nil, in, &o, "Failed to create attribute option")
	return o, notFound(err)
}

func (r *attributeRepository) UpdateOption(ctx context.Context, optionID string, in repo.AttributeInput) (model.AttributeOption, error) {
	var o model.AttributeOption
	err := r.c.doJSON(ctx, http.MethodPut, "/attributes/options/"+pathID(optionID), nil, in, &o, "Failed to update attribute option")
	return o, notFound(err)
}

func (r *attributeRepository) DeleteOption(ctx context.Context, optionID string) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/attributes/options/"+pathID(optionID), nil, nil, nil, "Failed to delete attribute option")
	return notFound(err)
}
