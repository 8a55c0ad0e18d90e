package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 公開カタログの画面（/, /shop, /search, /products/:slug）
type ProductHandler struct {
	products   *usecase.ProductUsecase
	categories *usecase.CategoryUsecase
}

// DI
func NewProductHandler(products *usecase.ProductUsecase, categories *usecase.CategoryUsecase) *ProductHandler {
	return &ProductHandler{products: products, categories: categories}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.home)
	e.GET("/shop", h.shop)
	e.GET("/search", h.shop)
	e.GET("/products/:slug", h.detail)
}

type homeData struct {
	Featured   []model.Product
	Categories []model.Category
}

func (h *ProductHandler) home(c echo.Context) error {
	ctx := c.Request().Context()

	featured, err := h.products.Featured(ctx)
	cats, _ := h.categories.List(ctx)

	p := withError(Page{Title: "Home", Data: homeData{Featured: featured, Categories: cats}}, err)
	return render(c, http.StatusOK, "home", p)
}

// 並び順の選択肢
var shopSorts = []string{"name,asc", "name,desc", "price,asc", "price,desc", "createdAt,desc"}

type shopData struct {
	Result     model.Page[model.Product]
	Term       string
	Category   string
	MinPrice   string
	MaxPrice   string
	InStock    bool
	Sort       string
	Sorts      []string
	Categories []model.Category
	PrevURL    string
	NextURL    string
}

func (h *ProductHandler) shop(c echo.Context) error {
	ctx := c.Request().Context()
	data := shopData{
		Term:     strings.TrimSpace(c.QueryParam("q")),
		Category: c.QueryParam("category"),
		MinPrice: c.QueryParam("minPrice"),
		MaxPrice: c.QueryParam("maxPrice"),
		InStock:  c.QueryParam("inStock") == "true",
		Sort:     c.QueryParam("sort"),
		Sorts:    shopSorts,
	}
	data.Categories, _ = h.categories.List(ctx)

	in, err := searchInput(c, data)
	if err == nil {
		data.Result, err = h.products.Search(ctx, in)
	}
	if err != nil {
		return render(c, statusOf(err), "shop", withError(Page{Title: "Shop", Data: data}, err))
	}

	if data.Result.HasPrev() {
		data.PrevURL = pageURL(c, data.Result.Page-1)
	}
	if data.Result.HasNext() {
		data.NextURL = pageURL(c, data.Result.Page+1)
	}

	title := "Shop"
	if data.Term != "" {
		title = "Search: " + data.Term
	}
	return render(c, http.StatusOK, "shop", Page{Title: title, Data: data})
}

func searchInput(c echo.Context, data shopData) (usecase.SearchProductsInput, error) {
	in := usecase.SearchProductsInput{Term: data.Term, Sort: data.Sort}
	if data.Category != "" {
		in.CategoryIDs = strings.Split(data.Category, ",")
	}
	if data.InStock {
		t := true
		in.InStock = &t
	}

	var err error
	if in.MinPrice, err = decimalParam(data.MinPrice, "minPrice"); err != nil {
		return in, err
	}
	if in.MaxPrice, err = decimalParam(data.MaxPrice, "maxPrice"); err != nil {
		return in, err
	}
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		in.Page = p
	}
	if v := c.QueryParam("size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "invalid size")
		}
		in.Size = s
	}
	return in, nil
}

func decimalParam(v, name string) (*decimal.Decimal, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return &d, nil
}

// 現在の検索条件のままページだけ変える
func pageURL(c echo.Context, page int) string {
	q := url.Values{}
	for k, v := range c.QueryParams() {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return c.Request().URL.Path + "?" + q.Encode()
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.products.BySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return render(c, statusOf(err), "error", withError(Page{Title: "Product not found"}, err))
	}
	return render(c, http.StatusOK, "product", Page{Title: p.Name, Data: p})
}
