package repository

import (
	"context"

	"github.com/sakibullah2006/dmart/internal/domain/model"

	"github.com/shopspring/decimal"
)

// ページング（pageは0始まり、sortは "name,asc" 形式）
type PageQuery struct {
	Page int
	Size int
	Sort string
}

// 商品検索の条件
type ProductSearch struct {
	SearchTerm  string
	CategoryIDs []string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStock     *bool
	Page        int
	Size        int
	Sort        string
}

// 商品の作成・更新の本体
type ProductInput struct {
	SKU              string           `json:"sku"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	Description      string           `json:"description,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	SalePrice        *decimal.Decimal `json:"salePrice,omitempty"`
	StockQuantity    int              `json:"stockQuantity"`
	CategoryIDs      []string         `json:"categoryIds,omitempty"`
}

// 商品に付ける属性の選択
type AttributeSelection struct {
	AttributeID string `json:"attributeId"`
	OptionID    string `json:"optionId"`
}

// 商品の取得・管理の窓口
type ProductRepository interface {
	List(ctx context.Context, q PageQuery) (model.Page[model.Product], error)
	Search(ctx context.Context, s ProductSearch) (model.Page[model.Product], error)

	//見つからなければErrNotFound
	FindByID(ctx context.Context, id string) (model.Product, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)

	Create(ctx context.Context, in ProductInput) (model.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (model.Product, error)
	UpdateAttributes(ctx context.Context, id string, attrs []AttributeSelection) (model.Product, error)
	Delete(ctx context.Context, id string) error
}
