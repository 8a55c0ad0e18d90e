package model

import "github.com/shopspring/decimal"

// 商品（リモートAPIのスナップショット）
type Product struct {
	ID               string             `json:"id"`
	SKU              string             `json:"sku"`
	Name             string             `json:"name"`
	Slug             string             `json:"slug"`
	ShortDescription string             `json:"shortDescription,omitempty"`
	Description      string             `json:"description,omitempty"`
	Price            decimal.Decimal    `json:"price"`
	SalePrice        *decimal.Decimal   `json:"salePrice,omitempty"`
	StockQuantity    int                `json:"stockQuantity"`
	Categories       []Category         `json:"categories,omitempty"`
	Attributes       []ProductAttribute `json:"attributes,omitempty"`
	Images           []ProductImage     `json:"images,omitempty"`
}

// 商品に紐づく属性（オプションは複数可）
type ProductAttribute struct {
	AttributeID string                   `json:"attributeId"`
	Options     []ProductAttributeOption `json:"options"`
}

type ProductAttributeOption struct {
	OptionID string `json:"optionId"`
}

// セール価格があり、通常価格より安いときだけ採用
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.LessThan(p.Price) {
		return *p.SalePrice
	}
	return p.Price
}

func (p Product) OnSale() bool {
	return p.SalePrice != nil && p.SalePrice.LessThan(p.Price)
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// isPrimaryの画像、なければ先頭
func (p Product) PrimaryImage() (ProductImage, bool) {
	if len(p.Images) == 0 {
		return ProductImage{}, false
	}
	for _, img := range p.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	return p.Images[0], true
}
