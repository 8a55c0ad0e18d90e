package model

import "github.com/shopspring/decimal"

// カートの明細
// 商品はスナップショット、subtotal = currentPrice × quantity。
type CartItem struct {
	ID              string          `json:"id"`
	Product         Product         `json:"product"`
	Quantity        int             `json:"quantity"`
	PriceAtAddition decimal.Decimal `json:"priceAtAddition"`
	CurrentPrice    decimal.Decimal `json:"currentPrice"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// currentPriceが無ければ商品の実売価格
func (it CartItem) UnitPrice() decimal.Decimal {
	if !it.CurrentPrice.IsZero() {
		return it.CurrentPrice
	}
	return it.Product.EffectivePrice()
}

// 追加時から値段が変わったか
func (it CartItem) PriceChanged() bool {
	return !it.PriceAtAddition.IsZero() && !it.PriceAtAddition.Equal(it.UnitPrice())
}
