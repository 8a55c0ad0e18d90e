package model

import "github.com/shopspring/decimal"

// 注文明細
// APIはpriceを返すが、古い形式ではunitPrice。
type OrderItem struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"productId"`
	ProductName string           `json:"productName"`
	ProductSKU  string           `json:"productSku,omitempty"`
	Quantity    int              `json:"quantity"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
}

func (it OrderItem) EffectiveUnitPrice() decimal.Decimal {
	if it.Price != nil {
		return *it.Price
	}
	if it.UnitPrice != nil {
		return *it.UnitPrice
	}
	if it.Quantity > 0 {
		return it.Subtotal.Div(decimal.NewFromInt(int64(it.Quantity)))
	}
	return decimal.Zero
}
