package model

import "github.com/shopspring/decimal"

// セッションごとのカート（リモートが正）
// totalItems / totalPrice は常に明細から再計算する。
type Cart struct {
	ID         string          `json:"id,omitempty"`
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// 数量0以下の行を落として小計・合計を作り直す
func (c *Cart) Recalculate() {
	if c == nil {
		return
	}

	items := make([]CartItem, 0, len(c.Items))
	totalItems := 0
	totalPrice := decimal.Zero
	for _, it := range c.Items {
		if it.Quantity <= 0 {
			continue
		}
		it.Subtotal = it.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity)))
		totalItems += it.Quantity
		totalPrice = totalPrice.Add(it.Subtotal)
		items = append(items, it)
	}

	c.Items = items
	c.TotalItems = totalItems
	c.TotalPrice = totalPrice
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) FindItem(itemID string) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, it := range c.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return CartItem{}, false
}
