package model_test

import (
	"testing"

	"github.com/sakibullah2006/dmart/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCart_Recalculate_TotalsFromItems(t *testing.T) {
	cart := &model.Cart{
		Items: []model.CartItem{
			{ID: "a", Quantity: 2, CurrentPrice: dec("10.50")},
			{ID: "b", Quantity: 1, CurrentPrice: dec("3.25")},
		},
		// サーバー値が壊れていても無視する
		TotalItems: 99,
		TotalPrice: dec("1"),
	}

	cart.Recalculate()

	assert.Equal(t, 3, cart.TotalItems)
	assert.True(t, dec("24.25").Equal(cart.TotalPrice), "got %s", cart.TotalPrice)
	assert.True(t, dec("21").Equal(cart.Items[0].Subtotal))
}

func TestCart_Recalculate_DropsNonPositiveQuantity(t *testing.T) {
	cart := &model.Cart{
		Items: []model.CartItem{
			{ID: "a", Quantity: 0, CurrentPrice: dec("5")},
			{ID: "b", Quantity: -1, CurrentPrice: dec("5")},
			{ID: "c", Quantity: 1, CurrentPrice: dec("5")},
		},
	}

	cart.Recalculate()

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "c", cart.Items[0].ID)
	assert.Equal(t, 1, cart.TotalItems)
}

func TestCart_Recalculate_FallsBackToProductPrice(t *testing.T) {
	sale := dec("8")
	cart := &model.Cart{
		Items: []model.CartItem{
			{ID: "a", Quantity: 2, Product: model.Product{Price: dec("10"), SalePrice: &sale}},
		},
	}

	cart.Recalculate()

	assert.True(t, dec("16").Equal(cart.TotalPrice))
}

func TestCart_IsEmpty(t *testing.T) {
	var nilCart *model.Cart
	assert.True(t, nilCart.IsEmpty())
	assert.True(t, (&model.Cart{}).IsEmpty())
	assert.False(t, (&model.Cart{Items: []model.CartItem{{ID: "a", Quantity: 1}}}).IsEmpty())
}

func TestProduct_EffectivePrice(t *testing.T) {
	higher := dec("12")
	lower := dec("7")

	assert.True(t, dec("10").Equal(model.Product{Price: dec("10")}.EffectivePrice()))
	assert.True(t, dec("10").Equal(model.Product{Price: dec("10"), SalePrice: &higher}.EffectivePrice()))
	assert.True(t, dec("7").Equal(model.Product{Price: dec("10"), SalePrice: &lower}.EffectivePrice()))
}

func TestProduct_PrimaryImage(t *testing.T) {
	p := model.Product{Images: []model.ProductImage{
		{PublicID: "first"},
		{PublicID: "main", IsPrimary: true},
	}}
	img, ok := p.PrimaryImage()
	assert.True(t, ok)
	assert.Equal(t, "main", img.PublicID)

	p.Images[1].IsPrimary = false
	img, ok = p.PrimaryImage()
	assert.True(t, ok)
	assert.Equal(t, "first", img.PublicID)

	_, ok = model.Product{}.PrimaryImage()
	assert.False(t, ok)
}
