package commerce

import (
	"context"
	"net/http"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

type cartRepository struct {
	c *Client
}

func NewCartRepository(c *Client) repo.CartRepository {
	return &cartRepository{c: c}
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r *cartRepository) Get(ctx context.Context) (*model.Cart, error) {
	var cart *model.Cart
	if err := r.c.doJSON(ctx, http.MethodGet, "/cart", nil, nil, &cart, "Failed to fetch cart"); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, productID string, quantity int) (*model.Cart, error) {
	var cart *model.Cart
	body := addCartItemRequest{ProductID: productID, Quantity: quantity}
	if err := r.c.doJSON(ctx, http.MethodPost, "/cart/items", nil, body, &cart, "Failed to add item to cart"); err != nil {
		return nil, err
	}
	return r.orRefetch(ctx, cart)
}

func (r *cartRepository) UpdateItem(ctx context.Context, itemID string, quantity int) (*model.Cart, error) {
	var cart *model.Cart
	body := updateCartItemRequest{Quantity: quantity}
	if err := r.c.doJSON(ctx, http.MethodPut, "/cart/items/"+pathID(itemID), nil, body, &cart, "Failed to update cart item"); err != nil {
		return nil, err
	}
	return r.orRefetch(ctx, cart)
}

func (r *cartRepository) RemoveItem(ctx context.Context, itemID string) (*model.Cart, error) {
	var cart *model.Cart
	if err := r.c.doJSON(ctx, http.MethodDelete, "/cart/items/"+pathID(itemID), nil, nil, &cart, "Failed to remove item from cart"); err != nil {
		return nil, err
	}
	return r.orRefetch(ctx, cart)
}

func (r *cartRepository) Clear(ctx context.Context) error {
	return r.c.doJSON(ctx, http.MethodDelete, "/cart", nil, nil, nil, "Failed to clear cart")
}

// 本文なし(204)のときは取り直す
func (r *cartRepository) orRefetch(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	if cart != nil {
		return cart, nil
	}
	return r.Get(ctx)
}
