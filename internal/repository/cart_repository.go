package repository

import (
	"context"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

// リモートのカート（セッションはctxで渡す）
// 変更系はサーバーの最新カートを返す。
type CartRepository interface {
	Get(ctx context.Context) (*model.Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*model.Cart, error)
	UpdateItem(ctx context.Context, itemID string, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (*model.Cart, error)
	Clear(ctx context.Context) error
}
