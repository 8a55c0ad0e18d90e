package usecase

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
)

// カート操作の種類
type CartOp string

const (
	CartOpFetch  CartOp = "fetch"
	CartOpAdd    CartOp = "add"
	CartOpUpdate CartOp = "update"
	CartOpRemove CartOp = "remove"
	CartOpClear  CartOp = "clear"
)

// 画面から来る操作
type CartCommand struct {
	Op        CartOp
	ProductID string
	ItemID    string
	Quantity  int
}

// 実際にリモートへ投げる呼び出し
type CartEffect struct {
	Op        CartOp
	ProductID string
	ItemID    string
	Quantity  int
}

// 呼び出しの結果
type CartResult struct {
	Effect CartEffect
	Cart   *model.Cart
	Err    error
}

// リモートのカートのローカル写し
// Cartがnilなら未取得（または取得失敗）。
type CartState struct {
	Cart    *model.Cart
	Loading bool
	Error   string
}

const (
	msgAuthRequired   = "Authentication required"
	msgCartFetchError = "Failed to fetch cart"
	msgCartBusy       = "Your cart is being updated. Please try again."
)

// 操作をリモート呼び出しに落とす（副作用なし）
// 数量0以下のupdateはremoveに置き換える。
func PlanCart(s CartState, cmd CartCommand) (CartState, []CartEffect, error) {
	var eff CartEffect

	switch cmd.Op {
	case CartOpFetch, CartOpClear:
		eff = CartEffect{Op: cmd.Op}
	case CartOpAdd:
		if strings.TrimSpace(cmd.ProductID) == "" {
			return s, nil, NewHTTPError(http.StatusBadRequest, "invalid product")
		}
		if cmd.Quantity < 1 {
			return s, nil, NewHTTPError(http.StatusBadRequest, "Quantity must be at least 1")
		}
		eff = CartEffect{Op: CartOpAdd, ProductID: cmd.ProductID, Quantity: cmd.Quantity}
	case CartOpUpdate:
		if strings.TrimSpace(cmd.ItemID) == "" {
			return s, nil, NewHTTPError(http.StatusBadRequest, "invalid cart item")
		}
		if cmd.Quantity <= 0 {
			eff = CartEffect{Op: CartOpRemove, ItemID: cmd.ItemID}
		} else {
			eff = CartEffect{Op: CartOpUpdate, ItemID: cmd.ItemID, Quantity: cmd.Quantity}
		}
	case CartOpRemove:
		if strings.TrimSpace(cmd.ItemID) == "" {
			return s, nil, NewHTTPError(http.StatusBadRequest, "invalid cart item")
		}
		eff = CartEffect{Op: CartOpRemove, ItemID: cmd.ItemID}
	default:
		return s, nil, NewHTTPError(http.StatusBadRequest, "invalid cart operation")
	}

	next := s
	next.Loading = true
	next.Error = ""
	return next, []CartEffect{eff}, nil
}

// 結果を状態に反映する（副作用なし）
// 成功はサーバーのカートで丸ごと置き換え、取得失敗はnil、変更失敗は元のまま。
func ApplyCartResult(s CartState, res CartResult) CartState {
	next := s
	next.Loading = false

	if res.Err == nil {
		next.Error = ""
		if res.Effect.Op == CartOpClear {
			next.Cart = nil
			return next
		}
		cart := res.Cart
		if cart == nil {
			cart = &model.Cart{}
		}
		cart.Recalculate()
		next.Cart = cart
		return next
	}

	if res.Effect.Op == CartOpFetch {
		next.Cart = nil
		if repo.IsUnauthenticated(res.Err) {
			next.Error = msgAuthRequired
		} else {
			next.Error = msgCartFetchError
		}
		return next
	}

	next.Error = UserMessage(fromRemote(res.Err, cartFallback(res.Effect.Op)))
	return next
}

func cartFallback(op CartOp) string {
	switch op {
	case CartOpAdd:
		return "Failed to add item to cart"
	case CartOpUpdate:
		return "Failed to update cart item"
	case CartOpRemove:
		return "Failed to remove item from cart"
	case CartOpClear:
		return "Failed to clear cart"
	}
	return msgCartFetchError
}

// CartUsecase はリモートのカートとの同期。
type CartUsecase struct {
	carts  repo.CartRepository
	logger *zap.Logger

	mu   sync.Mutex
	busy map[string]struct{}
}

func NewCartUsecase(carts repo.CartRepository, logger *zap.Logger) *CartUsecase {
	return &CartUsecase{
		carts:  carts,
		logger: orNop(logger),
		busy:   make(map[string]struct{}),
	}
}

// Dispatch は操作を実行して新しい状態を返す。
// 変更系はセッションごとに同時に1つだけ。
func (u *CartUsecase) Dispatch(ctx context.Context, sessionKey string, s CartState, cmd CartCommand) (CartState, error) {
	next, effects, err := PlanCart(s, cmd)
	if err != nil {
		return s, err
	}

	if cmd.Op != CartOpFetch {
		if !u.acquire(sessionKey) {
			return s, NewHTTPError(http.StatusConflict, msgCartBusy)
		}
		defer u.release(sessionKey)
	}

	for _, eff := range effects {
		cart, err := u.run(ctx, eff)
		next = ApplyCartResult(next, CartResult{Effect: eff, Cart: cart, Err: err})
		if err != nil {
			u.logger.Debug("cart operation failed", zap.String("op", string(eff.Op)), zap.Error(err))
			if eff.Op == CartOpFetch && !repo.IsUnauthenticated(err) {
				return next, NewHTTPError(http.StatusBadGateway, msgCartFetchError)
			}
			return next, fromRemote(err, cartFallback(eff.Op))
		}
	}
	return next, nil
}

func (u *CartUsecase) run(ctx context.Context, eff CartEffect) (*model.Cart, error) {
	switch eff.Op {
	case CartOpFetch:
		return u.carts.Get(ctx)
	case CartOpAdd:
		return u.carts.AddItem(ctx, eff.ProductID, eff.Quantity)
	case CartOpUpdate:
		return u.carts.UpdateItem(ctx, eff.ItemID, eff.Quantity)
	case CartOpRemove:
		return u.carts.RemoveItem(ctx, eff.ItemID)
	case CartOpClear:
		return nil, u.carts.Clear(ctx)
	}
	return nil, NewHTTPError(http.StatusBadRequest, "invalid cart operation")
}

func (u *CartUsecase) acquire(key string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.busy[key]; ok {
		return false
	}
	u.busy[key] = struct{}{}
	return true
}

func (u *CartUsecase) release(key string) {
	u.mu.Lock()
	delete(u.busy, key)
	u.mu.Unlock()
}

// FetchCart はリモートのカートを取り直す。
// 401は認証エラー、それ以外の失敗はカートをnilにする。
func (u *CartUsecase) FetchCart(ctx context.Context, sessionKey string) (CartState, error) {
	return u.Dispatch(ctx, sessionKey, CartState{}, CartCommand{Op: CartOpFetch})
}

// 在庫チェックは呼び出し側で済ませる
func (u *CartUsecase) AddItem(ctx context.Context, sessionKey string, s CartState, productID string, quantity int) (CartState, error) {
	return u.Dispatch(ctx, sessionKey, s, CartCommand{Op: CartOpAdd, ProductID: productID, Quantity: quantity})
}

// 数量0以下は削除
func (u *CartUsecase) UpdateItem(ctx context.Context, sessionKey string, s CartState, itemID string, quantity int) (CartState, error) {
	return u.Dispatch(ctx, sessionKey, s, CartCommand{Op: CartOpUpdate, ItemID: itemID, Quantity: quantity})
}

func (u *CartUsecase) RemoveItem(ctx context.Context, sessionKey string, s CartState, itemID string) (CartState, error) {
	return u.Dispatch(ctx, sessionKey, s, CartCommand{Op: CartOpRemove, ItemID: itemID})
}

func (u *CartUsecase) Clear(ctx context.Context, sessionKey string, s CartState) (CartState, error) {
	return u.Dispatch(ctx, sessionKey, s, CartCommand{Op: CartOpClear})
}
