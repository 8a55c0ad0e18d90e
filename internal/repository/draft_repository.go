package repository

import (
	"context"

	"github.com/sakibullah2006/dmart/internal/domain/checkout"
)

// チェックアウト途中の状態（プロセス内のみ）
type DraftRepository interface {
	Save(ctx context.Context, d *checkout.Draft) error

	//期限切れ・未登録はErrNotFound
	Find(ctx context.Context, id string) (*checkout.Draft, error)
	Delete(ctx context.Context, id string) error
}
