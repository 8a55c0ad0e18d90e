package cache

import (
	"context"
	"time"

	repo "github.com/sakibullah2006/dmart/internal/repository"
)

// Redis未設定のとき
type NoopCache struct{}

var _ repo.CatalogCache = NoopCache{}

func (NoopCache) Get(context.Context, string, any) error {
	return repo.ErrCacheMiss
}

func (NoopCache) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (NoopCache) DeletePrefix(context.Context, string) error {
	return nil
}
