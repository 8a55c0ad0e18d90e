package repository

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// 公開カタログの読み取りキャッシュ
type CatalogCache interface {
	//dstにJSONで復元する。無ければErrCacheMiss
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}
