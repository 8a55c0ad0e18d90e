package usecase

import (
	"context"
	"errors"
	"time"

	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// 公開カタログの読み取りキャッシュ
// キャッシュの失敗はログだけ残して本体を読む。
type catalogReader struct {
	cache  repo.CatalogCache
	ttl    time.Duration
	sfg    singleflight.Group
	logger *zap.Logger
}

func newCatalogReader(cache repo.CatalogCache, ttl time.Duration, logger *zap.Logger) *catalogReader {
	return &catalogReader{cache: cache, ttl: ttl, logger: logger}
}

// 同じキーの同時ミスは1回の読み込みにまとめる
// まとめた読み込みは最初の呼び出し元のキャンセルに引きずられない（値は引き継ぐ）。
func readThrough[T any](ctx context.Context, r *catalogReader, key string, load func(context.Context) (T, error)) (T, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := r.sfg.Do(key, func() (any, error) {
		ctx := shared
		var cached T
		err := r.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, repo.ErrCacheMiss) {
			r.logger.Warn("catalog cache get failed", zap.String("key", key), zap.Error(err))
		}

		fresh, err := load(ctx)
		if err != nil {
			return fresh, err
		}

		if err := r.cache.Set(ctx, key, fresh, r.ttl); err != nil {
			r.logger.Warn("catalog cache set failed", zap.String("key", key), zap.Error(err))
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// 管理操作のあとに呼ぶ（カタログのキーを全て消す）
func (r *catalogReader) invalidate(ctx context.Context) {
	if err := r.cache.DeletePrefix(ctx, ""); err != nil {
		r.logger.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}
