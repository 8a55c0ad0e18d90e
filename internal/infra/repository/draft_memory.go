package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/checkout"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

type draftEntry struct {
	draft     checkout.Draft
	expiresAt time.Time
}

// チェックアウト途中の状態をプロセス内に持つ
// カード情報を外部ストアに出さないためメモリのみ。
type DraftMemoryRepository struct {
	mu      sync.Mutex
	entries map[string]draftEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewDraftMemoryRepository(ttl time.Duration) *DraftMemoryRepository {
	return &DraftMemoryRepository{
		entries: make(map[string]draftEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ repo.DraftRepository = (*DraftMemoryRepository)(nil)

// 保存はコピー（呼び出し側の変更が漏れないように）
func (r *DraftMemoryRepository) Save(ctx context.Context, d *checkout.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[d.ID] = draftEntry{draft: *d, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *DraftMemoryRepository) Find(ctx context.Context, id string) (*checkout.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if r.now().After(e.expiresAt) {
		delete(r.entries, id)
		return nil, repo.ErrNotFound
	}
	d := e.draft
	return &d, nil
}

func (r *DraftMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

// 期限切れを掃除する。ctxが終わるまで回る。
func (r *DraftMemoryRepository) RunJanitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.sweep()
		}
	}
}

func (r *DraftMemoryRepository) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, e := range r.entries {
		if now.After(e.expiresAt) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}
