package repository

import (
	"context"
	"sync"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
)

// DB未設定のときの監査ログ
// zapに書き出しつつ直近分をメモリに持つ。
type auditLogMemoryRepository struct {
	mu     sync.Mutex
	logs   []model.AuditLog
	nextID int64
	keep   int
	logger *zap.Logger
}

func NewAuditLogMemoryRepository(keep int, logger *zap.Logger) repo.AuditLogRepository {
	if keep <= 0 {
		keep = 500
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &auditLogMemoryRepository{keep: keep, logger: logger}
}

func (r *auditLogMemoryRepository) Create(ctx context.Context, log model.AuditLog) error {
	r.mu.Lock()
	r.nextID++
	log.ID = r.nextID
	r.logs = append(r.logs, log)
	if over := len(r.logs) - r.keep; over > 0 {
		r.logs = append([]model.AuditLog(nil), r.logs[over:]...)
	}
	r.mu.Unlock()

	r.logger.Info("audit",
		zap.String("action", string(log.Action)),
		zap.String("actor_user_id", log.ActorUserID),
		zap.String("resource_type", string(log.ResourceType)),
		zap.String("resource_id", log.ResourceID),
		zap.String("after", log.AfterJSON),
	)
	return nil
}

func (r *auditLogMemoryRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.AuditLog, 0)
	skipped := 0
	limit := normalizeLimit(filter.Limit)

	//新しい順
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		l := r.logs[i]
		if !filter.Matches(l) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
