package repository

import (
	"context"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

// 監査ログの絞り込み。nilの項目は条件にしない。
type AuditLogFilter struct {
	ActorUserID  *string
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// Matches はメモリ上の1件が条件に合うか（期間は両端を含む）
func (f AuditLogFilter) Matches(l model.AuditLog) bool {
	switch {
	case f.ActorUserID != nil && l.ActorUserID != *f.ActorUserID:
		return false
	case f.Action != nil && l.Action != *f.Action:
		return false
	case f.ResourceType != nil && l.ResourceType != *f.ResourceType:
		return false
	case f.ResourceID != nil && l.ResourceID != *f.ResourceID:
		return false
	case f.CreatedFrom != nil && l.CreatedAt.Before(*f.CreatedFrom):
		return false
	case f.CreatedTo != nil && l.CreatedAt.After(*f.CreatedTo):
		return false
	}
	return true
}

// 管理操作とチェックアウトの記録先（Postgres or メモリ）
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
