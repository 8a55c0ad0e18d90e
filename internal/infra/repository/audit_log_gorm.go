package repository

import (
	"context"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"gorm.io/gorm"
)

// DATABASE_URL / POSTGRES_* があるときの監査ログ
type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// 新しい順。同時刻はidで並べる。
func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Scopes(auditMatch(filter), auditWindow(filter)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(normalizeLimit(filter.Limit)).
		Offset(max(filter.Offset, 0)).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// 完全一致の条件
func auditMatch(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	eq := map[string]any{}
	if f.ActorUserID != nil {
		eq["actor_user_id"] = *f.ActorUserID
	}
	if f.Action != nil {
		eq["action"] = string(*f.Action)
	}
	if f.ResourceType != nil {
		eq["resource_type"] = string(*f.ResourceType)
	}
	if f.ResourceID != nil {
		eq["resource_id"] = *f.ResourceID
	}
	return func(db *gorm.DB) *gorm.DB {
		if len(eq) == 0 {
			return db
		}
		return db.Where(eq)
	}
}

// 期間（両端を含む）
func auditWindow(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.CreatedFrom != nil {
			db = db.Where("created_at >= ?", *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			db = db.Where("created_at <= ?", *f.CreatedTo)
		}
		return db
	}
}

// 0以下・200超は50
func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
