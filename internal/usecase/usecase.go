package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/checkout"
	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
)

// ID発行（テストで差し替える）
type IDGenerator interface {
	NewID() string
}

// 現在時刻（テストで差し替える）
type Clock interface {
	Now() time.Time
}

// usecaseが入力チェックに依存する約束
type CheckoutValidator interface {
	ValidateShipping(a model.Address) error
	ValidateBilling(a model.Address) error
	ValidateContact(c checkout.Contact) error
	ValidateCard(c checkout.CardDetails) error
}

type AuthValidator interface {
	ValidateRegister(in RegisterInput) error
	ValidateLogin(in LoginInput) error
}

type CatalogValidator interface {
	ValidateProduct(in repo.ProductInput) error
	ValidateCategory(in repo.CategoryInput) error
	ValidateAttribute(in repo.AttributeInput) error
	ValidateUser(in repo.UserInput, create bool) error
}

// 登録フォーム
type RegisterInput struct {
	FirstName       string `form:"firstName" json:"firstName" validate:"required,min=2,max=100"`
	LastName        string `form:"lastName" json:"lastName" validate:"required,min=2,max=100"`
	Email           string `form:"email" json:"email" validate:"required,email"`
	Password        string `form:"password" json:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ログインフォーム
type LoginInput struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// 監査ログを書く（失敗してもリモートの結果は変えない）
type auditor struct {
	repo   repo.AuditLogRepository
	clock  Clock
	logger *zap.Logger
}

func (a auditor) record(ctx context.Context, actor string, action model.AuditAction, rt model.AuditResourceType, id string, before, after any) {
	if a.repo == nil {
		return
	}
	entry := model.AuditLog{
		ActorUserID:  actor,
		Action:       action,
		ResourceType: rt,
		ResourceID:   id,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
		CreatedAt:    a.clock.Now(),
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Error("audit log write failed",
			zap.String("action", string(action)),
			zap.String("resource_id", id),
			zap.Error(err),
		)
	}
}

func toJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func orSystemClock(c Clock) Clock {
	if c == nil {
		return systemClock{}
	}
	return c
}
