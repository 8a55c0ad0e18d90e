package repository

import (
	"context"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

type UserInput struct {
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
	Email     string     `json:"email,omitempty"`
	Password  string     `json:"password,omitempty"`
	Role      model.Role `json:"role,omitempty"`
}

// ユーザー管理（管理者用）
type UserRepository interface {
	ListPage(ctx context.Context, q PageQuery) (model.Page[model.User], error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Create(ctx context.Context, in UserInput) (model.User, error)
	Update(ctx context.Context, id string, in UserInput) (model.User, error)
	Delete(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
