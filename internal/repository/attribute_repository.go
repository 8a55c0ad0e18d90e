package repository

import (
	"context"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

type AttributeInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// 属性と選択肢の管理
type AttributeRepository interface {
	ListPage(ctx context.Context, q PageQuery) (model.Page[model.Attribute], error)
	Create(ctx context.Context, in AttributeInput) (model.Attribute, error)
	Update(ctx context.Context, id string, in AttributeInput) (model.Attribute, error)
	Delete(ctx context.Context, id string) error

	ListOptions(ctx context.Context, attributeID string) ([]model.AttributeOption, error)
	CreateOption(ctx context.Context, attributeID string, in AttributeInput) (model.AttributeOption, error)
	UpdateOption(ctx context.Context, optionID string, in AttributeInput) (model.AttributeOption, error)
	DeleteOption(ctx context.Context, optionID string) error
}
