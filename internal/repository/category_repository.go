package repository

import (
	"context"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

type CategoryInput struct {
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Slug             string  `json:"slug,omitempty"`
	ParentCategoryID *string `json:"parentCategoryId,omitempty"`
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	ListPage(ctx context.Context, q PageQuery) (model.Page[model.Category], error)
	FindByID(ctx context.Context, id string) (model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
	Create(ctx context.Context, in CategoryInput) (model.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (model.Category, error)
	Delete(ctx context.Context, id string) error
}
