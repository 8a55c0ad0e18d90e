package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
	catalog    *catalogReader
	validator  CatalogValidator
}

func NewCategoryUsecase(
	categories repo.CategoryRepository,
	cache repo.CatalogCache,
	cacheTTL time.Duration,
	v CatalogValidator,
	logger *zap.Logger,
) *CategoryUsecase {
	return &CategoryUsecase{
		categories: categories,
		catalog:    newCatalogReader(cache, cacheTTL, orNop(logger)),
		validator:  v,
	}
}

// List は絞り込み用のカテゴリ一覧
func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	cs, err := readThrough(ctx, u.catalog, "categories", u.categories.List)
	if err != nil {
		return nil, fromRemote(err, "Failed to load categories")
	}
	return cs, nil
}

func (u *CategoryUsecase) ByID(ctx context.Context, id string) (model.Category, error) {
	c, err := readThrough(ctx, u.catalog, "category:id:"+id, func(ctx context.Context) (model.Category, error) {
		return u.categories.FindByID(ctx, id)
	})
	return c, categoryError(err)
}

func (u *CategoryUsecase) BySlug(ctx context.Context, categorySlug string) (model.Category, error) {
	c, err := readThrough(ctx, u.catalog, "category:slug:"+categorySlug, func(ctx context.Context) (model.Category, error) {
		return u.categories.FindBySlug(ctx, categorySlug)
	})
	return c, categoryError(err)
}

func categoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	return fromRemote(err, "Failed to load category")
}

// ===== 管理者 =====

func (u *CategoryUsecase) AdminList(ctx context.Context, q repo.PageQuery) (model.Page[model.Category], error) {
	q, err := adminPage(q, defaultSort)
	if err != nil {
		return model.Page[model.Category]{}, err
	}
	p, err := u.categories.ListPage(ctx, q)
	if err != nil {
		return model.Page[model.Category]{}, fromRemote(err, "Failed to load categories")
	}
	return p, nil
}

func normalizeCategory(in repo.CategoryInput) repo.CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if s := strings.TrimSpace(in.Slug); s != "" {
		in.Slug = slug.Make(s)
	} else {
		in.Slug = slug.Make(in.Name)
	}
	if in.ParentCategoryID != nil && strings.TrimSpace(*in.ParentCategoryID) == "" {
		in.ParentCategoryID = nil
	}
	return in
}

func (u *CategoryUsecase) AdminCreate(ctx context.Context, in repo.CategoryInput) (model.Category, error) {
	in = normalizeCategory(in)
	if err := u.validator.ValidateCategory(in); err != nil {
		return model.Category{}, err
	}
	c, err := u.categories.Create(ctx, in)
	if err != nil {
		return model.Category{}, fromRemote(err, "Failed to create category")
	}
	u.catalog.invalidate(ctx)
	return c, nil
}

func (u *CategoryUsecase) AdminUpdate(ctx context.Context, id string, in repo.CategoryInput) (model.Category, error) {
	if strings.TrimSpace(id) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	in = normalizeCategory(in)
	if err := u.validator.ValidateCategory(in); err != nil {
		return model.Category{}, err
	}
	//自分自身を親にはできない
	if in.ParentCategoryID != nil && *in.ParentCategoryID == id {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "category cannot be its own parent")
	}
	c, err := u.categories.Update(ctx, id, in)
	if err != nil {
		return model.Category{}, fromRemote(err, "Failed to update category")
	}
	u.catalog.invalidate(ctx)
	return c, nil
}

func (u *CategoryUsecase) AdminDelete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if err := u.categories.Delete(ctx, id); err != nil {
		return fromRemote(err, "Failed to delete category")
	}
	u.catalog.invalidate(ctx)
	return nil
}

// 管理画面のページング（pageは0始まり、sizeは1〜100、既定20）
func adminPage(q repo.PageQuery, sort string) (repo.PageQuery, error) {
	if q.Page < 0 {
		return q, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if q.Size == 0 {
		q.Size = 20
	}
	if q.Size < 1 || q.Size > maxPageSize {
		return q, NewHTTPError(http.StatusBadRequest, "invalid size")
	}
	if strings.TrimSpace(q.Sort) == "" {
		q.Sort = sort
	}
	return q, nil
}
