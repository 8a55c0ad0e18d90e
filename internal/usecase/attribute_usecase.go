package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

// 属性と選択肢の管理（管理者用）
type AttributeUsecase struct {
	attributes repo.AttributeRepository
	validator  CatalogValidator
}

func NewAttributeUsecase(attributes repo.AttributeRepository, v CatalogValidator) *AttributeUsecase {
	return &AttributeUsecase{attributes: attributes, validator: v}
}

func (u *AttributeUsecase) List(ctx context.Context, q repo.PageQuery) (model.Page[model.Attribute], error) {
	q, err := adminPage(q, defaultSort)
	if err != nil {
		return model.Page[model.Attribute]{}, err
	}
	p, err := u.attributes.ListPage(ctx, q)
	if err != nil {
		return model.Page[model.Attribute]{}, fromRemote(err, "Failed to load attributes")
	}
	return p, nil
}

func (u *AttributeUsecase) Create(ctx context.Context, in repo.AttributeInput) (model.Attribute, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := u.validator.ValidateAttribute(in); err != nil {
		return model.Attribute{}, err
	}
	a, err := u.attributes.Create(ctx, in)
	if err != nil {
		return model.Attribute{}, fromRemote(err, "Failed to create attribute")
	}
	return a, nil
}

func (u *AttributeUsecase) Update(ctx context.Context, id string, in repo.AttributeInput) (model.Attribute, error) {
	if err := requireID(id, "invalid attribute id"); err != nil {
		return model.Attribute{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := u.validator.ValidateAttribute(in); err != nil {
		return model.Attribute{}, err
	}
	a, err := u.attributes.Update(ctx, id, in)
	if err != nil {
		return model.Attribute{}, fromRemote(err, "Failed to update attribute")
	}
	return a, nil
}

func (u *AttributeUsecase) Delete(ctx context.Context, id string) error {
	if err := requireID(id, "invalid attribute id"); err != nil {
		return err
	}
	if err := u.attributes.Delete(ctx, id); err != nil {
		return fromRemote(err, "Failed to delete attribute")
	}
	return nil
}

func (u *AttributeUsecase) ListOptions(ctx context.Context, attributeID string) ([]model.AttributeOption, error) {
	if err := requireID(attributeID, "invalid attribute id"); err != nil {
		return nil, err
	}
	opts, err := u.attributes.ListOptions(ctx, attributeID)
	if err != nil {
		return nil, fromRemote(err, "Failed to load attribute options")
	}
	return opts, nil
}

func (u *AttributeUsecase) CreateOption(ctx context.Context, attributeID string, in repo.AttributeInput) (model.AttributeOption, error) {
	if err := requireID(attributeID, "invalid attribute id"); err != nil {
		return model.AttributeOption{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := u.validator.ValidateAttribute(in); err != nil {
		return model.AttributeOption{}, err
	}
	o, err := u.attributes.CreateOption(ctx, attributeID, in)
	if err != nil {
		return model.AttributeOption{}, fromRemote(err, "Failed to create option")
	}
	return o, nil
}

func (u *AttributeUsecase) UpdateOption(ctx context.Context, optionID string, in repo.AttributeInput) (model.AttributeOption, error) {
	if err := requireID(optionID, "invalid option id"); err != nil {
		return model.AttributeOption{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := u.validator.ValidateAttribute(in); err != nil {
		return model.AttributeOption{}, err
	}
	o, err := u.attributes.UpdateOption(ctx, optionID, in)
	if err != nil {
		return model.AttributeOption{}, fromRemote(err, "Failed to update option")
	}
	return o, nil
}

func (u *AttributeUsecase) DeleteOption(ctx context.Context, optionID string) error {
	if err := requireID(optionID, "invalid option id"); err != nil {
		return err
	}
	if err := u.attributes.DeleteOption(ctx, optionID); err != nil {
		return fromRemote(err, "Failed to delete option")
	}
	return nil
}

func requireID(id, message string) error {
	if strings.TrimSpace(id) == "" {
		return NewHTTPError(http.StatusBadRequest, message)
	}
	return nil
}
