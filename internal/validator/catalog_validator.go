package validator

import (
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
	"github.com/sakibullah2006/dmart/internal/usecase"
)

type catalogValidator struct {
	*Validator
}

func NewCatalogValidator(v *Validator) usecase.CatalogValidator {
	return &catalogValidator{Validator: v}
}

type productFields struct {
	SKU           string `json:"sku" validate:"required,max=100"`
	Name          string `json:"name" validate:"required,max=255"`
	Slug          string `json:"slug" validate:"required,max=255"`
	StockQuantity int    `json:"stockQuantity" validate:"gte=0"`
}

func (v *catalogValidator) ValidateProduct(in repo.ProductInput) error {
	err := v.check(productFields{
		SKU:           strings.TrimSpace(in.SKU),
		Name:          strings.TrimSpace(in.Name),
		Slug:          in.Slug,
		StockQuantity: in.StockQuantity,
	}, "invalid product")

	// 価格はdecimalなので個別に見る
	fields := map[string]string{}
	if ve, ok := usecase.AsValidationError(err); ok {
		for k, m := range ve.Fields {
			fields[k] = m
		}
	}
	if in.Price.IsNegative() {
		fields["price"] = "price must not be negative"
	}
	if in.SalePrice != nil && (in.SalePrice.IsNegative() || in.SalePrice.GreaterThan(in.Price)) {
		fields["salePrice"] = "salePrice must be between 0 and price"
	}
	if len(fields) == 0 {
		return nil
	}
	return &usecase.ValidationError{Message: "invalid product", Fields: fields}
}

type nameFields struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (v *catalogValidator) ValidateCategory(in repo.CategoryInput) error {
	return v.check(nameFields{Name: strings.TrimSpace(in.Name)}, "invalid category")
}

func (v *catalogValidator) ValidateAttribute(in repo.AttributeInput) error {
	return v.check(nameFields{Name: strings.TrimSpace(in.Name)}, "invalid attribute")
}

type userFields struct {
	FirstName string     `json:"firstName" validate:"omitempty,min=2,max=100"`
	LastName  string     `json:"lastName" validate:"omitempty,min=2,max=100"`
	Email     string     `json:"email" validate:"omitempty,email"`
	Password  string     `json:"password" validate:"omitempty,min=8"`
	Role      model.Role `json:"role" validate:"omitempty,oneof=CUSTOMER ADMIN"`
}

type newUserFields struct {
	FirstName string     `json:"firstName" validate:"required,min=2,max=100"`
	LastName  string     `json:"lastName" validate:"required,min=2,max=100"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=8"`
	Role      model.Role `json:"role" validate:"required,oneof=CUSTOMER ADMIN"`
}

// createのときは全項目必須、updateは送られた項目だけ
func (v *catalogValidator) ValidateUser(in repo.UserInput, create bool) error {
	if create {
		return v.check(newUserFields(userFields{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Email:     strings.TrimSpace(in.Email),
			Password:  in.Password,
			Role:      in.Role,
		}), "invalid user")
	}
	return v.check(userFields{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Password:  in.Password,
		Role:      in.Role,
	}, "invalid user")
}
