package validator

import (
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/checkout"
	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/usecase"
)

type checkoutValidator struct {
	*Validator
}

// Usecaseは interface を依存注入
func NewCheckoutValidator(v *Validator) usecase.CheckoutValidator {
	return &checkoutValidator{Validator: v}
}

// 配送先（AddressLine2以外必須）
func (v *checkoutValidator) ValidateShipping(a model.Address) error {
	a = a.Trimmed()
	return v.check(a, "Please fill in all required shipping address fields")
}

func (v *checkoutValidator) ValidateBilling(a model.Address) error {
	a = a.Trimmed()
	return v.check(a, "Please fill in all required billing address fields")
}

// 支払方法とメール
func (v *checkoutValidator) ValidateContact(c checkout.Contact) error {
	c.Email = strings.TrimSpace(c.Email)
	return v.check(c, "Please select a payment method and enter your email")
}

// カード情報
func (v *checkoutValidator) ValidateCard(c checkout.CardDetails) error {
	c.HolderName = strings.TrimSpace(c.HolderName)
	c.Expiry = strings.TrimSpace(c.Expiry)
	c.CVV = strings.TrimSpace(c.CVV)
	return v.check(c, "Please check your payment details")
}
