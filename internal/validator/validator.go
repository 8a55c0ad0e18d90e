package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/checkout"
	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/go-playground/validator/v10"
)

var (
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// go-playground/validatorのラッパー
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// エラーの項目名はformタグ（無ければjson）
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return lowerCamel(f.Name)
	})

	if err := registerRules(v, customRules); err != nil {
		panic(err)
	}

	return &Validator{v: v}
}

// 独自タグ
var customRules = map[string]validator.Func{
	"cardnumber":    validCardNumber,
	"expiry":        validExpiry,
	"cvv":           validCVV,
	"paymentmethod": validPaymentMethod,
}

// 登録に失敗したタグはエラーで返す（黙って無視しない）
func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return nil
}

// 空白除去後16桁の数字
func validCardNumber(fl validator.FieldLevel) bool {
	num := checkout.SanitizeCardNumber(fl.Field().String())
	return len(num) == 16 && digitsPattern.MatchString(num)
}

func validExpiry(fl validator.FieldLevel) bool {
	return expiryPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validCVV(fl validator.FieldLevel) bool {
	return cvvPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validPaymentMethod(fl validator.FieldLevel) bool {
	m := model.PaymentMethod(fl.Field().String())
	for _, known := range model.PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// 構造体を検証してValidationErrorにする
func (v *Validator) check(s any, message string) error {
	return v.checkWith(s, message, nil)
}

// overridesは 項目名 -> タグ -> 文言
func (v *Validator) checkWith(s any, message string, overrides map[string]map[string]string) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &usecase.ValidationError{Message: message}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, dup := fields[fe.Field()]; dup {
			continue
		}
		if msg, ok := overrides[fe.Field()][fe.Tag()]; ok {
			fields[fe.Field()] = msg
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &usecase.ValidationError{Message: message, Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email address"
	case "cardnumber":
		return "Card number must be 16 digits"
	case "expiry":
		return "Expiry date must be in MM/YY format"
	case "cvv":
		return "CVV must be at least 3 digits"
	case "paymentmethod":
		return "Please select a payment method"
	case "eqfield":
		return "Passwords do not match"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
