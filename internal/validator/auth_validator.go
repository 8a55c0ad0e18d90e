package validator

import (
	"strings"

	"github.com/sakibullah2006/dmart/internal/usecase"
)

// 項目ごとの文言（タグ別）。無いものは共通の文言。
var authFieldMessages = map[string]map[string]string{
	"firstName": {
		"required": "First name is required",
		"min":      "First name must be at least 2 characters",
		"max":      "First name must not exceed 100 characters",
	},
	"lastName": {
		"required": "Last name is required",
		"min":      "Last name must be at least 2 characters",
		"max":      "Last name must not exceed 100 characters",
	},
	"email": {
		"required": "Email is required",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters long",
	},
	"confirmPassword": {
		"required": "Please confirm your password",
	},
}

type authValidator struct {
	*Validator
}

// Usecaseは interface を依存注入
func NewAuthValidator(v *Validator) usecase.AuthValidator {
	return &authValidator{Validator: v}
}

// 名前・メールは前後の空白を落としてから見る（パスワードはそのまま）
func (v *authValidator) ValidateRegister(in usecase.RegisterInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	return v.checkWith(in, "Please correct the highlighted fields", authFieldMessages)
}

// ログインは長さを見ない（リモートに任せる）
func (v *authValidator) ValidateLogin(in usecase.LoginInput) error {
	in.Email = strings.TrimSpace(in.Email)
	return v.checkWith(in, "Invalid email or password", authFieldMessages)
}
