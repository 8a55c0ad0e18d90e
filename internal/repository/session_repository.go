package repository

import (
	"context"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ログイン結果
// Tokenはリモートが発行したセッションCookieの値（空の場合あり）。
type SessionGrant struct {
	Token  string
	MaxAge int
	User   *model.User
}

// リモートの認証セッション
type SessionRepository interface {
	Register(ctx context.Context, req RegisterRequest) (SessionGrant, error)
	Login(ctx context.Context, email, password string) (SessionGrant, error)

	//401/403ならAPIError
	Current(ctx context.Context) (model.User, error)
	Logout(ctx context.Context) error
}
