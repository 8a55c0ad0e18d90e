package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
)

const msgInvalidCredentials = "Invalid email or password"

// ログイン結果
// Tokenはブラウザに返すリモートのセッションCookieの値。
type Session struct {
	Token  string
	MaxAge int
	User   model.User
}

type AuthUsecase struct {
	sessions  repo.SessionRepository
	validator AuthValidator
	logger    *zap.Logger
}

// DI
func NewAuthUsecase(sessions repo.SessionRepository, v AuthValidator, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{sessions: sessions, validator: v, logger: orNop(logger)}
}

// Register はアカウントを作ってログイン状態にする。
// リモートがCookieを返さなければ同じ資格情報でログインし直す。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	//必須チェック
	if err := u.validator.ValidateRegister(in); err != nil {
		return Session{}, err
	}

	grant, err := u.sessions.Register(ctx, repo.RegisterRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	})
	if err != nil {
		return Session{}, fromRemote(err, "Registration failed")
	}

	if grant.Token == "" {
		return u.Login(ctx, LoginInput{Email: in.Email, Password: in.Password})
	}
	return u.complete(ctx, grant)
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := u.validator.ValidateLogin(in); err != nil {
		return Session{}, err
	}

	grant, err := u.sessions.Login(ctx, in.Email, in.Password)
	if repo.IsUnauthenticated(err) {
		return Session{}, NewHTTPError(http.StatusUnauthorized, msgInvalidCredentials)
	}
	if err != nil {
		return Session{}, fromRemote(err, "Login failed")
	}
	if grant.Token == "" {
		u.logger.Warn("login succeeded without session cookie")
		return Session{}, NewHTTPError(http.StatusBadGateway, "Login failed")
	}
	return u.complete(ctx, grant)
}

// ユーザー情報が無ければセッションから引く
func (u *AuthUsecase) complete(ctx context.Context, grant repo.SessionGrant) (Session, error) {
	s := Session{Token: grant.Token, MaxAge: grant.MaxAge}
	if grant.User != nil && grant.User.ID != "" {
		s.User = *grant.User
		return s, nil
	}
	usr, err := u.Current(model.WithSessionToken(ctx, grant.Token))
	if err != nil {
		return Session{}, err
	}
	s.User = usr
	return s, nil
}

// Current はリモートのセッションを確認する。
// 401/403は未ログイン扱い。
func (u *AuthUsecase) Current(ctx context.Context) (model.User, error) {
	if _, ok := model.SessionTokenFrom(ctx); !ok {
		return model.User{}, NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}
	usr, err := u.sessions.Current(ctx)
	if repo.IsUnauthenticated(err) {
		return model.User{}, NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}
	if err != nil {
		return model.User{}, fromRemote(err, "Failed to get session")
	}
	return usr, nil
}

// Logout はリモートの失敗に関わらずローカルのCookieを消させる。
func (u *AuthUsecase) Logout(ctx context.Context) {
	if _, ok := model.SessionTokenFrom(ctx); !ok {
		return
	}
	if err := u.sessions.Logout(ctx); err != nil {
		u.logger.Warn("remote logout failed", zap.Error(err))
	}
}
