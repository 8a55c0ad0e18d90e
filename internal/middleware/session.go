package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // string
	CtxUserKey         = "user"          // model.User（リモートで確認済み）
	CtxHintUserKey     = "hint_user"     // model.User（表示用）
	CtxSessionTokenKey = "session_token" // string
)

// リモートのセッション確認（AuthUsecaseが満たす）
type SessionChecker interface {
	Current(ctx context.Context) (model.User, error)
}

// ForwardSession はブラウザのセッションCookieをリモート呼び出し用にctxへ載せる。
// ヒントCookieがあれば表示用ユーザーとして置く。
func ForwardSession(cookieName string, hint *SessionHint) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(model.WithSessionToken(req.Context(), ck.Value)))
				c.Set(CtxSessionTokenKey, ck.Value)

				if u, ok := hint.Read(c); ok {
					c.Set(CtxHintUserKey, u)
				}
			}
			return next(c)
		}
	}
}

// RequireSession はJSON API用。未ログインは401。
func RequireSession(checker SessionChecker, hint *SessionHint) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := verify(c, checker, hint)
			if err != nil {
				if he, ok := usecase.AsHTTPError(err); ok && he.Status != http.StatusUnauthorized {
					return c.JSON(he.Status, errorJSON(he.Message))
				}
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			setUser(c, u)
			return next(c)
		}
	}
}

// RequireSessionPage は画面用。未ログインはログイン画面へ戻り先付きでリダイレクト。
func RequireSessionPage(checker SessionChecker, hint *SessionHint) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := verify(c, checker, hint)
			if err != nil {
				if he, ok := usecase.AsHTTPError(err); ok && he.Status != http.StatusUnauthorized {
					return echo.NewHTTPError(he.Status, he.Message)
				}
				return c.Redirect(http.StatusSeeOther, LoginRedirect(c.Request().URL.RequestURI()))
			}
			setUser(c, u)
			return next(c)
		}
	}
}

// ログイン後の戻り先付きURL
func LoginRedirect(target string) string {
	if !SafeRedirect(target) {
		target = "/"
	}
	return "/login?redirect=" + url.QueryEscape(target)
}

// 同一サイト内のパスだけ許す
func SafeRedirect(target string) bool {
	if target == "" || target[0] != '/' {
		return false
	}
	return len(target) < 2 || (target[1] != '/' && target[1] != '\\')
}

func verify(c echo.Context, checker SessionChecker, hint *SessionHint) (model.User, error) {
	u, err := checker.Current(c.Request().Context())
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); !ok || he.Status == http.StatusUnauthorized {
			hint.Clear(c)
		}
		return model.User{}, err
	}
	//ヒントを更新（失敗しても続ける）
	if err := hint.Issue(c, u); err != nil {
		c.Logger().Warn("session hint issue failed: ", err)
	}
	return u, nil
}

func setUser(c echo.Context, u model.User) {
	c.Set(CtxUserKey, u)
	c.Set(CtxHintUserKey, u)
	c.Set(CtxUserIDKey, u.ID)
}

// 確認済みユーザー
func UserFrom(c echo.Context) (model.User, bool) {
	u, ok := c.Get(CtxUserKey).(model.User)
	return u, ok
}

// 表示用ユーザー（ヒント由来の場合あり）
func ViewerFrom(c echo.Context) (model.User, bool) {
	u, ok := c.Get(CtxHintUserKey).(model.User)
	return u, ok
}

func SessionTokenFrom(c echo.Context) string {
	tok, _ := c.Get(CtxSessionTokenKey).(string)
	return tok
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
