package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const HintCookieName = "dmart_hint"

// 表示用のユーザー情報（権限判定には使わない）
type hintClaims struct {
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      model.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionHint は短命のHS256 JWTをCookieに載せる。
// 公開ページの表示だけに使い、保護されたルートは必ずリモートで確認する。
type SessionHint struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessionHint(secret string, ttl time.Duration, secure bool) *SessionHint {
	return &SessionHint{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

// 署名してCookieに書く
func (h *SessionHint) Issue(c echo.Context, u model.User) error {
	now := h.now()
	claims := hintClaims{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     HintCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *SessionHint) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     HintCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// 期限切れ・改ざんはfalse
func (h *SessionHint) Read(c echo.Context) (model.User, bool) {
	ck, err := c.Cookie(HintCookieName)
	if err != nil || ck.Value == "" {
		return model.User{}, false
	}
	return h.parse(ck.Value)
}

func (h *SessionHint) parse(raw string) (model.User, bool) {
	var claims hintClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return h.secret, nil
	})
	if err != nil || token == nil || !token.Valid || claims.Subject == "" {
		return model.User{}, false
	}
	return model.User{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      claims.Role,
	}, true
}
