package commerce

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

type sessionRepository struct {
	c *Client
}

func NewSessionRepository(c *Client) repo.SessionRepository {
	return &sessionRepository{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *sessionRepository) Register(ctx context.Context, req repo.RegisterRequest) (repo.SessionGrant, error) {
	var u model.User
	grant, err := r.postForSession(ctx, "/auth/register", req, &u, "Registration failed")
	if err != nil {
		return repo.SessionGrant{}, err
	}
	if u.ID != "" || u.Email != "" {
		grant.User = &u
	}
	return grant, nil
}

func (r *sessionRepository) Login(ctx context.Context, email, password string) (repo.SessionGrant, error) {
	return r.postForSession(ctx, "/auth/login", loginRequest{Email: email, Password: password}, nil, "Login failed")
}

func (r *sessionRepository) Current(ctx context.Context) (model.User, error) {
	var u model.User
	err := r.c.doJSON(ctx, http.MethodGet, "/auth/session", nil, nil, &u, "Failed to get session")
	return u, err
}

func (r *sessionRepository) Logout(ctx context.Context) error {
	return r.c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, "Logout failed")
}

// Set-Cookieからセッション値を取り出す
func (r *sessionRepository) postForSession(ctx context.Context, path string, body any, out any, fallback string) (repo.SessionGrant, error) {
	req, err := r.c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return repo.SessionGrant{}, err
	}
	resp, err := r.c.do(req)
	if err != nil {
		return repo.SessionGrant{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return repo.SessionGrant{}, r.c.apiError(req, resp, fallback)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return repo.SessionGrant{}, err
		}
	}

	var grant repo.SessionGrant
	for _, ck := range resp.Cookies() {
		if ck.Name == r.c.cookieName && ck.Value != "" {
			grant.Token = ck.Value
			grant.MaxAge = ck.MaxAge
		}
	}
	return grant, nil
}
