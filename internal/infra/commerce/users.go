package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

type userRepository struct {
	c *Client
}

func NewUserRepository(c *Client) repo.UserRepository {
	return &userRepository{c: c}
}

func (r *userRepository) ListPage(ctx context.Context, q repo.PageQuery) (model.Page[model.User], error) {
	var out model.Page[model.User]
	err := r.c.doJSON(ctx, http.MethodGet, "/users/paginated", pageQuery(q, "createdAt,desc"), nil, &out, "Failed to fetch users")
	return out, err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.c.doJSON(ctx, http.MethodGet, "/users/"+pathID(id), nil, nil, &u, "Failed to fetch user")
	return u, notFound(err)
}

func (r *userRepository) Create(ctx context.Context, in repo.UserInput) (model.User, error) {
	var u model.User
	err := r.c.doJSON(ctx, http.MethodPost, "/users", nil, in, &u, "Failed to create user")
	return u, err
}

func (r *userRepository) Update(ctx context.Context, id string, in repo.UserInput) (model.User, error) {
	var u model.User
	err := r.c.doJSON(ctx, http.MethodPut, "/users/"+pathID(id), nil, in, &u, "Failed to update user")
	return u, notFound(err)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/users/"+pathID(id), nil, nil, nil, "Failed to delete user")
	return notFound(err)
}

// true/false そのもの、または {"exists": bool} を受け付ける
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var raw json.RawMessage
	q := url.Values{"email": {email}}
	if err := r.c.doJSON(ctx, http.MethodGet, "/users/exists", q, nil, &raw, "Failed to check user existence"); err != nil {
		return false, err
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var wrapped struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return false, err
	}
	return wrapped.Exists, nil
}
