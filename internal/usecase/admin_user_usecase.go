package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

type AdminUserUsecase struct {
	users     repo.UserRepository
	validator CatalogValidator
}

func NewAdminUserUsecase(users repo.UserRepository, v CatalogValidator) *AdminUserUsecase {
	return &AdminUserUsecase{users: users, validator: v}
}

func (u *AdminUserUsecase) List(ctx context.Context, q repo.PageQuery) (model.Page[model.User], error) {
	q, err := adminPage(q, "createdAt,desc")
	if err != nil {
		return model.Page[model.User]{}, err
	}
	p, err := u.users.ListPage(ctx, q)
	if err != nil {
		return model.Page[model.User]{}, fromRemote(err, "Failed to load users")
	}
	return p, nil
}

func (u *AdminUserUsecase) Get(ctx context.Context, id string) (model.User, error) {
	if err := requireID(id, "invalid user id"); err != nil {
		return model.User{}, err
	}
	usr, err := u.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, fromRemote(err, "Failed to load user")
	}
	return usr, nil
}

func normalizeUser(in repo.UserInput) repo.UserInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = model.Role(strings.ToUpper(string(in.Role)))
	return in
}

func (u *AdminUserUsecase) Create(ctx context.Context, in repo.UserInput) (model.User, error) {
	in = normalizeUser(in)
	if in.Role == "" {
		in.Role = model.RoleCustomer
	}
	if err := u.validator.ValidateUser(in, true); err != nil {
		return model.User{}, err
	}

	exists, err := u.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return model.User{}, fromRemote(err, "Failed to create user")
	}
	if exists {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already in use")
	}

	usr, err := u.users.Create(ctx, in)
	if err != nil {
		return model.User{}, fromRemote(err, "Failed to create user")
	}
	return usr, nil
}

func (u *AdminUserUsecase) Update(ctx context.Context, id string, in repo.UserInput) (model.User, error) {
	if err := requireID(id, "invalid user id"); err != nil {
		return model.User{}, err
	}
	in = normalizeUser(in)
	if err := u.validator.ValidateUser(in, false); err != nil {
		return model.User{}, err
	}
	usr, err := u.users.Update(ctx, id, in)
	if err != nil {
		return model.User{}, fromRemote(err, "Failed to update user")
	}
	return usr, nil
}

// 自分自身は消せない
func (u *AdminUserUsecase) Delete(ctx context.Context, actor, id string) error {
	if err := requireID(id, "invalid user id"); err != nil {
		return err
	}
	if id == actor {
		return NewHTTPError(http.StatusBadRequest, "cannot delete yourself")
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return fromRemote(err, "Failed to delete user")
	}
	return nil
}

func (u *AdminUserUsecase) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, NewHTTPError(http.StatusBadRequest, "email is required")
	}
	ok, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fromRemote(err, "Failed to check email")
	}
	return ok, nil
}
