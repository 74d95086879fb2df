package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/domain/repository"
	pkgAuth "github.com/polkiloo/dealership/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	policy Policy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, policy Policy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, policy: policy}
}

// Register creates a client account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	usr, err := u.create(ctx, login, password, model.RoleClient)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(model.Actor{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// CreateUser lets staff open an account with any role.
func (u *AuthUseCase) CreateUser(ctx context.Context, actor model.Actor, login, password string, role model.Role) (*model.User, error) {
	if err := authorizeStaff(u.policy, actor, ActionManageUsers); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domainErrors.ErrInvalidCredentials
	}
	return u.create(ctx, login, password, role)
}

func (u *AuthUseCase) create(ctx context.Context, login, password string, role model.Role) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, login, hash, role)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return usr, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(model.Actor{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the caller identity from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
