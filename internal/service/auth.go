package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BuzzLyutic/task-auth-api/internal/auth"
	"github.com/BuzzLyutic/task-auth-api/internal/model"
	"github.com/BuzzLyutic/task-auth-api/internal/repo"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(user model.User) (string, error)
}

type AuthService struct {
	users  repo.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a USER account and returns a token for it.
// Username is checked before email. Two concurrent registrations can both
// pass the checks; the unique constraints then reject the loser with
// ErrUserAlreadyExists.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("check username: %w", err)
	}
	if exists {
		return "", fmt.Errorf("username %q: %w", username, ErrUserAlreadyExists)
	}

	exists, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", fmt.Errorf("email %q: %w", email, ErrUserAlreadyExists)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if errors.Is(err, repo.ErrorConflict) {
		return "", fmt.Errorf("username %q or email %q: %w", username, email, ErrUserAlreadyExists)
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.Issue(user)
}

// Authenticate verifies the credentials and returns a fresh token.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrorNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify password: %w", err)
	}

	return s.tokens.Issue(user)
}
