package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var (
	// ErrInvalidCredentials is the single answer to both an unknown
	// username and a wrong password, so login responses never reveal
	// whether an account exists.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
)

const minPasswordLength = 6

// AuthService registers accounts and authenticates login attempts against
// the persistent user store.
type AuthService struct {
	users  repository.UserRepository
	hasher *PasswordHasher
}

func NewAuthService(users repository.UserRepository, hasher *PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Register hashes the password and inserts the account. Uniqueness rides on
// the store's constraint; a duplicate comes back as ErrConflict with no
// partial state, since the hash is computed before the insert is attempted.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("username or email %w", repository.ErrConflict)
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the password against the stored hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Users lists every registered account. Hashes never leave the domain type
// (PasswordHash is not serialized).
func (s *AuthService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
