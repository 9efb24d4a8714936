package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepo abstracts user persistence.
type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Accounts implements registration and login verification.
type Accounts struct {
	repo UserRepo
}

func NewAccounts(repo UserRepo) *Accounts {
	return &Accounts{repo: repo}
}

// Register hashes the password and persists a new user. A taken email yields
// domain.ErrDuplicateEmail whether caught by the fast-path lookup or by the
// store's unique constraint.
func (a *Accounts) Register(ctx context.Context, name, email, rawPassword string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || rawPassword == "" {
		return nil, domain.ErrValidation
	}

	if _, err := a.repo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate looks up by email and verifies the password hash. Unknown
// email and hash mismatch are indistinguishable to the caller.
func (a *Accounts) Authenticate(ctx context.Context, email, rawPassword string) (*domain.User, error) {
	u, err := a.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(rawPassword)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}
