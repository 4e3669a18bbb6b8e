// Package user handles registration. Every user gets exactly one wallet,
// created alongside the account.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, name, email, cpf, password string) (*models.User, *models.Wallet, error)
	Get(ctx context.Context, id uint) (*models.User, error)
}

type service struct {
	users   repositories.UserRepository
	wallets repositories.WalletRepository
}

func NewService(users repositories.UserRepository, wallets repositories.WalletRepository) Service {
	if users == nil {
		panic("user repository is required")
	}
	if wallets == nil {
		panic("wallet repository is required")
	}
	return &service{
		users:   users,
		wallets: wallets,
	}
}

func (s *service) Register(ctx context.Context, name, email, cpf, password string) (*models.User, *models.Wallet, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	cpf = strings.TrimSpace(cpf)

	if name == "" || email == "" || cpf == "" {
		return nil, nil, domainerrors.Validation("MISSING_FIELDS", "name, email and cpf are required")
	}
	if !strings.Contains(email, "@") {
		return nil, nil, domainerrors.Validation("INVALID_EMAIL", "invalid email address")
	}
	if len(password) < 8 {
		return nil, nil, domainerrors.Validation("WEAK_PASSWORD", "password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("password hashing failed: %w", err)
	}

	u := &models.User{
		Name:     name,
		Email:    email,
		CPF:      cpf,
		Password: string(hashed),
	}
	if err := s.users.Create(u); err != nil {
		return nil, nil, domainerrors.Conflict("USER_EXISTS", "email or cpf already registered")
	}

	w := &models.Wallet{UserID: u.ID}
	if err := s.wallets.Create(w); err != nil {
		return nil, nil, fmt.Errorf("wallet creation failed: %w", err)
	}

	return u, w, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerrors.NotFound("USER_NOT_FOUND", "user not found")
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return u, nil
}
