// Package wallet serves wallet reads through the cache. All balance
// mutations go through the ledger writer, never through this package.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"
)

// Cache is the read-through cache surface for wallets.
type Cache interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	SetWallet(ctx context.Context, wallet *models.Wallet) error
}

type Service interface {
	GetByUser(ctx context.Context, userID uint) (*models.Wallet, error)
	List(ctx context.Context) ([]models.Wallet, error)
}

type service struct {
	repo  repositories.WalletRepository
	cache Cache
}

func NewService(repo repositories.WalletRepository, cache Cache) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{
		repo:  repo,
		cache: cache,
	}
}

func (s *service) GetByUser(ctx context.Context, userID uint) (*models.Wallet, error) {
	if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
		return wallet, nil
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, domainerrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("wallet lookup failed: %w", err)
	}

	if err := s.cache.SetWallet(ctx, wallet); err != nil {
		log.Printf("failed to cache wallet: %v", err)
	}
	return wallet, nil
}

func (s *service) List(ctx context.Context) ([]models.Wallet, error) {
	wallets, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("wallet listing failed: %w", err)
	}
	return wallets, nil
}
