// Package ledger implements the write side of the wallet ledger: appending
// immutable transactions while keeping the cached wallet balance consistent
// with the sum of its entries.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"

	"github.com/shopspring/decimal"
)

// Cache is the invalidation surface the writer needs. Satisfied by
// cache.CacheService.
type Cache interface {
	InvalidateWallet(ctx context.Context, userID uint) error
}

type Service interface {
	// Append creates one immutable transaction and adjusts the wallet's
	// cached balance in the same unit of work. A non-empty referencia acts
	// as an idempotency key: a second Append with the same (wallet,
	// referencia) pair returns the existing entry without mutating state.
	Append(ctx context.Context, walletID uint, tipo string, valor decimal.Decimal, referencia string) (*models.Transaction, error)

	// VerifyBalance recomputes the ledger sums for a wallet and fails with
	// an integrity error when the cached balance has drifted.
	VerifyBalance(ctx context.Context, walletID uint) error
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

func (s *service) Append(ctx context.Context, walletID uint, tipo string, valor decimal.Decimal, referencia string) (*models.Transaction, error) {
	if !models.ValidTipo(tipo) {
		return nil, domainerrors.ErrInvalidTipo
	}
	if !valor.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	// Fast path for redeliveries: the reference already landed.
	if referencia != "" {
		if existing, err := s.repo.GetTransactionByReference(walletID, referencia); err == nil {
			return existing, nil
		}
	}

	var created *models.Transaction
	var ownerID uint
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByIDForUpdate(walletID)
		if err != nil {
			return err
		}
		ownerID = wallet.UserID

		// Re-check under the wallet lock; a concurrent append with the same
		// reference may have won the race since the fast path.
		if referencia != "" {
			if existing, err := tx.GetTransactionByReference(walletID, referencia); err == nil {
				created = existing
				return nil
			}
		}

		balance := wallet.Balance
		if tipo == models.TipoCredito {
			balance = balance.Add(valor)
		} else {
			balance = balance.Sub(valor)
		}
		if err := tx.UpdateBalance(wallet.ID, balance); err != nil {
			return err
		}

		entry := &models.Transaction{
			WalletID:   wallet.ID,
			Tipo:       tipo,
			Valor:      valor,
			Referencia: referencia,
		}
		if err := tx.CreateTransaction(entry); err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, domainerrors.ErrWalletNotFound
		}
		// The partial unique index caught a settlement race we lost. The
		// winner's entry is the canonical one.
		if errors.Is(err, repositories.ErrDuplicateReference) && referencia != "" {
			if existing, lookupErr := s.repo.GetTransactionByReference(walletID, referencia); lookupErr == nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("ledger append failed: %w", err)
	}

	if err := s.cache.InvalidateWallet(ctx, ownerID); err != nil {
		log.Printf("failed to invalidate wallet cache: %v", err)
	}

	return created, nil
}

func (s *service) VerifyBalance(ctx context.Context, walletID uint) error {
	wallet, err := s.repo.GetByID(walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return domainerrors.ErrWalletNotFound
		}
		return fmt.Errorf("failed to load wallet: %w", err)
	}

	credito, debito, err := s.repo.SumByTipo(walletID)
	if err != nil {
		return fmt.Errorf("failed to sum ledger: %w", err)
	}

	if !wallet.Balance.Equal(credito.Sub(debito)) {
		log.Printf("integrity fault: wallet %d balance=%s ledger=%s",
			walletID, wallet.Balance, credito.Sub(debito))
		return domainerrors.ErrBalanceMismatch
	}
	return nil
}
