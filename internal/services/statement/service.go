// Package statement implements the read side of the ledger: filtered,
// paginated, sorted listings plus exact aggregate totals computed over the
// full filtered set, independent of page size.
package statement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"
)

type Service interface {
	Query(ctx context.Context, walletID uint, p Params) (*Statement, error)
	Entry(ctx context.Context, walletID, id uint) (*Entry, error)

	// Export validates the wallet and filter and returns a streamable CSV
	// rendering. Validation errors surface here, before any byte of the
	// response body is produced.
	Export(ctx context.Context, walletID uint, p Params, opts CSVOptions) (*Export, error)
}

type service struct {
	transactions repositories.TransactionRepository
	wallets      repositories.WalletRepository
}

func NewService(transactions repositories.TransactionRepository, wallets repositories.WalletRepository) Service {
	if transactions == nil {
		panic("transaction repository is required")
	}
	if wallets == nil {
		panic("wallet repository is required")
	}
	return &service{
		transactions: transactions,
		wallets:      wallets,
	}
}

// normalize clamps pagination, resolves the sort whitelist and builds the
// repository filter. Unknown sort fields fall back to timestamp descending.
func normalize(p Params) (Params, repositories.LedgerFilter, string, error) {
	if p.Tipo != "" && !models.ValidTipo(p.Tipo) {
		return p, repositories.LedgerFilter{}, "", domainerrors.ErrInvalidTipo
	}

	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	column, ok := orderColumns[p.OrderBy]
	if !ok {
		p.OrderBy = defaultOrderBy
		p.OrderDir = defaultOrderDir
		column = orderColumns[defaultOrderBy]
	}
	if strings.ToLower(p.OrderDir) != "asc" {
		p.OrderDir = defaultOrderDir
	} else {
		p.OrderDir = "asc"
	}

	filter := repositories.LedgerFilter{
		Tipo:  p.Tipo,
		Start: parseTime(p.Start, false),
		End:   parseTime(p.End, true),
	}
	return p, filter, column, nil
}

func (s *service) Query(ctx context.Context, walletID uint, p Params) (*Statement, error) {
	if _, err := s.wallets.GetByID(walletID); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, domainerrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("wallet lookup failed: %w", err)
	}

	p, filter, column, err := normalize(p)
	if err != nil {
		return nil, err
	}

	totals, err := s.transactions.Aggregate(ctx, walletID, filter)
	if err != nil {
		return nil, fmt.Errorf("statement aggregation failed: %w", err)
	}

	offset := (p.Page - 1) * p.PageSize
	items, err := s.transactions.FindPage(ctx, walletID, filter, column, p.OrderDir, p.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("statement page fetch failed: %w", err)
	}

	totalPages := (totals.Count + int64(p.PageSize) - 1) / int64(p.PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	entries := make([]Entry, 0, len(items))
	for _, t := range items {
		entries = append(entries, toEntry(t))
	}

	return &Statement{
		Items:        entries,
		Page:         p.Page,
		PageSize:     p.PageSize,
		TotalCount:   totals.Count,
		TotalPages:   totalPages,
		TotalCredito: totals.Credito,
		TotalDebito:  totals.Debito,
		Saldo:        totals.Credito.Sub(totals.Debito),
	}, nil
}

// Entry resolves one ledger entry, scoped to the given wallet. An id that
// belongs to another wallet reads as not found.
func (s *service) Entry(ctx context.Context, walletID, id uint) (*Entry, error) {
	tx, err := s.transactions.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, domainerrors.NotFound("TRANSACTION_NOT_FOUND", "transaction not found")
		}
		return nil, fmt.Errorf("transaction lookup failed: %w", err)
	}
	if tx.WalletID != walletID {
		return nil, domainerrors.NotFound("TRANSACTION_NOT_FOUND", "transaction not found")
	}

	e := toEntry(*tx)
	return &e, nil
}

func toEntry(t models.Transaction) Entry {
	return Entry{
		ID:        t.ID,
		Data:      t.CreatedAt.Format(time.RFC3339),
		Tipo:      t.Tipo,
		Valor:     t.Valor.StringFixed(2),
		Descricao: t.Referencia,
	}
}
