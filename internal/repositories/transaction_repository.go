package repositories

import (
	"context"
	"time"

	"dilspay/internal/models"

	"github.com/shopspring/decimal"
)

// LedgerFilter narrows a wallet's ledger to a kind and/or an inclusive date
// range on the entry timestamp. Zero values mean "no constraint".
type LedgerFilter struct {
	Tipo  string
	Start *time.Time
	End   *time.Time
}

// LedgerTotals are the aggregates over the whole filtered set, independent
// of pagination.
type LedgerTotals struct {
	Count   int64
	Credito decimal.Decimal
	Debito  decimal.Decimal
}

// TransactionRepository defines the read side of the ledger: filtered,
// sorted, paginated listings and exact aggregate totals.
type TransactionRepository interface {
	GetByID(id uint) (*models.Transaction, error)

	// FindPage returns a single page of the filtered, sorted ledger.
	// orderBy must be a transactions column name; ties are broken by id
	// descending for deterministic ordering.
	FindPage(ctx context.Context, walletID uint, f LedgerFilter, orderBy, orderDir string, limit, offset int) ([]models.Transaction, error)

	// Aggregate computes count and credit/debit sums over the entire
	// filtered set, never from a page.
	Aggregate(ctx context.Context, walletID uint, f LedgerFilter) (*LedgerTotals, error)

	// FindInBatches walks the filtered, sorted ledger in fixed-size batches
	// so large exports never materialize the whole result set.
	FindInBatches(ctx context.Context, walletID uint, f LedgerFilter, orderBy, orderDir string, batchSize int, fn func(batch []models.Transaction) error) error
}
