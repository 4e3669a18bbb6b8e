package repositories

import (
	"context"
	"errors"
	"fmt"

	"dilspay/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.First(&tx, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

// filtered builds the base query shared by page fetches and aggregates so
// both always see the same set.
func (r *transactionRepository) filtered(ctx context.Context, walletID uint, f LedgerFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("wallet_id = ?", walletID)
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("created_at <= ?", *f.End)
	}
	return q
}

func orderClause(orderBy, orderDir string) string {
	if orderDir != "asc" {
		orderDir = "desc"
	}
	// Tie-break on id keeps pagination deterministic across identical
	// timestamps and amounts.
	return fmt.Sprintf("%s %s, id DESC", orderBy, orderDir)
}

func (r *transactionRepository) FindPage(ctx context.Context, walletID uint, f LedgerFilter, orderBy, orderDir string, limit, offset int) ([]models.Transaction, error) {
	var items []models.Transaction
	err := r.filtered(ctx, walletID, f).
		Order(orderClause(orderBy, orderDir)).
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger page: %w", err)
	}
	return items, nil
}

func (r *transactionRepository) Aggregate(ctx context.Context, walletID uint, f LedgerFilter) (*LedgerTotals, error) {
	var totals LedgerTotals
	err := r.filtered(ctx, walletID, f).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(CASE WHEN tipo = ? THEN valor ELSE 0 END), 0) AS credito,
			COALESCE(SUM(CASE WHEN tipo = ? THEN valor ELSE 0 END), 0) AS debito`,
			models.TipoCredito, models.TipoDebito).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger: %w", err)
	}
	return &totals, nil
}

func (r *transactionRepository) FindInBatches(ctx context.Context, walletID uint, f LedgerFilter, orderBy, orderDir string, batchSize int, fn func([]models.Transaction) error) error {
	if batchSize <= 0 {
		batchSize = 500
	}
	for offset := 0; ; offset += batchSize {
		var batch []models.Transaction
		err := r.filtered(ctx, walletID, f).
			Order(orderClause(orderBy, orderDir)).
			Limit(batchSize).
			Offset(offset).
			Find(&batch).Error
		if err != nil {
			return fmt.Errorf("failed to fetch ledger batch: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}
		if err := fn(batch); err != nil {
			return err
		}
		if len(batch) < batchSize {
			return nil
		}
	}
}
