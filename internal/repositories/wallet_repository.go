package repositories

import (
	"errors"

	"dilspay/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateReference  = errors.New("duplicate transaction reference")
)

// WalletRepository defines the database operations for the ledger's unit of
// work: the wallet row, its transactions, and the invoices that settle into
// it. The *ForUpdate variants take a row-level lock and are only meaningful
// inside ExecuteInTransaction.
type WalletRepository interface {
	// Core wallet operations
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	GetByIDForUpdate(id uint) (*models.Wallet, error)
	GetByUserID(userID uint) (*models.Wallet, error)
	GetByUserIDForUpdate(userID uint) (*models.Wallet, error)
	List() ([]models.Wallet, error)
	UpdateBalance(walletID uint, balance decimal.Decimal) error

	// Ledger entries
	CreateTransaction(tx *models.Transaction) error
	GetTransactionByReference(walletID uint, referencia string) (*models.Transaction, error)
	SumByTipo(walletID uint) (credito, debito decimal.Decimal, err error)

	// Invoices settling into this ledger
	GetInvoiceByTxidForUpdate(txid string) (*models.Invoice, error)
	UpdateInvoiceStatus(invoiceID uint, status string) error

	// ExecuteInTransaction runs fn against a transaction-scoped repository.
	// All writes performed by fn commit or roll back together.
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
