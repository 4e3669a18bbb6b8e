package repositories

import (
	"dilspay/internal/models"
)

// InvoiceRepository defines the lifecycle operations on payment requests.
// Settlement-time status changes go through WalletRepository so they share
// the ledger's unit of work.
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByTxid(txid string) (*models.Invoice, error)
	UpdateStatus(invoiceID uint, status string) error
}
