package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. PENDING is the initial state; CONFIRMED and CANCELED
// are terminal.
const (
	InvoiceStatusPending   = "PENDING"
	InvoiceStatusConfirmed = "CONFIRMED"
	InvoiceStatusCanceled  = "CANCELED"
)

// Invoice is a pending payment request. Txid is the stable external
// identifier used to correlate PSP webhooks with the invoice.
type Invoice struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"user_id"`
	Txid      string          `gorm:"size:64;uniqueIndex;not null" json:"txid"`
	Valor     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor"`
	Status    string          `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time       `json:"criado_em"`
}

// TerminalStatus reports whether an invoice status admits no further
// transitions.
func TerminalStatus(status string) bool {
	return status == InvoiceStatusConfirmed || status == InvoiceStatusCanceled
}
