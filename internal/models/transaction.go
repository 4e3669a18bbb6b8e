package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds. The enum is closed: every ledger entry is either a
// credit or a debit, and Valor always carries the magnitude.
const (
	TipoCredito = "CREDITO"
	TipoDebito  = "DEBITO"
)

// Transaction is an immutable ledger entry. Corrections are modeled as new
// offsetting entries; there is no update or delete path.
type Transaction struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	WalletID   uint            `gorm:"index;not null" json:"wallet_id"`
	Tipo       string          `gorm:"size:16;not null" json:"tipo"`
	Valor      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor"`
	Referencia string          `gorm:"size:255;not null;default:''" json:"descricao"`
	CreatedAt  time.Time       `json:"data"`
}

// ValidTipo reports whether s is one of the two transaction kinds.
func ValidTipo(s string) bool {
	return s == TipoCredito || s == TipoDebito
}
