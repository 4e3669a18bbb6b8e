// Package settlement reconciles asynchronous payment confirmations delivered
// by the PSP as signed webhooks. Delivery is at-least-once, so the whole
// procedure is idempotent: replaying a confirmation never credits a wallet
// twice.
package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"

	"github.com/shopspring/decimal"
)

// paidStatuses are the PSP status values accepted as a confirmation.
var paidStatuses = map[string]struct{}{
	"CONFIRMED": {},
	"PAID":      {},
	"COMPLETED": {},
}

// Cache is the invalidation surface the reconciler needs.
type Cache interface {
	InvalidateWallet(ctx context.Context, userID uint) error
	InvalidateInvoice(ctx context.Context, txid string) error
}

type Service interface {
	// HandleWebhook authenticates and applies one PSP confirmation. Safe
	// under redelivery and under concurrent delivery of the same txid.
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) error
}

type service struct {
	invoices repositories.InvoiceRepository
	wallets  repositories.WalletRepository
	cache    Cache
	secret   string
}

func NewService(invoices repositories.InvoiceRepository, wallets repositories.WalletRepository, cache Cache, secret string) Service {
	if invoices == nil {
		panic("invoice repository is required")
	}
	if wallets == nil {
		panic("wallet repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if secret == "" {
		panic("webhook secret is required")
	}
	return &service{
		invoices: invoices,
		wallets:  wallets,
		cache:    cache,
		secret:   secret,
	}
}

type webhookPayload struct {
	Txid   string          `json:"txid"`
	Valor  decimal.Decimal `json:"valor"`
	Status string          `json:"status"`
}

// Reference returns the idempotency tag recorded on the ledger entry that
// settles txid.
func Reference(txid string) string {
	return "pix:" + txid
}

func (s *service) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	if signature == "" {
		return domainerrors.ErrMissingSignature
	}
	if !VerifySignature(s.secret, rawBody, signature) {
		return domainerrors.ErrInvalidSignature
	}

	var payload webhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return domainerrors.ErrInvalidPayload
	}
	if payload.Txid == "" || !payload.Valor.IsPositive() {
		return domainerrors.ErrInvalidPayload
	}
	if payload.Status == "" {
		payload.Status = models.InvoiceStatusConfirmed
	}

	invoice, err := s.invoices.GetByTxid(payload.Txid)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return domainerrors.ErrInvoiceNotFound
		}
		return fmt.Errorf("invoice lookup failed: %w", err)
	}

	// Redelivery short-circuit: the confirmation already took effect.
	if invoice.Status == models.InvoiceStatusConfirmed {
		return nil
	}

	if _, ok := paidStatuses[payload.Status]; !ok {
		return domainerrors.ErrPaymentNotConfirmed
	}

	var ownerID uint
	err = s.wallets.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		// Lock the invoice row first: concurrent deliveries of the same txid
		// serialize here, and the loser sees CONFIRMED on its re-check.
		inv, err := tx.GetInvoiceByTxidForUpdate(payload.Txid)
		if err != nil {
			return err
		}
		if inv.Status == models.InvoiceStatusConfirmed {
			return nil
		}

		wallet, err := tx.GetByUserIDForUpdate(inv.UserID)
		if err != nil {
			return err
		}
		ownerID = wallet.UserID

		ref := Reference(payload.Txid)

		// A prior delivery may have written the ledger entry and crashed
		// before flipping the invoice. Repair the flag without a second
		// credit.
		if _, err := tx.GetTransactionByReference(wallet.ID, ref); err == nil {
			return tx.UpdateInvoiceStatus(inv.ID, models.InvoiceStatusConfirmed)
		}

		if err := tx.UpdateBalance(wallet.ID, wallet.Balance.Add(payload.Valor)); err != nil {
			return err
		}
		entry := &models.Transaction{
			WalletID:   wallet.ID,
			Tipo:       models.TipoCredito,
			Valor:      payload.Valor,
			Referencia: ref,
		}
		if err := tx.CreateTransaction(entry); err != nil {
			return err
		}
		return tx.UpdateInvoiceStatus(inv.ID, models.InvoiceStatusConfirmed)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return domainerrors.ErrInvoiceNotFound
		}
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return domainerrors.ErrWalletNotFound
		}
		// Unique index backstop: a concurrent delivery committed the credit
		// between our checks. Its transaction carries the reference, so this
		// delivery is done.
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return nil
		}
		return fmt.Errorf("settlement failed: %w", err)
	}

	if ownerID != 0 {
		if err := s.cache.InvalidateWallet(ctx, ownerID); err != nil {
			log.Printf("failed to invalidate wallet cache: %v", err)
		}
	}
	if err := s.cache.InvalidateInvoice(ctx, payload.Txid); err != nil {
		log.Printf("failed to invalidate invoice cache: %v", err)
	}

	return nil
}
