// Package invoice manages pending payment requests and their lifecycle.
// Confirmation happens only through the settlement reconciler; cancellation
// is the other terminal transition.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// txidLength is the size of the external transaction id accepted by the
// payment-network format in use.
const txidLength = 26

// Cache is the lookup cache surface for invoices by txid.
type Cache interface {
	GetInvoice(ctx context.Context, txid string) (*models.Invoice, error)
	SetInvoice(ctx context.Context, inv *models.Invoice) error
	InvalidateInvoice(ctx context.Context, txid string) error
}

type Service interface {
	// Create registers a PENDING payment request and returns it together
	// with the QR payload for display.
	Create(ctx context.Context, userID uint, valor decimal.Decimal) (*models.Invoice, string, error)

	// Get resolves an invoice by its external transaction id.
	Get(ctx context.Context, txid string) (*models.Invoice, error)

	// Cancel moves a PENDING invoice to CANCELED. Terminal statuses are
	// rejected.
	Cancel(ctx context.Context, txid string) (*models.Invoice, error)
}

type service struct {
	repo  repositories.InvoiceRepository
	cache Cache
}

func NewService(repo repositories.InvoiceRepository, cache Cache) Service {
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

// NewTxid generates an opaque, collision-resistant external transaction id.
func NewTxid() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex[:txidLength]
}

func (s *service) Create(ctx context.Context, userID uint, valor decimal.Decimal) (*models.Invoice, string, error) {
	if !valor.IsPositive() {
		return nil, "", domainerrors.ErrInvalidAmount
	}

	inv := &models.Invoice{
		UserID: userID,
		Txid:   NewTxid(),
		Valor:  valor,
		Status: models.InvoiceStatusPending,
	}
	if err := s.repo.Create(inv); err != nil {
		return nil, "", fmt.Errorf("invoice creation failed: %w", err)
	}

	if err := s.cache.SetInvoice(ctx, inv); err != nil {
		log.Printf("failed to cache invoice: %v", err)
	}

	return inv, BuildQRPayload(inv.Txid, inv.Valor), nil
}

func (s *service) Get(ctx context.Context, txid string) (*models.Invoice, error) {
	if inv, err := s.cache.GetInvoice(ctx, txid); err == nil {
		return inv, nil
	}

	inv, err := s.repo.GetByTxid(txid)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, domainerrors.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoice lookup failed: %w", err)
	}

	if err := s.cache.SetInvoice(ctx, inv); err != nil {
		log.Printf("failed to cache invoice: %v", err)
	}
	return inv, nil
}

func (s *service) Cancel(ctx context.Context, txid string) (*models.Invoice, error) {
	inv, err := s.repo.GetByTxid(txid)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, domainerrors.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoice lookup failed: %w", err)
	}

	if models.TerminalStatus(inv.Status) {
		return nil, domainerrors.ErrInvoiceFinal
	}

	if err := s.repo.UpdateStatus(inv.ID, models.InvoiceStatusCanceled); err != nil {
		return nil, fmt.Errorf("invoice cancel failed: %w", err)
	}
	inv.Status = models.InvoiceStatusCanceled

	if err := s.cache.InvalidateInvoice(ctx, txid); err != nil {
		log.Printf("failed to invalidate invoice cache: %v", err)
	}
	return inv, nil
}
