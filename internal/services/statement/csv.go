package statement

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"
)

const exportBatchSize = 500

// csvHeader is the fixed field order of the export.
var csvHeader = []string{"id", "data", "tipo", "valor", "descricao"}

// ParseSeparator returns the first rune of s, or ',' when s is empty.
func ParseSeparator(s string) rune {
	if s == "" {
		return ','
	}
	return []rune(s)[0]
}

// Export is a validated, ready-to-stream CSV rendering of a filtered
// ledger. Construction fails on an unknown wallet or a bad filter so the
// caller can report the error before committing a response status; the
// actual streaming happens in Write.
type Export struct {
	transactions repositories.TransactionRepository
	walletID     uint
	filter       repositories.LedgerFilter
	column       string
	orderDir     string
	opts         CSVOptions
}

func (s *service) Export(ctx context.Context, walletID uint, p Params, opts CSVOptions) (*Export, error) {
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

	if opts.Separator == 0 {
		opts.Separator = ','
	}

	return &Export{
		transactions: s.transactions,
		walletID:     walletID,
		filter:       filter,
		column:       column,
		orderDir:     p.OrderDir,
		opts:         opts,
	}, nil
}

// Write renders the export as delimited text. Rows are fetched in batches
// so large exports never hold the full result set in memory.
func (e *Export) Write(ctx context.Context, w io.Writer) error {
	comma := e.opts.DecimalMark == "comma"

	cw := csv.NewWriter(w)
	cw.Comma = e.opts.Separator
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv write failed: %w", err)
	}

	err := e.transactions.FindInBatches(ctx, e.walletID, e.filter, e.column, e.orderDir, exportBatchSize,
		func(batch []models.Transaction) error {
			for _, t := range batch {
				valor := t.Valor.StringFixed(2)
				if comma {
					valor = strings.Replace(valor, ".", ",", 1)
				}
				record := []string{
					strconv.FormatUint(uint64(t.ID), 10),
					t.CreatedAt.Format("2006-01-02 15:04:05"),
					t.Tipo,
					valor,
					t.Referencia,
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
			cw.Flush()
			return cw.Error()
		})
	if err != nil {
		return fmt.Errorf("csv export failed: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
