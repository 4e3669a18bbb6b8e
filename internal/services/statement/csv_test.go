package statement

import (
	"bytes"
	"context"
	"testing"
	"time"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func exportRows() []models.Transaction {
	return []models.Transaction{
		{ID: 2, WalletID: 1, Tipo: models.TipoCredito, Valor: dec("1234.50"), Referencia: "pix:abc",
			CreatedAt: time.Date(2025, 8, 12, 10, 30, 0, 0, time.UTC)},
		{ID: 1, WalletID: 1, Tipo: models.TipoDebito, Valor: dec("30.00"),
			CreatedAt: time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC)},
	}
}

func setupExport(t *testing.T) (*MockTransactionRepo, *MockWalletRepo) {
	t.Helper()
	transactions := new(MockTransactionRepo)
	wallets := new(MockWalletRepo)
	existingWallet(wallets)

	transactions.On("FindInBatches", mock.Anything, uint(1), mock.Anything,
		"created_at", "desc", exportBatchSize, mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(6).(func([]models.Transaction) error)
			assert.NoError(t, fn(exportRows()))
		}).
		Return(nil)
	return transactions, wallets
}

func render(t *testing.T, s Service, opts CSVOptions) string {
	t.Helper()
	export, err := s.Export(context.Background(), 1, Params{}, opts)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, export.Write(context.Background(), &buf))
	return buf.String()
}

func TestExport_Defaults(t *testing.T) {
	transactions, wallets := setupExport(t)
	s := NewService(transactions, wallets)

	want := "id,data,tipo,valor,descricao\n" +
		"2,2025-08-12 10:30:00,CREDITO,1234.50,pix:abc\n" +
		"1,2025-08-11 09:00:00,DEBITO,30.00,\n"
	assert.Equal(t, want, render(t, s, CSVOptions{}))
}

func TestExport_LocaleOptions(t *testing.T) {
	transactions, wallets := setupExport(t)
	s := NewService(transactions, wallets)

	want := "id;data;tipo;valor;descricao\n" +
		"2;2025-08-12 10:30:00;CREDITO;1234,50;pix:abc\n" +
		"1;2025-08-11 09:00:00;DEBITO;30,00;\n"
	assert.Equal(t, want, render(t, s, CSVOptions{Separator: ';', DecimalMark: "comma"}))
}

func TestExport_UnknownWalletFailsBeforeStreaming(t *testing.T) {
	transactions := new(MockTransactionRepo)
	wallets := new(MockWalletRepo)
	wallets.On("GetByID", uint(1)).Return(nil, repositories.ErrWalletNotFound)

	s := NewService(transactions, wallets)
	_, err := s.Export(context.Background(), 1, Params{}, CSVOptions{})

	assert.ErrorIs(t, err, domainerrors.ErrWalletNotFound)
	transactions.AssertNotCalled(t, "FindInBatches", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExport_InvalidTipoFailsBeforeStreaming(t *testing.T) {
	transactions := new(MockTransactionRepo)
	wallets := new(MockWalletRepo)
	existingWallet(wallets)

	s := NewService(transactions, wallets)
	_, err := s.Export(context.Background(), 1, Params{Tipo: "ENTRADA"}, CSVOptions{})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidTipo)
	transactions.AssertNotCalled(t, "FindInBatches", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestParseSeparator(t *testing.T) {
	assert.Equal(t, ',', ParseSeparator(""))
	assert.Equal(t, ';', ParseSeparator(";"))
	// A multi-byte separator must decode as one rune, not its first byte.
	assert.Equal(t, '§', ParseSeparator("§"))
	assert.Equal(t, '\t', ParseSeparator("\t"))
}
