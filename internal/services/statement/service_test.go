package statement

import (
	"context"
	"testing"
	"time"

	domainerrors "dilspay/internal/errors"
	"dilspay/internal/models"
	"dilspay/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) GetByID(id uint) (*models.Transaction, error) {
	args := m.Called(id)
	if tx, ok := args.Get(0).(*models.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepo) FindPage(ctx context.Context, walletID uint, f repositories.LedgerFilter, orderBy, orderDir string, limit, offset int) ([]models.Transaction, error) {
	args := m.Called(ctx, walletID, f, orderBy, orderDir, limit, offset)
	if items, ok := args.Get(0).([]models.Transaction); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepo) Aggregate(ctx context.Context, walletID uint, f repositories.LedgerFilter) (*repositories.LedgerTotals, error) {
	args := m.Called(ctx, walletID, f)
	if totals, ok := args.Get(0).(*repositories.LedgerTotals); ok {
		return totals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepo) FindInBatches(ctx context.Context, walletID uint, f repositories.LedgerFilter, orderBy, orderDir string, batchSize int, fn func([]models.Transaction) error) error {
	args := m.Called(ctx, walletID, f, orderBy, orderDir, batchSize, fn)
	return args.Error(0)
}

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) Create(w *models.Wallet) error { return m.Called(w).Error(0) }

func (m *MockWalletRepo) GetByID(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if w, ok := args.Get(0).(*models.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepo) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if w, ok := args.Get(0).(*models.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if w, ok := args.Get(0).(*models.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepo) GetByUserIDForUpdate(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if w, ok := args.Get(0).(*models.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepo) List() ([]models.Wallet, error) {
	args := m.Called()
	if ws, ok := args.Get(0).([]models.Wallet); ok {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepo) UpdateBalance(walletID uint, balance decimal.Decimal) error {
	return m.Called(walletID, balance).Error(0)
}

func (m *MockWalletRepo) CreateTransaction(tx *models.Transaction) error {
	return m.Called(tx).Error(0)
}

func (m *MockWalletRepo) GetTransactionByReference(walletID uint, referencia string) (*models.Transaction, error) {
	args := m.Called(walletID, referencia)
	if tx, ok := args.Get(0).(*models.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepo) SumByTipo(walletID uint) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(walletID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockWalletRepo) GetInvoiceByTxidForUpdate(txid string) (*models.Invoice, error) {
	args := m.Called(txid)
	if inv, ok := args.Get(0).(*models.Invoice); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepo) UpdateInvoiceStatus(invoiceID uint, status string) error {
	return m.Called(invoiceID, status).Error(0)
}

func (m *MockWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	args := m.Called(fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func existingWallet(repo *MockWalletRepo) {
	repo.On("GetByID", uint(1)).Return(&models.Wallet{ID: 1, UserID: 7}, nil)
}

func emptyTotals() *repositories.LedgerTotals {
	return &repositories.LedgerTotals{Credito: decimal.Zero, Debito: decimal.Zero}
}

func TestQuery_Normalization(t *testing.T) {
	tests := []struct {
		name       string
		params     Params
		wantColumn string
		wantDir    string
		wantLimit  int
		wantOffset int
	}{
		{
			name:       "defaults",
			params:     Params{},
			wantColumn: "created_at",
			wantDir:    "desc",
			wantLimit:  DefaultPageSize,
			wantOffset: 0,
		},
		{
			name:       "page and size respected",
			params:     Params{Page: 3, PageSize: 10},
			wantColumn: "created_at",
			wantDir:    "desc",
			wantLimit:  10,
			wantOffset: 20,
		},
		{
			name:       "page below one clamps to one",
			params:     Params{Page: -5, PageSize: 10},
			wantColumn: "created_at",
			wantDir:    "desc",
			wantLimit:  10,
			wantOffset: 0,
		},
		{
			name:       "page size clamps to maximum",
			params:     Params{Page: 1, PageSize: 10000},
			wantColumn: "created_at",
			wantDir:    "desc",
			wantLimit:  MaxPageSize,
			wantOffset: 0,
		},
		{
			name:       "valor ascending",
			params:     Params{OrderBy: "valor", OrderDir: "asc"},
			wantColumn: "valor",
			wantDir:    "asc",
			wantLimit:  DefaultPageSize,
			wantOffset: 0,
		},
		{
			name:       "descricao maps to referencia column",
			params:     Params{OrderBy: "descricao", OrderDir: "asc"},
			wantColumn: "referencia",
			wantDir:    "asc",
			wantLimit:  DefaultPageSize,
			wantOffset: 0,
		},
		{
			name:       "uppercase direction accepted",
			params:     Params{OrderBy: "valor", OrderDir: "ASC"},
			wantColumn: "valor",
			wantDir:    "asc",
			wantLimit:  DefaultPageSize,
			wantOffset: 0,
		},
		{
			name:       "unknown sort field falls back to timestamp descending",
			params:     Params{OrderBy: "saldo", OrderDir: "asc"},
			wantColumn: "created_at",
			wantDir:    "desc",
			wantLimit:  DefaultPageSize,
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions := new(MockTransactionRepo)
			wallets := new(MockWalletRepo)
			existingWallet(wallets)

			transactions.On("Aggregate", mock.Anything, uint(1), mock.Anything).Return(emptyTotals(), nil)
			transactions.On("FindPage", mock.Anything, uint(1), mock.Anything,
				tt.wantColumn, tt.wantDir, tt.wantLimit, tt.wantOffset).
				Return([]models.Transaction{}, nil)

			s := NewService(transactions, wallets)
			_, err := s.Query(context.Background(), 1, tt.params)

			assert.NoError(t, err)
			transactions.AssertExpectations(t)
		})
	}
}

func TestQuery_InvalidTipoFilter(t *testing.T) {
	transactions := new(MockTransactionRepo)
	wallets := new(MockWalletRepo)
	existingWallet(wallets)

	s := NewService(transactions, wallets)
	_, err := s.Query(context.Background(), 1, Params{Tipo: "ENTRADA"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidTipo)
	transactions.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuery_UnknownWallet(t *testing.T) {
	transactions := new(MockTransactionRepo)
	wallets := new(MockWalletRepo)
	wallets.On("GetByID", uint(1)).Return(nil, repositories.ErrWalletNotFound)

	s := NewService(transactions, wallets)
	_, err := s.Query(context.Background(), 1, Params{})

	assert.ErrorIs(t, err, domainerrors.ErrWalletNotFound)
}

func TestQuery_TotalsComeFromAggregateNotPage(t *testing.T) {
	transactions := new(MockTransactionRepo)
	wallets := new(MockWalletRepo)
	existingWallet(wallets)

	// Five entries in the filtered set, page holds only two.
	totals := &repositories.LedgerTotals{Count: 5, Credito: dec("60.00"), Debito: dec("20.00")}
	page := []models.Transaction{
		{ID: 5, WalletID: 1, Tipo: models.TipoCredito, Valor: dec("30.00"), CreatedAt: time.Date(2025, 8, 12, 12, 0, 0, 0, time.UTC)},
		{ID: 4, WalletID: 1, Tipo: models.TipoDebito, Valor: dec("15.00"), CreatedAt: time.Date(2025, 8, 12, 11, 0, 0, 0, time.UTC)},
	}

	transactions.On("Aggregate", mock.Anything, uint(1), mock.Anything).Return(totals, nil)
	transactions.On("FindPage", mock.Anything, uint(1), mock.Anything, "created_at", "desc", 2, 0).Return(page, nil)

	s := NewService(transactions, wallets)
	st, err := s.Query(context.Background(), 1, Params{Page: 1, PageSize: 2})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), st.TotalCount)
	assert.Equal(t, int64(3), st.TotalPages)
	assert.Equal(t, "60.00", st.TotalCredito.StringFixed(2))
	assert.Equal(t, "20.00", st.TotalDebito.StringFixed(2))
	assert.Equal(t, "40.00", st.Saldo.StringFixed(2))
	assert.Len(t, st.Items, 2)
	assert.Equal(t, "30.00", st.Items[0].Valor)
	assert.Equal(t, "", st.Items[0].Descricao)
	assert.Equal(t, "2025-08-12T12:00:00Z", st.Items[0].Data)
}

func TestQuery_EmptyLedgerHasOnePage(t *testing.T) {
	transactions := new(MockTransactionRepo)
	wallets := new(MockWalletRepo)
	existingWallet(wallets)

	transactions.On("Aggregate", mock.Anything, uint(1), mock.Anything).Return(emptyTotals(), nil)
	transactions.On("FindPage", mock.Anything, uint(1), mock.Anything, "created_at", "desc", DefaultPageSize, 0).
		Return([]models.Transaction{}, nil)

	s := NewService(transactions, wallets)
	st, err := s.Query(context.Background(), 1, Params{})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), st.TotalCount)
	assert.Equal(t, int64(1), st.TotalPages)
	assert.NotNil(t, st.Items)
	assert.Len(t, st.Items, 0)
}

func TestQuery_DateRangeFilter(t *testing.T) {
	transactions := new(MockTransactionRepo)
	wallets := new(MockWalletRepo)
	existingWallet(wallets)

	matchFilter := mock.MatchedBy(func(f repositories.LedgerFilter) bool {
		if f.Start == nil || f.End == nil {
			return false
		}
		// A bare end date extends through the end of that day.
		return f.Start.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) &&
			f.End.After(time.Date(2025, 8, 12, 23, 59, 59, 0, time.UTC))
	})
	transactions.On("Aggregate", mock.Anything, uint(1), matchFilter).Return(emptyTotals(), nil)
	transactions.On("FindPage", mock.Anything, uint(1), matchFilter, "created_at", "desc", DefaultPageSize, 0).
		Return([]models.Transaction{}, nil)

	s := NewService(transactions, wallets)
	_, err := s.Query(context.Background(), 1, Params{Start: "2025-08-01", End: "2025-08-12"})

	assert.NoError(t, err)
	transactions.AssertExpectations(t)
}

func TestEntry(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		transactions := new(MockTransactionRepo)
		wallets := new(MockWalletRepo)

		transactions.On("GetByID", uint(9)).Return(&models.Transaction{
			ID: 9, WalletID: 1, Tipo: models.TipoCredito, Valor: dec("12.30"),
			Referencia: "pix:abc",
			CreatedAt:  time.Date(2025, 8, 12, 10, 0, 0, 0, time.UTC),
		}, nil)

		s := NewService(transactions, wallets)
		e, err := s.Entry(context.Background(), 1, 9)

		assert.NoError(t, err)
		assert.Equal(t, uint(9), e.ID)
		assert.Equal(t, "12.30", e.Valor)
		assert.Equal(t, "pix:abc", e.Descricao)
	})

	t.Run("unknown id", func(t *testing.T) {
		transactions := new(MockTransactionRepo)
		wallets := new(MockWalletRepo)
		transactions.On("GetByID", uint(9)).Return(nil, repositories.ErrTransactionNotFound)

		s := NewService(transactions, wallets)
		_, err := s.Entry(context.Background(), 1, 9)

		assert.True(t, domainerrors.IsKind(err, domainerrors.KindNotFound))
	})

	t.Run("entry of another wallet reads as not found", func(t *testing.T) {
		transactions := new(MockTransactionRepo)
		wallets := new(MockWalletRepo)
		transactions.On("GetByID", uint(9)).Return(&models.Transaction{ID: 9, WalletID: 2}, nil)

		s := NewService(transactions, wallets)
		_, err := s.Entry(context.Background(), 1, 9)

		assert.True(t, domainerrors.IsKind(err, domainerrors.KindNotFound))
	})
}

func TestParseTime(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got := parseTime("2025-08-12T10:30:00Z", false)
		assert.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 8, 12, 10, 30, 0, 0, time.UTC), *got)
	})

	t.Run("naive datetime", func(t *testing.T) {
		got := parseTime("2025-08-12T10:30:00", false)
		assert.NotNil(t, got)
	})

	t.Run("bare date as start", func(t *testing.T) {
		got := parseTime("2025-08-12", false)
		assert.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("bare date as end extends through the day", func(t *testing.T) {
		got := parseTime("2025-08-12", true)
		assert.NotNil(t, got)
		assert.Equal(t, 23, got.Hour())
		assert.Equal(t, 59, got.Minute())
		assert.Equal(t, 12, got.Day())
	})

	t.Run("invalid value ignored", func(t *testing.T) {
		assert.Nil(t, parseTime("not-a-date", false))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, parseTime("", false))
	})
}
