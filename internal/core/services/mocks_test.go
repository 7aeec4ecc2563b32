package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	"github.com/socioges/treasury_backend/internal/utils/accounting"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) OverrideAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, newBalance, userID, now)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, delta, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyBalanceChanges(ctx context.Context, tx pgx.Tx, changes accounting.BalanceChanges, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, kind domain.EntryKind, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, kind, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, kind domain.EntryKind, accountID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, kind, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, changes accounting.BalanceChanges) error {
	args := m.Called(ctx, entry, changes)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, prev domain.LedgerEntry, next domain.LedgerEntry, changes accounting.BalanceChanges) error {
	args := m.Called(ctx, prev, next, changes)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, prev domain.LedgerEntry, changes accounting.BalanceChanges) error {
	args := m.Called(ctx, prev, changes)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockLedgerRepository) ListTransfersByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transfer, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transfer), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, changes accounting.BalanceChanges) error {
	args := m.Called(ctx, transfer, changes)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateTransfer(ctx context.Context, prev domain.Transfer, next domain.Transfer, changes accounting.BalanceChanges) error {
	args := m.Called(ctx, prev, next, changes)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteTransfer(ctx context.Context, prev domain.Transfer, changes accounting.BalanceChanges) error {
	args := m.Called(ctx, prev, changes)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---

type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.CashReconciliation, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) FindLatestReconciliationBefore(ctx context.Context, accountID string, date time.Time) (*domain.CashReconciliation, error) {
	args := m.Called(ctx, accountID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.CashReconciliation, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) SumEntriesForDate(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, date)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReconciliationRepository) SumTransfersForDate(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, date)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.CashReconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UpdateReconciliation(ctx context.Context, rec domain.CashReconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, kind *domain.EntryKind) ([]domain.Category, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindTransferTypeByID(ctx context.Context, transferTypeID string) (*domain.TransferType, error) {
	args := m.Called(ctx, transferTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferType), args.Error(1)
}

func (m *MockCategoryRepository) ListTransferTypes(ctx context.Context) ([]domain.TransferType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferType), args.Error(1)
}
