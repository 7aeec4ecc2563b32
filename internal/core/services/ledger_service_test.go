package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/core/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/utils/accounting"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.LedgerSvcFacade
	cashAccount      domain.Account
	bankAccount      domain.Account
	userID           string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo, suite.mockCategoryRepo)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:      uuid.NewString(),
		Name:           "Caja",
		AccountType:    domain.Cash,
		CurrencyCode:   "EUR",
		InitialBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(1000),
		IsActive:       true,
	}
	suite.bankAccount = domain.Account{
		AccountID:      uuid.NewString(),
		Name:           "Banco",
		AccountType:    domain.Bank,
		CurrencyCode:   "EUR",
		InitialBalance: decimal.NewFromInt(5000),
		CurrentBalance: decimal.NewFromInt(5000),
		IsActive:       true,
	}
}

// --- Entries ---

func (suite *LedgerServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Amount:    decimal.NewFromInt(200),
		AccountID: suite.cashAccount.AccountID,
		Date:      time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()

	var capturedChanges accounting.BalanceChanges
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("accounting.BalanceChanges")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(accounting.BalanceChanges)
		}).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, domain.Expense, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.Expense, entry.EntryKind)
	suite.Equal(suite.userID, entry.CreatedBy)

	// An expense of 200 debits exactly one account by 200.
	suite.Require().Len(capturedChanges, 1)
	suite.True(capturedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-200)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateIncome_Success() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Amount:    decimal.NewFromInt(500),
		AccountID: suite.cashAccount.AccountID,
		Date:      time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()

	var capturedChanges accounting.BalanceChanges
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("accounting.BalanceChanges")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(accounting.BalanceChanges)
		}).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, domain.Income, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Income, entry.EntryKind)
	suite.True(capturedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(500)))
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		req := dto.CreateEntryRequest{
			Amount:    amount,
			AccountID: suite.cashAccount.AccountID,
			Date:      time.Now(),
		}

		_, err := suite.service.CreateEntry(ctx, domain.Expense, req, suite.userID)

		suite.Require().Error(err)
		suite.ErrorIs(err, services.ErrInvalidAmount)
	}

	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_AccountNotFound() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreateEntryRequest{
		Amount:    decimal.NewFromInt(10),
		AccountID: unknownID,
		Date:      time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, unknownID).Return(nil, apperrors.NewNotFoundError("account not found")).Once()

	_, err := suite.service.CreateEntry(ctx, domain.Expense, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.cashAccount
	inactive.IsActive = false
	req := dto.CreateEntryRequest{
		Amount:    decimal.NewFromInt(10),
		AccountID: inactive.AccountID,
		Date:      time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateEntry(ctx, domain.Expense, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_CategoryKindMismatch() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := dto.CreateEntryRequest{
		Amount:     decimal.NewFromInt(10),
		AccountID:  suite.cashAccount.AccountID,
		CategoryID: &categoryID,
		Date:       time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&domain.Category{
		CategoryID: categoryID,
		Kind:       domain.Income,
	}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, domain.Expense, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCategoryMismatch)
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_SameAccountNetsDelta() {
	ctx := context.Background()
	prev := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		EntryKind: domain.Expense,
		AccountID: suite.cashAccount.AccountID,
		Amount:    decimal.NewFromInt(200),
		EntryDate: time.Now(),
	}
	newAmount := decimal.NewFromInt(150)
	req := dto.UpdateEntryRequest{Amount: &newAmount}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, domain.Expense, prev.EntryID).Return(&prev, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()

	var capturedChanges accounting.BalanceChanges
	suite.mockLedgerRepo.On("UpdateEntry", ctx, prev, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("accounting.BalanceChanges")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(3).(accounting.BalanceChanges)
		}).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, domain.Expense, prev.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))

	// Reducing an expense from 200 to 150 on one account nets to +50.
	suite.Require().Len(capturedChanges, 1)
	suite.True(capturedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(50)))
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_AccountMoveReversesOldAppliesNew() {
	ctx := context.Background()
	prev := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		EntryKind: domain.Income,
		AccountID: suite.cashAccount.AccountID,
		Amount:    decimal.NewFromInt(300),
		EntryDate: time.Now(),
	}
	newAccountID := suite.bankAccount.AccountID
	req := dto.UpdateEntryRequest{AccountID: &newAccountID}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, domain.Income, prev.EntryID).Return(&prev, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, newAccountID).Return(&suite.bankAccount, nil).Once()

	var capturedChanges accounting.BalanceChanges
	suite.mockLedgerRepo.On("UpdateEntry", ctx, prev, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("accounting.BalanceChanges")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(3).(accounting.BalanceChanges)
		}).Return(nil).Once()

	_, err := suite.service.UpdateEntry(ctx, domain.Income, prev.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(capturedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-300)))
	suite.True(capturedChanges[suite.bankAccount.AccountID].Equal(decimal.NewFromInt(300)))
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_ReversesEffect() {
	ctx := context.Background()
	prev := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		EntryKind: domain.Expense,
		AccountID: suite.cashAccount.AccountID,
		Amount:    decimal.NewFromInt(80),
		EntryDate: time.Now(),
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, domain.Expense, prev.EntryID).Return(&prev, nil).Once()

	var capturedChanges accounting.BalanceChanges
	suite.mockLedgerRepo.On("DeleteEntry", ctx, prev, mock.AnythingOfType("accounting.BalanceChanges")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(accounting.BalanceChanges)
		}).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, domain.Expense, prev.EntryID, suite.userID)

	suite.Require().NoError(err)
	// Deleting an expense of 80 credits the account back by 80.
	suite.True(capturedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(80)))
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockLedgerRepo.On("FindEntryByID", ctx, domain.Income, entryID).Return(nil, apperrors.NewNotFoundError("entry not found")).Once()

	err := suite.service.DeleteEntry(ctx, domain.Income, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
}

// --- Transfers ---

func (suite *LedgerServiceTestSuite) TestCreateTransfer_Success() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		Amount:        decimal.NewFromInt(300),
		FromAccountID: suite.cashAccount.AccountID,
		ToAccountID:   suite.bankAccount.AccountID,
		Date:          time.Now(),
	}

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		suite.bankAccount.AccountID: suite.bankAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.bankAccount.AccountID}).Return(accountsMap, nil).Once()

	var capturedChanges accounting.BalanceChanges
	suite.mockLedgerRepo.On("SaveTransfer", ctx, mock.AnythingOfType("domain.Transfer"), mock.AnythingOfType("accounting.BalanceChanges")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(accounting.BalanceChanges)
		}).Return(nil).Once()

	transfer, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(transfer.TransferID)

	// Both legs move together and the total stays zero.
	suite.True(capturedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-300)))
	suite.True(capturedChanges[suite.bankAccount.AccountID].Equal(decimal.NewFromInt(300)))
	sum := decimal.Zero
	for _, delta := range capturedChanges {
		sum = sum.Add(delta)
	}
	suite.True(sum.IsZero())
}

func (suite *LedgerServiceTestSuite) TestCreateTransfer_SameAccount() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		Amount:        decimal.NewFromInt(50),
		FromAccountID: suite.cashAccount.AccountID,
		ToAccountID:   suite.cashAccount.AccountID,
		Date:          time.Now(),
	}

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSameAccount)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateTransfer_MissingDestination() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreateTransferRequest{
		Amount:        decimal.NewFromInt(50),
		FromAccountID: suite.cashAccount.AccountID,
		ToAccountID:   unknownID,
		Date:          time.Now(),
	}

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, unknownID}).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func (suite *LedgerServiceTestSuite) TestDeleteTransfer_RestoresBothBalances() {
	ctx := context.Background()
	prev := domain.Transfer{
		TransferID:    uuid.NewString(),
		FromAccountID: suite.cashAccount.AccountID,
		ToAccountID:   suite.bankAccount.AccountID,
		Amount:        decimal.NewFromInt(300),
		TransferDate:  time.Now(),
	}

	suite.mockLedgerRepo.On("FindTransferByID", ctx, prev.TransferID).Return(&prev, nil).Once()

	var capturedChanges accounting.BalanceChanges
	suite.mockLedgerRepo.On("DeleteTransfer", ctx, prev, mock.AnythingOfType("accounting.BalanceChanges")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(accounting.BalanceChanges)
		}).Return(nil).Once()

	err := suite.service.DeleteTransfer(ctx, prev.TransferID, suite.userID)

	suite.Require().NoError(err)
	// The source gets its 300 back, the destination gives it up.
	suite.True(capturedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(300)))
	suite.True(capturedChanges[suite.bankAccount.AccountID].Equal(decimal.NewFromInt(-300)))
}

func (suite *LedgerServiceTestSuite) TestUpdateTransfer_ConflictFromRepo() {
	ctx := context.Background()
	prev := domain.Transfer{
		TransferID:    uuid.NewString(),
		FromAccountID: suite.cashAccount.AccountID,
		ToAccountID:   suite.bankAccount.AccountID,
		Amount:        decimal.NewFromInt(100),
		TransferDate:  time.Now(),
	}
	newAmount := decimal.NewFromInt(120)
	req := dto.UpdateTransferRequest{Amount: &newAmount}

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		suite.bankAccount.AccountID: suite.bankAccount,
	}
	suite.mockLedgerRepo.On("FindTransferByID", ctx, prev.TransferID).Return(&prev, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockLedgerRepo.On("UpdateTransfer", ctx, prev, mock.AnythingOfType("domain.Transfer"), mock.AnythingOfType("accounting.BalanceChanges")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.UpdateTransfer(ctx, prev.TransferID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
