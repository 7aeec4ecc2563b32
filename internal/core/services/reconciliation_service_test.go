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
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconciliationRepo *MockReconciliationRepository
	mockAccountRepo        *MockAccountRepository
	service                portssvc.ReconciliationSvcFacade
	cashAccount            domain.Account
	targetDate             time.Time
	userID                 string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconciliationRepo = new(MockReconciliationRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReconciliationService(suite.mockReconciliationRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.targetDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	suite.cashAccount = domain.Account{
		AccountID:      uuid.NewString(),
		Name:           "Caja",
		AccountType:    domain.Cash,
		CurrencyCode:   "EUR",
		InitialBalance: decimal.NewFromInt(1000),
		// Deliberately skewed: the calculation must never consult this.
		CurrentBalance: decimal.NewFromInt(999999),
		IsActive:       true,
	}
}

// mockDayHistory wires the standard worked scenario: opening 1000 from the
// initial balance, 500 income, 200 expense, 300 outgoing transfer.
func (suite *ReconciliationServiceTestSuite) mockDayHistory() {
	accountID := suite.cashAccount.AccountID
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(&suite.cashAccount, nil)
	suite.mockReconciliationRepo.On("FindLatestReconciliationBefore", mock.Anything, accountID, suite.targetDate).
		Return(nil, apperrors.NewNotFoundError("never reconciled"))
	suite.mockReconciliationRepo.On("SumEntriesForDate", mock.Anything, accountID, suite.targetDate).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(200), nil)
	suite.mockReconciliationRepo.On("SumTransfersForDate", mock.Anything, accountID, suite.targetDate).
		Return(decimal.Zero, decimal.NewFromInt(300), nil)
}

func (suite *ReconciliationServiceTestSuite) TestCalculateExpectedBalance_WorkedScenario() {
	ctx := context.Background()
	suite.mockDayHistory()

	result, err := suite.service.CalculateExpectedBalance(ctx, suite.cashAccount.AccountID, suite.targetDate)

	suite.Require().NoError(err)
	suite.True(result.OpeningBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(result.Incomes.Equal(decimal.NewFromInt(500)))
	suite.True(result.Expenses.Equal(decimal.NewFromInt(200)))
	suite.True(result.OutgoingTransfers.Equal(decimal.NewFromInt(300)))
	// 1000 + 500 - 200 + 0 - 300
	suite.True(result.Expected.Equal(decimal.NewFromInt(1000)))
}

func (suite *ReconciliationServiceTestSuite) TestCalculateExpectedBalance_Idempotent() {
	ctx := context.Background()
	suite.mockDayHistory()

	first, err := suite.service.CalculateExpectedBalance(ctx, suite.cashAccount.AccountID, suite.targetDate)
	suite.Require().NoError(err)
	second, err := suite.service.CalculateExpectedBalance(ctx, suite.cashAccount.AccountID, suite.targetDate)
	suite.Require().NoError(err)

	suite.True(first.Expected.Equal(second.Expected))
	suite.True(first.OpeningBalance.Equal(second.OpeningBalance))
}

func (suite *ReconciliationServiceTestSuite) TestCalculateExpectedBalance_OpeningFromPriorSnapshot() {
	ctx := context.Background()
	accountID := suite.cashAccount.AccountID

	prior := domain.CashReconciliation{
		ReconciliationID: uuid.NewString(),
		AccountID:        accountID,
		Date:             suite.targetDate.AddDate(0, 0, -7),
		ClosingBalance:   decimal.NewFromInt(840),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&suite.cashAccount, nil).Once()
	suite.mockReconciliationRepo.On("FindLatestReconciliationBefore", ctx, accountID, suite.targetDate).Return(&prior, nil).Once()
	suite.mockReconciliationRepo.On("SumEntriesForDate", ctx, accountID, suite.targetDate).
		Return(decimal.NewFromInt(60), decimal.Zero, nil).Once()
	suite.mockReconciliationRepo.On("SumTransfersForDate", ctx, accountID, suite.targetDate).
		Return(decimal.Zero, decimal.Zero, nil).Once()

	result, err := suite.service.CalculateExpectedBalance(ctx, accountID, suite.targetDate)

	suite.Require().NoError(err)
	// Opening comes from the prior snapshot's counted closing, not from
	// initial_balance.
	suite.True(result.OpeningBalance.Equal(decimal.NewFromInt(840)))
	suite.True(result.Expected.Equal(decimal.NewFromInt(900)))
}

func (suite *ReconciliationServiceTestSuite) TestCalculateExpectedBalance_AccountNotFound() {
	ctx := context.Background()
	unknownID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, unknownID).Return(nil, apperrors.NewNotFoundError("account not found")).Once()

	_, err := suite.service.CalculateExpectedBalance(ctx, unknownID, suite.targetDate)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestCreateReconciliation_RecordsDifference() {
	ctx := context.Background()
	suite.mockDayHistory()

	req := dto.CreateReconciliationRequest{
		AccountID:      suite.cashAccount.AccountID,
		Date:           suite.targetDate,
		ClosingBalance: decimal.NewFromInt(985),
		Notes:          "drawer count after event",
	}

	var captured domain.CashReconciliation
	suite.mockReconciliationRepo.On("SaveReconciliation", mock.Anything, mock.AnythingOfType("domain.CashReconciliation")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.CashReconciliation)
		}).Return(nil).Once()

	rec, err := suite.service.CreateReconciliation(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(rec.ExpectedBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(rec.Difference.Equal(decimal.NewFromInt(-15)))
	suite.Equal(suite.userID, captured.CreatedBy)
	suite.True(captured.OpeningBalance.Equal(decimal.NewFromInt(1000)))
}

func (suite *ReconciliationServiceTestSuite) TestCreateReconciliation_Duplicate() {
	ctx := context.Background()
	suite.mockDayHistory()

	req := dto.CreateReconciliationRequest{
		AccountID:      suite.cashAccount.AccountID,
		Date:           suite.targetDate,
		ClosingBalance: decimal.NewFromInt(1000),
	}

	suite.mockReconciliationRepo.On("SaveReconciliation", mock.Anything, mock.AnythingOfType("domain.CashReconciliation")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateReconciliation(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateReconciliation)
}

func (suite *ReconciliationServiceTestSuite) TestUpdateReconciliation_KeepsExpectedFrozen() {
	ctx := context.Background()
	existing := domain.CashReconciliation{
		ReconciliationID: uuid.NewString(),
		AccountID:        suite.cashAccount.AccountID,
		Date:             suite.targetDate,
		OpeningBalance:   decimal.NewFromInt(1000),
		ClosingBalance:   decimal.NewFromInt(985),
		ExpectedBalance:  decimal.NewFromInt(1000),
		Difference:       decimal.NewFromInt(-15),
	}
	correctedCount := decimal.NewFromInt(1000)
	req := dto.UpdateReconciliationRequest{ClosingBalance: &correctedCount}

	suite.mockReconciliationRepo.On("FindReconciliationByID", ctx, existing.ReconciliationID).Return(&existing, nil).Once()

	var captured domain.CashReconciliation
	suite.mockReconciliationRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.CashReconciliation")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.CashReconciliation)
		}).Return(nil).Once()

	rec, err := suite.service.UpdateReconciliation(ctx, existing.ReconciliationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(rec.ExpectedBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(rec.Difference.IsZero())
	suite.True(captured.ExpectedBalance.Equal(existing.ExpectedBalance))
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
