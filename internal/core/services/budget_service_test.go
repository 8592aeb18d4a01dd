package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/core/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/utils/entrycodec"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	cipher          stubCipher
	service         portssvc.BudgetSvcFacade

	ctx     context.Context
	account domain.Account
}

func (s *BudgetServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.cipher = stubCipher{}
	s.service = services.NewBudgetService(s.mockAccountRepo, s.mockLedgerRepo, s.cipher)

	s.ctx = context.Background()
	s.account = domain.Account{AccountID: uuid.NewString(), Name: "Supplies", Basket: domain.Expense}
}

// entryOn builds an entry dated in the given month with the given amounts.
func (s *BudgetServiceTestSuite) entryOn(year int, month time.Month, debit, credit, runningTotal string) domain.AccountEntry {
	fields := domain.EntryFields{
		Debit:        decimal.RequireFromString(debit),
		Credit:       decimal.RequireFromString(credit),
		RunningTotal: decimal.RequireFromString(runningTotal),
	}
	bag, err := entrycodec.Encode(s.ctx, s.cipher, fields)
	s.Require().NoError(err)
	return domain.AccountEntry{
		EntryID:      uuid.NewString(),
		AccountID:    s.account.AccountID,
		EntryDate:    time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
		EncryptedBag: bag,
	}
}

func (s *BudgetServiceTestSuite) TestRunningTotalEmptyLedgerIsZero() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.account.AccountID).Return(&s.account, nil)
	s.mockLedgerRepo.On("FindLastEntry", s.ctx, s.account.AccountID).Return(nil, apperrors.ErrNotFound)

	total, err := s.service.RunningTotal(s.ctx, s.account.AccountID)
	s.Require().NoError(err)
	s.True(total.IsZero())
}

func (s *BudgetServiceTestSuite) TestRunningTotalDecodesNewestEntry() {
	last := s.entryOn(2026, time.March, "10.00", "0", "310.00")
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.account.AccountID).Return(&s.account, nil)
	s.mockLedgerRepo.On("FindLastEntry", s.ctx, s.account.AccountID).Return(&last, nil)

	total, err := s.service.RunningTotal(s.ctx, s.account.AccountID)
	s.Require().NoError(err)
	s.True(total.Equal(decimal.RequireFromString("310.00")))
}

func (s *BudgetServiceTestSuite) TestAccountAverageDividesByDistinctMonths() {
	entries := []domain.AccountEntry{
		s.entryOn(2026, time.January, "100.00", "0", "100.00"),
		s.entryOn(2026, time.January, "50.00", "0", "150.00"),
		s.entryOn(2026, time.February, "30.00", "0", "180.00"),
		s.entryOn(2026, time.March, "120.00", "0", "300.00"),
	}
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.account.AccountID).Return(&s.account, nil)
	s.mockLedgerRepo.On("ListAllEntriesByAccount", s.ctx, s.account.AccountID).Return(entries, nil)

	resp, err := s.service.AccountAverage(s.ctx, s.account.AccountID)
	s.Require().NoError(err)
	// Two January entries collapse into one month: 300 / 3 months.
	s.Equal(3, resp.Months)
	s.True(resp.Average.Equal(decimal.RequireFromString("100.00")))
}

func (s *BudgetServiceTestSuite) TestAccountAverageZeroMonthsIsZero() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.account.AccountID).Return(&s.account, nil)
	s.mockLedgerRepo.On("ListAllEntriesByAccount", s.ctx, s.account.AccountID).Return([]domain.AccountEntry{}, nil)

	resp, err := s.service.AccountAverage(s.ctx, s.account.AccountID)
	s.Require().NoError(err)
	s.Equal(0, resp.Months)
	s.True(resp.Average.IsZero(), "no entries must yield a zero average, not a division error")
}

func (s *BudgetServiceTestSuite) TestLiabilityAverageSumsDebitMinusCredit() {
	entries := []domain.AccountEntry{
		s.entryOn(2026, time.January, "0", "200.00", "200.00"),
		s.entryOn(2026, time.February, "50.00", "0", "150.00"),
	}
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.account.AccountID).Return(&s.account, nil)
	s.mockLedgerRepo.On("ListAllEntriesByAccount", s.ctx, s.account.AccountID).Return(entries, nil)

	resp, err := s.service.LiabilityAverage(s.ctx, s.account.AccountID)
	s.Require().NoError(err)
	// (0-200) + (50-0) = -150 over 2 months.
	s.Equal(2, resp.Months)
	s.True(resp.Average.Equal(decimal.RequireFromString("-75.00")))
}

func (s *BudgetServiceTestSuite) TestMonthlyProjectionFoldsCarry() {
	resp := s.service.MonthlyProjection(dto.ProjectionRequest{
		Months:              3,
		StartingAssets:      decimal.RequireFromString("1000.00"),
		MonthlyExpenseTotal: decimal.RequireFromString("400.00"),
		MonthlyIncomeTotal:  decimal.RequireFromString("300.00"),
	})

	s.Require().Len(resp.Months, 3, "projection must produce exactly the requested number of months")
	s.Equal(1, resp.Months[0].Month)
	s.Equal(3, resp.Months[2].Month)

	s.True(resp.Months[0].StartingValue.Equal(decimal.RequireFromString("1000.00")))
	s.True(resp.Months[0].Remaining.Equal(decimal.RequireFromString("900.00")))
	// Each month starts where the previous one ended.
	s.True(resp.Months[1].StartingValue.Equal(resp.Months[0].Remaining))
	s.True(resp.Months[2].Remaining.Equal(decimal.RequireFromString("700.00")))
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
