package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAccountFixture() (*accountService, *MockUnitOfWorkFactory, *MockUnitOfWork, *MockUserRepository, *MockCardRepository, *MockInventoryRepository, *MockBalanceHistoryRepository) {
	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockUserRepo := new(MockUserRepository)
	mockCardRepo := new(MockCardRepository)
	mockInventoryRepo := new(MockInventoryRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockUoW.SetRepositories(mockUserRepo, mockCardRepo, mockInventoryRepo, nil, mockHistoryRepo, nil)

	svc := &accountService{
		uowFactory: mockFactory,
		generator:  newPackGeneratorWithSeed(DefaultRarityTable(), 1),
		cfg: AccountConfig{
			PackCooldown: 30 * time.Minute,
			FreePackSize: 5,
		},
		now: time.Now,
	}

	return svc, mockFactory, mockUoW, mockUserRepo, mockCardRepo, mockInventoryRepo, mockHistoryRepo
}

func TestAccountService_EnsureAccountReturnsUser(t *testing.T) {
	ctx := context.Background()
	svc, mockFactory, mockUoW, mockUserRepo, _, _, _ := newAccountFixture()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	user := &models.User{ID: 42, Balance: 0}
	mockUserRepo.On("EnsureExists", ctx, int64(42)).Return(nil)
	mockUserRepo.On("GetByID", ctx, int64(42)).Return(user, nil)

	got, err := svc.EnsureAccount(ctx, 42)

	assert.NoError(t, err)
	assert.Equal(t, user, got)
	mockUoW.AssertExpectations(t)
}

func TestAccountService_ClaimFreePackSuccess(t *testing.T) {
	ctx := context.Background()
	svc, mockFactory, mockUoW, mockUserRepo, mockCardRepo, mockInventoryRepo, _ := newAccountFixture()

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("EnsureExists", ctx, int64(7)).Return(nil)
	mockUserRepo.On("TryClaimPack", ctx, int64(7), fixed, 30*time.Minute).Return(true, nil)

	existing := &models.Card{ID: 3, Name: "Seeded", Rarity: models.RarityCommon, IncomePerHour: 1}
	mockCardRepo.On("GetByRarity", ctx, mock.Anything).Return([]*models.Card{}, nil)
	mockCardRepo.On("GetAll", ctx).Return([]*models.Card{existing}, nil)
	mockInventoryRepo.On("Create", ctx, mock.AnythingOfType("*models.InventoryEntry")).Return(nil)

	cards, err := svc.ClaimFreePack(ctx, 7)

	assert.NoError(t, err)
	assert.Len(t, cards, 5)
	mockInventoryRepo.AssertNumberOfCalls(t, "Create", 5)
	mockUoW.AssertExpectations(t)
}

func TestAccountService_ClaimFreePackOnCooldown(t *testing.T) {
	ctx := context.Background()
	svc, mockFactory, mockUoW, mockUserRepo, _, mockInventoryRepo, _ := newAccountFixture()

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("EnsureExists", ctx, int64(7)).Return(nil)
	mockUserRepo.On("TryClaimPack", ctx, int64(7), fixed, 30*time.Minute).Return(false, nil)
	// Claimed 10 minutes ago, so 20 minutes remain on a 30 minute cooldown
	mockUserRepo.On("GetByID", ctx, int64(7)).Return(&models.User{
		ID:         7,
		LastPackAt: fixed.Add(-10 * time.Minute),
	}, nil)

	cards, err := svc.ClaimFreePack(ctx, 7)

	assert.Nil(t, cards)
	var cooldownErr *CooldownError
	assert.True(t, errors.As(err, &cooldownErr))
	assert.Equal(t, 20*time.Minute, cooldownErr.Remaining)
	assert.Equal(t, int64(20), cooldownErr.RemainingMinutes())

	mockInventoryRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestCooldownError_RemainingMinutesRoundsUp(t *testing.T) {
	assert.Equal(t, int64(1), (&CooldownError{Remaining: 30 * time.Second}).RemainingMinutes())
	assert.Equal(t, int64(1), (&CooldownError{Remaining: time.Second}).RemainingMinutes())
	assert.Equal(t, int64(2), (&CooldownError{Remaining: 61 * time.Second}).RemainingMinutes())
	assert.Equal(t, int64(30), (&CooldownError{Remaining: 30 * time.Minute}).RemainingMinutes())
}

func TestAccountService_PurchasePackSuccess(t *testing.T) {
	ctx := context.Background()
	svc, mockFactory, mockUoW, mockUserRepo, mockCardRepo, mockInventoryRepo, mockHistoryRepo := newAccountFixture()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("EnsureExists", ctx, int64(9)).Return(nil)
	mockUserRepo.On("TryDeductBalance", ctx, int64(9), int64(25)).Return(int64(75), true, nil)

	existing := &models.Card{ID: 3, Name: "Seeded", Rarity: models.RarityCommon, IncomePerHour: 1}
	mockCardRepo.On("GetByRarity", ctx, mock.Anything).Return([]*models.Card{}, nil)
	mockCardRepo.On("GetAll", ctx).Return([]*models.Card{existing}, nil)
	mockInventoryRepo.On("Create", ctx, mock.AnythingOfType("*models.InventoryEntry")).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.UserID == 9 &&
			h.BalanceBefore == 100 &&
			h.BalanceAfter == 75 &&
			h.ChangeAmount == -25 &&
			h.TransactionType == models.TransactionTypePackPurchase
	})).Return(nil)

	cards, err := svc.PurchasePack(ctx, 9, 3, 25)

	assert.NoError(t, err)
	assert.Len(t, cards, 3)
	mockHistoryRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestAccountService_PurchaseAuditUsesDebitedBalance(t *testing.T) {
	ctx := context.Background()
	svc, mockFactory, mockUoW, mockUserRepo, mockCardRepo, mockInventoryRepo, mockHistoryRepo := newAccountFixture()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("EnsureExists", ctx, int64(9)).Return(nil)
	// A concurrent income credit landed, so the debit leaves 84 instead of
	// what any earlier read of the row would have predicted
	mockUserRepo.On("TryDeductBalance", ctx, int64(9), int64(25)).Return(int64(84), true, nil)

	existing := &models.Card{ID: 3, Name: "Seeded", Rarity: models.RarityCommon, IncomePerHour: 1}
	mockCardRepo.On("GetByRarity", ctx, mock.Anything).Return([]*models.Card{}, nil)
	mockCardRepo.On("GetAll", ctx).Return([]*models.Card{existing}, nil)
	mockInventoryRepo.On("Create", ctx, mock.AnythingOfType("*models.InventoryEntry")).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.BalanceBefore == 109 && h.BalanceAfter == 84 && h.ChangeAmount == -25
	})).Return(nil)

	_, err := svc.PurchasePack(ctx, 9, 2, 25)

	assert.NoError(t, err)
	mockHistoryRepo.AssertExpectations(t)
	mockUserRepo.AssertNotCalled(t, "GetByID", ctx, mock.Anything)
}

func TestAccountService_PurchasePackInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	svc, mockFactory, mockUoW, mockUserRepo, _, mockInventoryRepo, mockHistoryRepo := newAccountFixture()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("EnsureExists", ctx, int64(9)).Return(nil)
	mockUserRepo.On("TryDeductBalance", ctx, int64(9), int64(25)).Return(int64(0), false, nil)

	cards, err := svc.PurchasePack(ctx, 9, 3, 25)

	assert.Nil(t, cards)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	mockInventoryRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	mockHistoryRepo.AssertNotCalled(t, "Record", ctx, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestAccountService_RecentHistory(t *testing.T) {
	ctx := context.Background()
	svc, mockFactory, mockUoW, _, _, _, mockHistoryRepo := newAccountFixture()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	history := []*models.BalanceHistory{
		{UserID: 9, ChangeAmount: -25, TransactionType: models.TransactionTypePackPurchase},
	}
	mockHistoryRepo.On("GetByUser", ctx, int64(9), 5).Return(history, nil)

	got, err := svc.RecentHistory(ctx, 9, 5)

	assert.NoError(t, err)
	assert.Equal(t, history, got)
}

func TestAccountService_PurchasePackRejectsBadArguments(t *testing.T) {
	ctx := context.Background()
	svc, mockFactory, _, _, _, _, _ := newAccountFixture()

	_, err := svc.PurchasePack(ctx, 9, 0, 25)
	assert.Error(t, err)

	_, err = svc.PurchasePack(ctx, 9, 3, 0)
	assert.Error(t, err)

	_, err = svc.PurchasePack(ctx, 9, 3, -5)
	assert.Error(t, err)

	mockFactory.AssertNotCalled(t, "Create")
}
