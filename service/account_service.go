package service

import (
	"context"
	"fmt"
	"time"

	"cardbot/events"
	"cardbot/models"
)

// AccountConfig holds the ledger's tunable parameters
type AccountConfig struct {
	PackCooldown time.Duration
	FreePackSize int
}

// accountService implements the AccountService interface
type accountService struct {
	uowFactory UnitOfWorkFactory
	generator  *PackGenerator
	cfg        AccountConfig
	now        func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory, generator *PackGenerator, cfg AccountConfig) AccountService {
	return &accountService{
		uowFactory: uowFactory,
		generator:  generator,
		cfg:        cfg,
		now:        time.Now,
	}
}

// EnsureAccount creates the account if needed and returns it. Repeat calls
// never overwrite an existing account.
func (s *accountService) EnsureAccount(ctx context.Context, userID int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().EnsureExists(ctx, userID); err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d missing after ensure", userID)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetCollection returns a user's owned cards
func (s *accountService) GetCollection(ctx context.Context, userID int64) ([]*models.OwnedCard, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.InventoryRepository().GetByOwner(ctx, userID)
}

// RecentHistory returns the user's most recent balance changes
func (s *accountService) RecentHistory(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.BalanceHistoryRepository().GetByUser(ctx, userID, limit)
}

// ClaimFreePack opens the cooldown-gated free pack. The cooldown check and
// the timestamp update are one guarded statement, so two concurrent claims
// for the same user cannot both succeed; the claim and the generated cards
// commit or roll back together.
func (s *accountService) ClaimFreePack(ctx context.Context, userID int64) ([]*models.Card, error) {
	now := s.now()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().EnsureExists(ctx, userID); err != nil {
		return nil, err
	}

	claimed, err := uow.UserRepository().TryClaimPack(ctx, userID, now, s.cfg.PackCooldown)
	if err != nil {
		return nil, err
	}
	if !claimed {
		user, err := uow.UserRepository().GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		remaining := s.cfg.PackCooldown - now.Sub(user.LastPackAt)
		return nil, &CooldownError{Remaining: remaining}
	}

	cards, err := s.generator.Generate(ctx, uow, userID, s.cfg.FreePackSize)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.PackOpenedEvent{
		UserID:    userID,
		CardCount: len(cards),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return cards, nil
}

// PurchasePack debits price and opens a pack of count cards. The debit is a
// balance-guarded statement, so concurrent purchases cannot overdraft, and
// a failed pack generation rolls the debit back.
func (s *accountService) PurchasePack(ctx context.Context, userID int64, count int, price int64) ([]*models.Card, error) {
	if count <= 0 {
		return nil, fmt.Errorf("pack size must be positive, got %d", count)
	}
	if price <= 0 {
		return nil, fmt.Errorf("pack price must be positive, got %d", price)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().EnsureExists(ctx, userID); err != nil {
		return nil, err
	}

	newBalance, deducted, err := uow.UserRepository().TryDeductBalance(ctx, userID, price)
	if err != nil {
		return nil, err
	}
	if !deducted {
		return nil, ErrInsufficientFunds
	}

	cards, err := s.generator.Generate(ctx, uow, userID, count)
	if err != nil {
		return nil, err
	}

	// Audit figures come from the debit statement itself, not a separate
	// read that a concurrent credit could make stale.
	history := &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   newBalance + price,
		BalanceAfter:    newBalance,
		ChangeAmount:    -price,
		TransactionType: models.TransactionTypePackPurchase,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.PackOpenedEvent{
		UserID:    userID,
		CardCount: len(cards),
		Purchased: true,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return cards, nil
}
