package service

import (
	"context"
	"fmt"
	"time"

	"cardbot/events"
	"cardbot/models"
)

// tradeService implements the TradeService interface
type tradeService struct {
	uowFactory UnitOfWorkFactory
}

// NewTradeService creates a new trade service
func NewTradeService(uowFactory UnitOfWorkFactory) TradeService {
	return &tradeService{
		uowFactory: uowFactory,
	}
}

// Propose creates a pending trade offering one inventory entry to the
// target user. The target's account is created lazily if needed. The
// notification event is published on the transactional bus, so it goes out
// only if the trade row actually committed, and its delivery can never
// roll the trade back.
func (s *tradeService) Propose(ctx context.Context, proposerID int64, inventoryID int64, targetID int64) (*models.Trade, error) {
	if proposerID == targetID {
		return nil, ErrSelfTrade
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := uow.InventoryRepository().GetByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrInventoryNotFound
	}
	if entry.OwnerID != proposerID {
		return nil, ErrNotOwner
	}

	if err := uow.UserRepository().EnsureExists(ctx, targetID); err != nil {
		return nil, err
	}

	card, err := uow.CardRepository().GetByID(ctx, entry.CardID)
	if err != nil {
		return nil, err
	}

	trade := &models.Trade{
		ProposerID:  proposerID,
		TargetID:    targetID,
		InventoryID: inventoryID,
		Status:      models.TradeStatusPending,
	}
	if err := uow.TradeRepository().Create(ctx, trade); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.TradeProposedEvent{
		TradeID:     trade.ID,
		ProposerID:  proposerID,
		TargetID:    targetID,
		InventoryID: inventoryID,
		CardName:    card.Name,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return trade, nil
}

// Accept transfers the offered entry to the target and marks the trade
// accepted. Resolution is a one-time event: repeated accepts fail with
// ErrTradeAlreadyResolved and never re-transfer. Ownership is re-validated
// here, closing the window in which the offered item could have changed
// hands since the proposal.
func (s *tradeService) Accept(ctx context.Context, tradeID int64, actingUserID int64) (*models.Trade, error) {
	return s.resolve(ctx, tradeID, actingUserID, true)
}

// Reject marks the trade rejected with no ownership change
func (s *tradeService) Reject(ctx context.Context, tradeID int64, actingUserID int64) (*models.Trade, error) {
	return s.resolve(ctx, tradeID, actingUserID, false)
}

// resolve handles both terminal transitions of the trade state machine
func (s *tradeService) resolve(ctx context.Context, tradeID int64, actingUserID int64, accept bool) (*models.Trade, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	trade, err := uow.TradeRepository().GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, ErrTradeNotFound
	}
	if trade.TargetID != actingUserID {
		return nil, ErrNotTradeTarget
	}
	if trade.IsResolved() {
		return nil, ErrTradeAlreadyResolved
	}

	entry, err := uow.InventoryRepository().GetByID(ctx, trade.InventoryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrInventoryNotFound
	}

	if accept {
		if entry.OwnerID != trade.ProposerID {
			return nil, ErrNotOwner
		}
		trade.Status = models.TradeStatusAccepted
	} else {
		trade.Status = models.TradeStatusRejected
	}

	// The pending-guarded transition is the authoritative check: of two
	// concurrent resolutions only one row update wins, the other rolls back
	// here with nothing transferred.
	now := time.Now()
	trade.ResolvedAt = &now
	resolved, err := uow.TradeRepository().TryResolve(ctx, trade)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, ErrTradeAlreadyResolved
	}

	if accept {
		transferred, err := uow.InventoryRepository().TryTransferOwner(ctx, entry.ID, trade.ProposerID, trade.TargetID)
		if err != nil {
			return nil, err
		}
		if !transferred {
			return nil, ErrNotOwner
		}
	}

	card, err := uow.CardRepository().GetByID(ctx, entry.CardID)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.TradeResolvedEvent{
		TradeID:    trade.ID,
		ProposerID: trade.ProposerID,
		TargetID:   trade.TargetID,
		Accepted:   accept,
		CardName:   card.Name,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return trade, nil
}

// PendingFor lists pending trades awaiting the user's response
func (s *tradeService) PendingFor(ctx context.Context, userID int64) ([]*models.Trade, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.TradeRepository().GetPendingByTarget(ctx, userID)
}
