package service

import (
	"context"
	"time"

	"cardbot/events"
	"cardbot/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// EnsureExists creates the user row if absent, atomically
	EnsureExists(ctx context.Context, userID int64) error

	// GetByID retrieves a user by their Discord ID, nil if absent
	GetByID(ctx context.Context, userID int64) (*models.User, error)

	// AddBalance adds to a user's balance atomically and returns the
	// resulting balance
	AddBalance(ctx context.Context, userID int64, amount int64) (int64, error)

	// TryDeductBalance deducts from a user's balance, returning ok=false
	// (with no mutation) when the balance is insufficient; on success the
	// resulting balance is returned
	TryDeductBalance(ctx context.Context, userID int64, amount int64) (int64, bool, error)

	// TryClaimPack advances last_pack_at to now if the cooldown elapsed,
	// returning false when the claim is still on cooldown
	TryClaimPack(ctx context.Context, userID int64, now time.Time, cooldown time.Duration) (bool, error)
}

// CardRepository defines the interface for catalog card data access
type CardRepository interface {
	// Create inserts a new catalog card and fills in its generated ID
	Create(ctx context.Context, card *models.Card) error

	// GetByID retrieves a card by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.Card, error)

	// GetByRarity returns all catalog cards of the given rarity
	GetByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error)

	// GetAll returns the full card catalog
	GetAll(ctx context.Context) ([]*models.Card, error)
}

// InventoryRepository defines the interface for owned card copies
type InventoryRepository interface {
	// Create inserts a new owned copy and fills in its generated ID
	Create(ctx context.Context, entry *models.InventoryEntry) error

	// GetByID retrieves an inventory entry by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.InventoryEntry, error)

	// GetByOwner returns a user's collection joined with card definitions
	GetByOwner(ctx context.Context, ownerID int64) ([]*models.OwnedCard, error)

	// TryTransferOwner moves an inventory entry to a new owner, returning
	// false (with no mutation) unless the entry currently belongs to
	// fromOwnerID
	TryTransferOwner(ctx context.Context, entryID int64, fromOwnerID int64, toOwnerID int64) (bool, error)

	// IncomeTotals returns the summed hourly income per owner,
	// omitting owners with no income at all
	IncomeTotals(ctx context.Context) ([]*models.IncomeTotal, error)
}

// TradeRepository defines the interface for trade request data access
type TradeRepository interface {
	// Create inserts a new pending trade and fills in its generated ID
	Create(ctx context.Context, trade *models.Trade) error

	// GetByID retrieves a trade by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.Trade, error)

	// TryResolve persists a trade's terminal status and resolution time,
	// returning false (with no mutation) if the trade is no longer pending
	TryResolve(ctx context.Context, trade *models.Trade) (bool, error)

	// GetPendingByTarget returns all pending trades awaiting a user's response
	GetPendingByTarget(ctx context.Context, targetID int64) ([]*models.Trade, error)
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns the most recent balance changes for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// EventPublisher publishes events scoped to the current transaction
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork provides transactional access to all repositories
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	CardRepository() CardRepository
	InventoryRepository() InventoryRepository
	TradeRepository() TradeRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates new units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// AccountService defines ledger operations: lazy accounts, the cooldown-gated
// free pack and shop purchases
type AccountService interface {
	// EnsureAccount creates the account if needed and returns it
	EnsureAccount(ctx context.Context, userID int64) (*models.User, error)

	// GetCollection returns a user's owned cards
	GetCollection(ctx context.Context, userID int64) ([]*models.OwnedCard, error)

	// ClaimFreePack opens the free pack if the cooldown elapsed, returning
	// a *CooldownError with the remaining wait otherwise
	ClaimFreePack(ctx context.Context, userID int64) ([]*models.Card, error)

	// PurchasePack debits price and opens a pack of count cards as one
	// atomic unit, returning ErrInsufficientFunds without mutation when
	// the balance does not cover the price
	PurchasePack(ctx context.Context, userID int64, count int, price int64) ([]*models.Card, error)

	// RecentHistory returns the user's most recent balance changes
	RecentHistory(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// PackService exposes the raw pack-opening operation
type PackService interface {
	// OpenPack draws count cards and commits them to the user's inventory
	// as one atomic unit
	OpenPack(ctx context.Context, userID int64, count int) ([]*models.Card, error)
}

// TradeService defines the trade request lifecycle
type TradeService interface {
	// Propose creates a pending trade offering one inventory entry to the target
	Propose(ctx context.Context, proposerID int64, inventoryID int64, targetID int64) (*models.Trade, error)

	// Accept transfers the offered entry to the target and resolves the trade
	Accept(ctx context.Context, tradeID int64, actingUserID int64) (*models.Trade, error)

	// Reject resolves the trade without any ownership change
	Reject(ctx context.Context, tradeID int64, actingUserID int64) (*models.Trade, error)

	// PendingFor lists pending trades awaiting the user's response
	PendingFor(ctx context.Context, userID int64) ([]*models.Trade, error)
}

// IncomeService defines the passive income scheduler
type IncomeService interface {
	// Tick runs one income pass over all card owners
	Tick(ctx context.Context) error

	// Start launches the periodic worker and returns a stop function
	Start(ctx context.Context) func()
}

// CatalogService defines administrative catalog management
type CatalogService interface {
	// AddCard inserts a catalog card; only configured administrators may call it
	AddCard(ctx context.Context, actorID int64, name string, rarity models.Rarity, incomePerHour int64, imageURL *string) (*models.Card, error)

	// ListCards returns the full catalog
	ListCards(ctx context.Context) ([]*models.Card, error)
}
