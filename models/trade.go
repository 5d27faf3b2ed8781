package models

import (
	"time"
)

// TradeStatus represents the state of a trade request
type TradeStatus string

const (
	TradeStatusPending  TradeStatus = "pending"
	TradeStatusAccepted TradeStatus = "accepted"
	TradeStatusRejected TradeStatus = "rejected"
)

// Trade represents a proposed one-way transfer of an inventory entry
// from the proposer to the target, requiring the target's acceptance.
type Trade struct {
	ID          int64       `db:"id"`
	ProposerID  int64       `db:"proposer_id"`
	TargetID    int64       `db:"target_id"`
	InventoryID int64       `db:"inventory_id"`
	Status      TradeStatus `db:"status"`
	CreatedAt   time.Time   `db:"created_at"`
	ResolvedAt  *time.Time  `db:"resolved_at"`
}

// IsResolved reports whether the trade reached a terminal state
func (t *Trade) IsResolved() bool {
	return t.Status == TradeStatusAccepted || t.Status == TradeStatusRejected
}
