package models

import (
	"time"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypePackPurchase  TransactionType = "pack_purchase"
	TransactionTypePassiveIncome TransactionType = "passive_income"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	BalanceBefore   int64           `db:"balance_before"`
	BalanceAfter    int64           `db:"balance_after"`
	ChangeAmount    int64           `db:"change_amount"`
	TransactionType TransactionType `db:"transaction_type"`
	RelatedID       *int64          `db:"related_id"`
	CreatedAt       time.Time       `db:"created_at"`
}
