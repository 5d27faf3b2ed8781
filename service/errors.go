package service

import (
	"errors"
	"fmt"
	"time"
)

// Business-rule errors. These are caught at the transport boundary and
// translated into user-visible messages; anything else surfaces as a
// generic failure.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInventoryNotFound    = errors.New("inventory entry not found")
	ErrNotOwner             = errors.New("inventory entry not owned by user")
	ErrTradeNotFound        = errors.New("trade not found")
	ErrNotTradeTarget       = errors.New("only the trade target can respond")
	ErrTradeAlreadyResolved = errors.New("trade already resolved")
	ErrSelfTrade            = errors.New("cannot trade with yourself")
	ErrUnauthorized         = errors.New("administrator access required")
)

// CooldownError reports that the free pack is still on cooldown
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("free pack on cooldown for another %s", e.Remaining)
}

// RemainingMinutes returns the remaining wait rounded up to whole minutes,
// never less than one
func (e *CooldownError) RemainingMinutes() int64 {
	minutes := int64((e.Remaining + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
