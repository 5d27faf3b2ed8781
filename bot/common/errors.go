package common

import (
	"errors"
	"fmt"

	"cardbot/service"

	log "github.com/sirupsen/logrus"
)

// UserMessage translates a service error into a message safe to show the
// user. The second return is false for system errors, which are logged here
// and surface only as a generic failure.
func UserMessage(err error) (string, bool) {
	var cooldownErr *service.CooldownError
	if errors.As(err, &cooldownErr) {
		return fmt.Sprintf("Your free pack is still on cooldown. Try again in %d minute(s).", cooldownErr.RemainingMinutes()), true
	}

	switch {
	case errors.Is(err, service.ErrInsufficientFunds):
		return "You don't have enough coins for that.", true
	case errors.Is(err, service.ErrInventoryNotFound):
		return "That card copy doesn't exist.", true
	case errors.Is(err, service.ErrNotOwner):
		return "That card copy isn't owned by the right player anymore.", true
	case errors.Is(err, service.ErrTradeNotFound):
		return "That trade doesn't exist.", true
	case errors.Is(err, service.ErrNotTradeTarget):
		return "Only the player the trade was offered to can respond.", true
	case errors.Is(err, service.ErrTradeAlreadyResolved):
		return "That trade has already been resolved.", true
	case errors.Is(err, service.ErrSelfTrade):
		return "You can't trade with yourself.", true
	case errors.Is(err, service.ErrUnauthorized):
		return "Access denied: this action is restricted to administrators.", true
	}

	log.Errorf("Unexpected service error: %v", err)
	return "Something went wrong, please try again later.", false
}
