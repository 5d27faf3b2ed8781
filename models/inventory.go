package models

import (
	"time"
)

// InventoryEntry represents one owned copy of a catalog card.
// Many entries may reference the same card; each belongs to exactly one user.
type InventoryEntry struct {
	ID         int64     `db:"id"`
	OwnerID    int64     `db:"owner_id"`
	CardID     int64     `db:"card_id"`
	ObtainedAt time.Time `db:"obtained_at"`
}

// OwnedCard is an inventory entry joined with its card definition,
// used for collection display.
type OwnedCard struct {
	InventoryID   int64   `db:"inventory_id"`
	CardID        int64   `db:"card_id"`
	Name          string  `db:"name"`
	Rarity        Rarity  `db:"rarity"`
	IncomePerHour int64   `db:"income_per_hour"`
	ImageURL      *string `db:"image_url"`
}

// IncomeTotal is the summed hourly income of one user's collection
type IncomeTotal struct {
	UserID int64 `db:"user_id"`
	Total  int64 `db:"total"`
}
