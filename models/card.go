package models

import (
	"time"
)

// Rarity represents a card rarity tier
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ParseRarity converts a string into a known rarity tier
func ParseRarity(s string) (Rarity, bool) {
	switch Rarity(s) {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return Rarity(s), true
	}
	return "", false
}

// Card represents a catalog card definition, distinct from an owned copy
type Card struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	Rarity        Rarity    `db:"rarity"`
	IncomePerHour int64     `db:"income_per_hour"`
	ImageURL      *string   `db:"image_url"`
	CreatedAt     time.Time `db:"created_at"`
}
