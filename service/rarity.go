package service

import (
	"math/rand"

	"cardbot/models"
)

// RarityTier is one row of the rarity table: a tier, its relative draw
// weight and the default income for cards synthesized at that tier.
type RarityTier struct {
	Rarity        models.Rarity
	Weight        float64
	IncomePerHour int64
}

// RarityTable is an ordered weighted-random rarity selection table. It is
// built once at startup and never mutated, so concurrent reads need no
// synchronization.
type RarityTable struct {
	tiers       []RarityTier
	totalWeight float64
}

// NewRarityTable builds a table from the given tiers. Tiers with
// non-positive weight are kept in the table (they can still be the
// fallback) but are never selected by a draw.
func NewRarityTable(tiers []RarityTier) RarityTable {
	table := RarityTable{tiers: tiers}
	for _, t := range tiers {
		if t.Weight > 0 {
			table.totalWeight += t.Weight
		}
	}
	return table
}

// DefaultRarityTable returns the stock four-tier table
func DefaultRarityTable() RarityTable {
	return NewRarityTable([]RarityTier{
		{Rarity: models.RarityCommon, Weight: 60, IncomePerHour: 1},
		{Rarity: models.RarityRare, Weight: 25, IncomePerHour: 3},
		{Rarity: models.RarityEpic, Weight: 10, IncomePerHour: 8},
		{Rarity: models.RarityLegendary, Weight: 5, IncomePerHour: 20},
	})
}

// Sample selects one rarity by weighted random draw: a uniform roll in
// [0, totalWeight) is walked through the tiers in table order. The last
// tier is the fallback against floating-point slack, so a valid rarity is
// always returned.
func (t RarityTable) Sample(r *rand.Rand) models.Rarity {
	roll := r.Float64() * t.totalWeight
	for _, tier := range t.tiers {
		roll -= tier.Weight
		if roll <= 0 {
			return tier.Rarity
		}
	}
	return t.tiers[len(t.tiers)-1].Rarity
}

// IncomeFor returns the default income for cards of the given rarity
func (t RarityTable) IncomeFor(rarity models.Rarity) int64 {
	for _, tier := range t.tiers {
		if tier.Rarity == rarity {
			return tier.IncomePerHour
		}
	}
	return 0
}
