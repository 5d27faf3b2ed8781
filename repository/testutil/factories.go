package testutil

import (
	"cardbot/models"
)

// CreateTestCard creates a catalog card with default values
func CreateTestCard(name string, rarity models.Rarity) *models.Card {
	return &models.Card{
		Name:          name,
		Rarity:        rarity,
		IncomePerHour: defaultIncome(rarity),
	}
}

// CreateTestCardWithIncome creates a catalog card with a specific income rate
func CreateTestCardWithIncome(name string, rarity models.Rarity, incomePerHour int64) *models.Card {
	card := CreateTestCard(name, rarity)
	card.IncomePerHour = incomePerHour
	return card
}

// CreateTestBalanceHistory creates a balance history entry for a 25 coin pack purchase
func CreateTestBalanceHistory(userID int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   100,
		BalanceAfter:    75,
		ChangeAmount:    -25,
		TransactionType: transactionType,
	}
}

func defaultIncome(rarity models.Rarity) int64 {
	switch rarity {
	case models.RarityLegendary:
		return 20
	case models.RarityEpic:
		return 8
	case models.RarityRare:
		return 3
	default:
		return 1
	}
}
