package service

import (
	"context"
	"fmt"

	"cardbot/models"
)

// catalogService implements the CatalogService interface
type catalogService struct {
	uowFactory UnitOfWorkFactory
	adminIDs   []int64
}

// NewCatalogService creates a new catalog service. Only the given admin IDs
// may add cards.
func NewCatalogService(uowFactory UnitOfWorkFactory, adminIDs []int64) CatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		adminIDs:   adminIDs,
	}
}

// AddCard inserts a new catalog card
func (s *catalogService) AddCard(ctx context.Context, actorID int64, name string, rarity models.Rarity, incomePerHour int64, imageURL *string) (*models.Card, error) {
	if !s.isAdmin(actorID) {
		return nil, ErrUnauthorized
	}
	if name == "" {
		return nil, fmt.Errorf("card name cannot be empty")
	}
	if incomePerHour < 0 {
		return nil, fmt.Errorf("income per hour cannot be negative")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	card := &models.Card{
		Name:          name,
		Rarity:        rarity,
		IncomePerHour: incomePerHour,
		ImageURL:      imageURL,
	}
	if err := uow.CardRepository().Create(ctx, card); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return card, nil
}

// ListCards returns the full catalog
func (s *catalogService) ListCards(ctx context.Context) ([]*models.Card, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.CardRepository().GetAll(ctx)
}

func (s *catalogService) isAdmin(userID int64) bool {
	for _, id := range s.adminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
