package service

import (
	"context"
	"testing"

	"cardbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_AddCardRequiresAdmin(t *testing.T) {
	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewCatalogService(mockFactory, []int64{100})

	card, err := svc.AddCard(context.Background(), 200, "Dragon", models.RarityEpic, 8, nil)

	assert.Nil(t, card)
	assert.ErrorIs(t, err, ErrUnauthorized)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestCatalogService_AddCardValidatesInput(t *testing.T) {
	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewCatalogService(mockFactory, []int64{100})

	_, err := svc.AddCard(context.Background(), 100, "", models.RarityEpic, 8, nil)
	assert.Error(t, err)

	_, err = svc.AddCard(context.Background(), 100, "Dragon", models.RarityEpic, -1, nil)
	assert.Error(t, err)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestCatalogService_AddCardCreates(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockCardRepo := new(MockCardRepository)
	mockUoW.SetRepositories(nil, mockCardRepo, nil, nil, nil, nil)

	svc := NewCatalogService(mockFactory, []int64{100})

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	url := "https://cdn.example.com/dragon.png"
	mockCardRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Card) bool {
		return c.Name == "Dragon" && c.Rarity == models.RarityEpic && c.IncomePerHour == 8 && c.ImageURL == &url
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Card).ID = 1
	}).Return(nil)

	card, err := svc.AddCard(ctx, 100, "Dragon", models.RarityEpic, 8, &url)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), card.ID)
	mockUoW.AssertExpectations(t)
}

func TestCatalogService_ListCards(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockCardRepo := new(MockCardRepository)
	mockUoW.SetRepositories(nil, mockCardRepo, nil, nil, nil, nil)

	svc := NewCatalogService(mockFactory, []int64{100})

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	catalog := []*models.Card{{ID: 1, Name: "Dragon", Rarity: models.RarityEpic, IncomePerHour: 8}}
	mockCardRepo.On("GetAll", ctx).Return(catalog, nil)

	got, err := svc.ListCards(ctx)

	assert.NoError(t, err)
	assert.Equal(t, catalog, got)
}
