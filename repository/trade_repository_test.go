package repository

import (
	"context"
	"testing"
	"time"

	"cardbot/models"
	"cardbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTradeFixtures(t *testing.T, testDB *testutil.TestDatabase) *models.InventoryEntry {
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	cardRepo := NewCardRepository(testDB.DB)
	invRepo := NewInventoryRepository(testDB.DB)

	require.NoError(t, userRepo.EnsureExists(ctx, 1))
	require.NoError(t, userRepo.EnsureExists(ctx, 2))

	card := testutil.CreateTestCard("Dragon", models.RarityEpic)
	require.NoError(t, cardRepo.Create(ctx, card))

	entry := &models.InventoryEntry{OwnerID: 1, CardID: card.ID}
	require.NoError(t, invRepo.Create(ctx, entry))

	return entry
}

func TestTradeRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	entry := setupTradeFixtures(t, testDB)

	repo := NewTradeRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown trade returns nil", func(t *testing.T) {
		trade, err := repo.GetByID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, trade)
	})

	t.Run("create fills generated fields", func(t *testing.T) {
		trade := &models.Trade{
			ProposerID:  1,
			TargetID:    2,
			InventoryID: entry.ID,
			Status:      models.TradeStatusPending,
		}
		require.NoError(t, repo.Create(ctx, trade))
		assert.NotZero(t, trade.ID)
		assert.False(t, trade.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, trade.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, models.TradeStatusPending, got.Status)
		assert.Nil(t, got.ResolvedAt)
	})
}

func TestTradeRepository_TryResolve(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	entry := setupTradeFixtures(t, testDB)

	repo := NewTradeRepository(testDB.DB)
	ctx := context.Background()

	trade := &models.Trade{
		ProposerID:  1,
		TargetID:    2,
		InventoryID: entry.ID,
		Status:      models.TradeStatusPending,
	}
	require.NoError(t, repo.Create(ctx, trade))

	now := time.Now().UTC().Truncate(time.Microsecond)
	trade.Status = models.TradeStatusAccepted
	trade.ResolvedAt = &now
	ok, err := repo.TryResolve(ctx, trade)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusAccepted, got.Status)
	require.NotNil(t, got.ResolvedAt)
	assert.WithinDuration(t, now, *got.ResolvedAt, time.Second)

	t.Run("resolved trade cannot be flipped", func(t *testing.T) {
		later := time.Now()
		flipped := &models.Trade{ID: trade.ID, Status: models.TradeStatusRejected, ResolvedAt: &later}
		ok, err := repo.TryResolve(ctx, flipped)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := repo.GetByID(ctx, trade.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TradeStatusAccepted, got.Status)
	})

	t.Run("missing trade reports false", func(t *testing.T) {
		missing := &models.Trade{ID: 99999, Status: models.TradeStatusRejected}
		ok, err := repo.TryResolve(ctx, missing)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestTradeRepository_GetPendingByTarget(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	entry := setupTradeFixtures(t, testDB)

	repo := NewTradeRepository(testDB.DB)
	ctx := context.Background()

	pending := &models.Trade{ProposerID: 1, TargetID: 2, InventoryID: entry.ID, Status: models.TradeStatusPending}
	require.NoError(t, repo.Create(ctx, pending))

	resolved := &models.Trade{ProposerID: 1, TargetID: 2, InventoryID: entry.ID, Status: models.TradeStatusPending}
	require.NoError(t, repo.Create(ctx, resolved))
	now := time.Now()
	resolved.Status = models.TradeStatusRejected
	resolved.ResolvedAt = &now
	ok, err := repo.TryResolve(ctx, resolved)
	require.NoError(t, err)
	require.True(t, ok)

	trades, err := repo.GetPendingByTarget(ctx, 2)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, pending.ID, trades[0].ID)

	none, err := repo.GetPendingByTarget(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}
