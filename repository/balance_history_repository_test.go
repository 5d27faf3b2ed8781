package repository

import (
	"context"
	"testing"

	"cardbot/models"
	"cardbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository_RecordAndGetByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, userRepo.EnsureExists(ctx, 1))

	t.Run("record fills generated fields", func(t *testing.T) {
		entry := testutil.CreateTestBalanceHistory(1, models.TransactionTypePackPurchase)
		require.NoError(t, repo.Record(ctx, entry))
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("returns newest first, limited", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			entry := &models.BalanceHistory{
				UserID:          1,
				BalanceBefore:   int64(i),
				BalanceAfter:    int64(i + 1),
				ChangeAmount:    1,
				TransactionType: models.TransactionTypePassiveIncome,
			}
			require.NoError(t, repo.Record(ctx, entry))
		}

		entries, err := repo.GetByUser(ctx, 1, 3)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt))
		}
	})

	t.Run("empty history", func(t *testing.T) {
		require.NoError(t, userRepo.EnsureExists(ctx, 2))
		entries, err := repo.GetByUser(ctx, 2, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
