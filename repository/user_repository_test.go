package repository

import (
	"context"
	"testing"
	"time"

	"cardbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_EnsureExists(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates missing user with defaults", func(t *testing.T) {
		err := repo.EnsureExists(ctx, 1001)
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, 1001)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(0), user.Balance)
		// A fresh account can claim its free pack immediately
		assert.True(t, user.LastPackAt.Before(time.Now().Add(-24*time.Hour)))
	})

	t.Run("repeat call never overwrites", func(t *testing.T) {
		require.NoError(t, repo.EnsureExists(ctx, 1002))
		balance, err := repo.AddBalance(ctx, 1002, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(50), balance)

		require.NoError(t, repo.EnsureExists(ctx, 1002))

		user, err := repo.GetByID(ctx, 1002)
		require.NoError(t, err)
		assert.Equal(t, int64(50), user.Balance)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown user returns nil", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_TryDeductBalance(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.EnsureExists(ctx, 2001))
	_, err := repo.AddBalance(ctx, 2001, 100)
	require.NoError(t, err)

	t.Run("sufficient balance deducts and returns the remainder", func(t *testing.T) {
		balance, ok, err := repo.TryDeductBalance(ctx, 2001, 60)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(40), balance)

		user, err := repo.GetByID(ctx, 2001)
		require.NoError(t, err)
		assert.Equal(t, int64(40), user.Balance)
	})

	t.Run("insufficient balance refuses without mutating", func(t *testing.T) {
		_, ok, err := repo.TryDeductBalance(ctx, 2001, 60)
		require.NoError(t, err)
		assert.False(t, ok)

		user, err := repo.GetByID(ctx, 2001)
		require.NoError(t, err)
		assert.Equal(t, int64(40), user.Balance)
	})

	t.Run("exact balance drains to zero", func(t *testing.T) {
		balance, ok, err := repo.TryDeductBalance(ctx, 2001, 40)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, _, err := repo.TryDeductBalance(ctx, 2001, 0)
		assert.Error(t, err)
	})
}

func TestUserRepository_TryClaimPack(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	cooldown := 30 * time.Minute

	t.Run("fresh account claims immediately", func(t *testing.T) {
		require.NoError(t, repo.EnsureExists(ctx, 3001))

		ok, err := repo.TryClaimPack(ctx, 3001, time.Now(), cooldown)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("second claim within cooldown refused", func(t *testing.T) {
		require.NoError(t, repo.EnsureExists(ctx, 3002))

		now := time.Now()
		ok, err := repo.TryClaimPack(ctx, 3002, now, cooldown)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.TryClaimPack(ctx, 3002, now.Add(10*time.Minute), cooldown)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("claim succeeds after cooldown elapses", func(t *testing.T) {
		require.NoError(t, repo.EnsureExists(ctx, 3003))

		now := time.Now()
		ok, err := repo.TryClaimPack(ctx, 3003, now, cooldown)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.TryClaimPack(ctx, 3003, now.Add(cooldown), cooldown)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown user claims nothing", func(t *testing.T) {
		ok, err := repo.TryClaimPack(ctx, 99999, time.Now(), cooldown)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
