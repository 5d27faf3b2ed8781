package repository

import (
	"context"
	"fmt"
	"time"

	"cardbot/database"
	"cardbot/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// EnsureExists creates the user row if it is absent. The insert-if-absent is
// a single statement, so concurrent callers cannot race a read-then-insert.
// Existing rows are never overwritten.
func (r *UserRepository) EnsureExists(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO users (id)
		VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to ensure user %d exists: %w", userID, err)
	}

	return nil
}

// GetByID retrieves a user by their Discord ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT id, balance, last_pack_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Balance,
		&user.LastPackAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return &user, nil
}

// AddBalance adds to a user's balance atomically and returns the resulting
// balance. The RETURNING clause makes the returned figure the row's actual
// post-update value rather than a separately read one.
func (r *UserRepository) AddBalance(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, userID).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("user %d not found", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add balance for user %d: %w", userID, err)
	}

	return balance, nil
}

// TryDeductBalance deducts from a user's balance. It returns ok=false without
// mutating anything when the balance is insufficient; the guard and the
// deduction are one statement, so two concurrent purchases cannot both read
// a stale balance and overdraft. On success the resulting balance is returned
// straight from the updated row.
func (r *UserRepository) TryDeductBalance(ctx context.Context, userID int64, amount int64) (int64, bool, error) {
	if amount <= 0 {
		return 0, false, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, userID).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to deduct balance for user %d: %w", userID, err)
	}

	return balance, true, nil
}

// TryClaimPack advances last_pack_at to now if the cooldown has elapsed.
// The check-then-set is a single guarded UPDATE: of two concurrent claims
// within one cooldown window, at most one sees rows affected.
func (r *UserRepository) TryClaimPack(ctx context.Context, userID int64, now time.Time, cooldown time.Duration) (bool, error) {
	query := `
		UPDATE users
		SET last_pack_at = $1, updated_at = NOW()
		WHERE id = $2 AND last_pack_at <= $3
	`

	result, err := r.q.Exec(ctx, query, now, userID, now.Add(-cooldown))
	if err != nil {
		return false, fmt.Errorf("failed to claim pack for user %d: %w", userID, err)
	}

	return result.RowsAffected() > 0, nil
}
