package repository

import (
	"context"
	"fmt"

	"cardbot/database"
	"cardbot/models"

	"github.com/jackc/pgx/v5"
)

// TradeRepository implements the service.TradeRepository interface
type TradeRepository struct {
	q queryable
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *database.DB) *TradeRepository {
	return &TradeRepository{q: db.Pool}
}

// newTradeRepositoryWithTx creates a new trade repository with a transaction
func newTradeRepositoryWithTx(tx queryable) *TradeRepository {
	return &TradeRepository{q: tx}
}

// Create inserts a new pending trade and fills in its generated ID
func (r *TradeRepository) Create(ctx context.Context, trade *models.Trade) error {
	query := `
		INSERT INTO trades (proposer_id, target_id, inventory_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		trade.ProposerID,
		trade.TargetID,
		trade.InventoryID,
		trade.Status,
	).Scan(&trade.ID, &trade.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	return nil
}

// GetByID retrieves a trade by its ID
func (r *TradeRepository) GetByID(ctx context.Context, id int64) (*models.Trade, error) {
	query := `
		SELECT id, proposer_id, target_id, inventory_id, status, created_at, resolved_at
		FROM trades
		WHERE id = $1
	`

	var trade models.Trade
	err := r.q.QueryRow(ctx, query, id).Scan(
		&trade.ID,
		&trade.ProposerID,
		&trade.TargetID,
		&trade.InventoryID,
		&trade.Status,
		&trade.CreatedAt,
		&trade.ResolvedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade %d: %w", id, err)
	}

	return &trade, nil
}

// TryResolve persists a trade's terminal status and resolution time. The
// pending guard and the transition are one statement, so of two concurrent
// resolutions exactly one sees rows affected; the loser gets false and must
// not apply any side effects.
func (r *TradeRepository) TryResolve(ctx context.Context, trade *models.Trade) (bool, error) {
	query := `
		UPDATE trades
		SET status = $1, resolved_at = $2
		WHERE id = $3 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, trade.Status, trade.ResolvedAt, trade.ID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve trade %d: %w", trade.ID, err)
	}

	return result.RowsAffected() > 0, nil
}

// GetPendingByTarget returns all pending trades awaiting a user's response
func (r *TradeRepository) GetPendingByTarget(ctx context.Context, targetID int64) ([]*models.Trade, error) {
	query := `
		SELECT id, proposer_id, target_id, inventory_id, status, created_at, resolved_at
		FROM trades
		WHERE target_id = $1 AND status = 'pending'
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending trades for user %d: %w", targetID, err)
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		var trade models.Trade
		err := rows.Scan(
			&trade.ID,
			&trade.ProposerID,
			&trade.TargetID,
			&trade.InventoryID,
			&trade.Status,
			&trade.CreatedAt,
			&trade.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, &trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trades: %w", err)
	}

	return trades, nil
}
