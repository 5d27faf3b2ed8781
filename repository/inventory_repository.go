package repository

import (
	"context"
	"fmt"

	"cardbot/database"
	"cardbot/models"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the service.InventoryRepository interface
type InventoryRepository struct {
	q queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

// newInventoryRepositoryWithTx creates a new inventory repository with a transaction
func newInventoryRepositoryWithTx(tx queryable) *InventoryRepository {
	return &InventoryRepository{q: tx}
}

// Create inserts a new owned copy and fills in its generated ID
func (r *InventoryRepository) Create(ctx context.Context, entry *models.InventoryEntry) error {
	query := `
		INSERT INTO inventory (owner_id, card_id)
		VALUES ($1, $2)
		RETURNING id, obtained_at
	`

	err := r.q.QueryRow(ctx, query, entry.OwnerID, entry.CardID).Scan(&entry.ID, &entry.ObtainedAt)
	if err != nil {
		return fmt.Errorf("failed to create inventory entry for user %d: %w", entry.OwnerID, err)
	}

	return nil
}

// GetByID retrieves an inventory entry by its ID
func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryEntry, error) {
	query := `
		SELECT id, owner_id, card_id, obtained_at
		FROM inventory
		WHERE id = $1
	`

	var entry models.InventoryEntry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.CardID,
		&entry.ObtainedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory entry %d: %w", id, err)
	}

	return &entry, nil
}

// GetByOwner returns a user's collection joined with card definitions
func (r *InventoryRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*models.OwnedCard, error) {
	query := `
		SELECT i.id, c.id, c.name, c.rarity, c.income_per_hour, c.image_url
		FROM inventory i
		JOIN cards c ON c.id = i.card_id
		WHERE i.owner_id = $1
		ORDER BY i.id
	`

	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	var owned []*models.OwnedCard
	for rows.Next() {
		var oc models.OwnedCard
		err := rows.Scan(
			&oc.InventoryID,
			&oc.CardID,
			&oc.Name,
			&oc.Rarity,
			&oc.IncomePerHour,
			&oc.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan owned card: %w", err)
		}
		owned = append(owned, &oc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}

	return owned, nil
}

// TryTransferOwner moves an inventory entry to a new owner. The current-owner
// guard and the transfer are one statement: if the entry was traded or gifted
// away since it was last read, no row matches and false comes back with
// nothing mutated.
func (r *InventoryRepository) TryTransferOwner(ctx context.Context, entryID int64, fromOwnerID int64, toOwnerID int64) (bool, error) {
	query := `
		UPDATE inventory
		SET owner_id = $1
		WHERE id = $2 AND owner_id = $3
	`

	result, err := r.q.Exec(ctx, query, toOwnerID, entryID, fromOwnerID)
	if err != nil {
		return false, fmt.Errorf("failed to transfer inventory entry %d: %w", entryID, err)
	}

	return result.RowsAffected() > 0, nil
}

// IncomeTotals returns the summed hourly income per owner. Users without
// cards, or whose cards all have zero income, produce no row at all.
func (r *InventoryRepository) IncomeTotals(ctx context.Context) ([]*models.IncomeTotal, error) {
	query := `
		SELECT i.owner_id, SUM(c.income_per_hour) AS total
		FROM inventory i
		JOIN cards c ON c.id = i.card_id
		GROUP BY i.owner_id
		HAVING SUM(c.income_per_hour) > 0
		ORDER BY i.owner_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get income totals: %w", err)
	}
	defer rows.Close()

	var totals []*models.IncomeTotal
	for rows.Next() {
		var t models.IncomeTotal
		if err := rows.Scan(&t.UserID, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan income total: %w", err)
		}
		totals = append(totals, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income totals: %w", err)
	}

	return totals, nil
}
