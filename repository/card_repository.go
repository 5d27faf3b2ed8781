package repository

import (
	"context"
	"fmt"

	"cardbot/database"
	"cardbot/models"

	"github.com/jackc/pgx/v5"
)

// CardRepository implements the service.CardRepository interface
type CardRepository struct {
	q queryable
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *database.DB) *CardRepository {
	return &CardRepository{q: db.Pool}
}

// newCardRepositoryWithTx creates a new card repository with a transaction
func newCardRepositoryWithTx(tx queryable) *CardRepository {
	return &CardRepository{q: tx}
}

// Create inserts a new catalog card and fills in its generated ID.
// The ID is returned by the insert itself, so the card can be referenced
// immediately by inventory rows in the same transaction.
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (name, rarity, income_per_hour, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		card.Name,
		card.Rarity,
		card.IncomePerHour,
		card.ImageURL,
	).Scan(&card.ID, &card.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create card %q: %w", card.Name, err)
	}

	return nil
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `
		SELECT id, name, rarity, income_per_hour, image_url, created_at
		FROM cards
		WHERE id = $1
	`

	var card models.Card
	err := r.q.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.Name,
		&card.Rarity,
		&card.IncomePerHour,
		&card.ImageURL,
		&card.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %d: %w", id, err)
	}

	return &card, nil
}

// GetByRarity returns all catalog cards of the given rarity
func (r *CardRepository) GetByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error) {
	query := `
		SELECT id, name, rarity, income_per_hour, image_url, created_at
		FROM cards
		WHERE rarity = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, rarity)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards with rarity %s: %w", rarity, err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// GetAll returns the full card catalog
func (r *CardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	query := `
		SELECT id, name, rarity, income_per_hour, image_url, created_at
		FROM cards
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

func scanCards(rows pgx.Rows) ([]*models.Card, error) {
	var cards []*models.Card
	for rows.Next() {
		var card models.Card
		err := rows.Scan(
			&card.ID,
			&card.Name,
			&card.Rarity,
			&card.IncomePerHour,
			&card.ImageURL,
			&card.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}
