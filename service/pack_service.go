package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"cardbot/events"
	"cardbot/models"

	"github.com/google/uuid"
)

// PackGenerator draws cards for a pack within a caller-supplied unit of
// work, so the draw commits or rolls back together with whatever gated it
// (cooldown claim, purchase debit).
type PackGenerator struct {
	table RarityTable

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPackGenerator creates a generator using the given rarity table
func NewPackGenerator(table RarityTable) *PackGenerator {
	return &PackGenerator{
		table: table,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newPackGeneratorWithSeed is used by tests for deterministic draws
func newPackGeneratorWithSeed(table RarityTable, seed int64) *PackGenerator {
	return &PackGenerator{
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Generate draws exactly count cards and records an inventory entry for
// each, all inside the caller's transaction. Per draw: sample a rarity,
// pick uniformly among catalog cards of that rarity, fall back to the
// whole catalog when the rarity has no cards yet, and synthesize a brand
// new card when the catalog is completely empty. The catalog therefore
// bootstraps itself without pre-seeding.
func (g *PackGenerator) Generate(ctx context.Context, uow UnitOfWork, userID int64, count int) ([]*models.Card, error) {
	if count <= 0 {
		return nil, fmt.Errorf("pack size must be positive, got %d", count)
	}

	drawn := make([]*models.Card, 0, count)
	for i := 0; i < count; i++ {
		card, err := g.drawCard(ctx, uow)
		if err != nil {
			return nil, err
		}

		entry := &models.InventoryEntry{
			OwnerID: userID,
			CardID:  card.ID,
		}
		if err := uow.InventoryRepository().Create(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record drawn card: %w", err)
		}

		drawn = append(drawn, card)
	}

	return drawn, nil
}

// drawCard picks or synthesizes one catalog card
func (g *PackGenerator) drawCard(ctx context.Context, uow UnitOfWork) (*models.Card, error) {
	rarity := g.sampleRarity()

	candidates, err := uow.CardRepository().GetByRarity(ctx, rarity)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards of rarity %s: %w", rarity, err)
	}

	if len(candidates) == 0 {
		// Degrade to whatever exists, regardless of rarity
		candidates, err = uow.CardRepository().GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load card catalog: %w", err)
		}
	}

	if len(candidates) == 0 {
		return g.synthesizeCard(ctx, uow, rarity)
	}

	return candidates[g.intn(len(candidates))], nil
}

// synthesizeCard bootstraps the catalog with a generated card of the
// sampled rarity. The insert returns the new id before any inventory row
// references it.
func (g *PackGenerator) synthesizeCard(ctx context.Context, uow UnitOfWork, rarity models.Rarity) (*models.Card, error) {
	card := &models.Card{
		Name:          fmt.Sprintf("Card %s", uuid.NewString()[:8]),
		Rarity:        rarity,
		IncomePerHour: g.table.IncomeFor(rarity),
	}

	if err := uow.CardRepository().Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to synthesize catalog card: %w", err)
	}

	return card, nil
}

func (g *PackGenerator) sampleRarity() models.Rarity {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.table.Sample(g.rng)
}

func (g *PackGenerator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

// packService implements the PackService interface
type packService struct {
	uowFactory UnitOfWorkFactory
	generator  *PackGenerator
}

// NewPackService creates a new pack service
func NewPackService(uowFactory UnitOfWorkFactory, generator *PackGenerator) PackService {
	return &packService{
		uowFactory: uowFactory,
		generator:  generator,
	}
}

// OpenPack draws count cards into the user's inventory as one atomic unit
func (s *packService) OpenPack(ctx context.Context, userID int64, count int) ([]*models.Card, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().EnsureExists(ctx, userID); err != nil {
		return nil, err
	}

	cards, err := s.generator.Generate(ctx, uow, userID, count)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.PackOpenedEvent{
		UserID:    userID,
		CardCount: len(cards),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return cards, nil
}
