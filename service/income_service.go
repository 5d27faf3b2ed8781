package service

import (
	"context"
	"fmt"
	"time"

	"cardbot/models"

	log "github.com/sirupsen/logrus"
)

// incomeService implements the IncomeService interface. Each tick credits
// every card owner with the summed hourly income of their collection.
type incomeService struct {
	uowFactory UnitOfWorkFactory
	interval   time.Duration
}

// NewIncomeService creates a new passive income service
func NewIncomeService(uowFactory UnitOfWorkFactory, interval time.Duration) IncomeService {
	return &incomeService{
		uowFactory: uowFactory,
		interval:   interval,
	}
}

// Tick runs one income pass. Users with no cards or zero total income get
// no write at all. One user's failure is logged and does not stop the pass.
func (s *incomeService) Tick(ctx context.Context) error {
	totals, err := s.loadIncomeTotals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load income totals: %w", err)
	}

	var successCount, failureCount int
	for _, total := range totals {
		if err := s.creditUser(ctx, total); err != nil {
			log.Errorf("Error crediting passive income to user %d: %v", total.UserID, err)
			failureCount++
			continue
		}
		successCount++
	}

	log.WithFields(log.Fields{
		"users_credited": successCount,
		"failed":         failureCount,
	}).Info("Completed passive income pass")

	return nil
}

// loadIncomeTotals reads the per-owner income sums in a short read-only transaction
func (s *incomeService) loadIncomeTotals(ctx context.Context) ([]*models.IncomeTotal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.InventoryRepository().IncomeTotals(ctx)
}

// creditUser credits one user's income in its own transaction, isolating
// failures from the rest of the pass
func (s *incomeService) creditUser(ctx context.Context, total *models.IncomeTotal) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, total.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		// Owner deleted between the aggregate read and the credit
		return nil
	}

	newBalance, err := uow.UserRepository().AddBalance(ctx, total.UserID, total.Total)
	if err != nil {
		return err
	}

	// Audit figures come from the credit statement itself, not the earlier
	// read that a concurrent purchase could make stale.
	history := &models.BalanceHistory{
		UserID:          total.UserID,
		BalanceBefore:   newBalance - total.Total,
		BalanceAfter:    newBalance,
		ChangeAmount:    total.Total,
		TransactionType: models.TransactionTypePassiveIncome,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Start launches the periodic worker. A failed tick is logged and the loop
// keeps going; a missed tick is simply lost income, never backfilled.
func (s *incomeService) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Infof("Passive income worker started, interval %s", s.interval)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Passive income worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Passive income worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				if err := s.Tick(ctx); err != nil {
					log.Errorf("Error running passive income pass: %v", err)
				}
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}
