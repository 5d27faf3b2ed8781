package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"cardbot/bot"
	"cardbot/config"
	"cardbot/database"
	"cardbot/events"
	"cardbot/repository"
	"cardbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting card bot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	log.Info("Initializing services...")
	generator := service.NewPackGenerator(service.DefaultRarityTable())
	accountService := service.NewAccountService(uowFactory, generator, service.AccountConfig{
		PackCooldown: cfg.PackCooldown(),
		FreePackSize: cfg.FreePackSize,
	})
	packService := service.NewPackService(uowFactory, generator)
	tradeService := service.NewTradeService(uowFactory)
	catalogService := service.NewCatalogService(uowFactory, cfg.AdminIDs)
	incomeService := service.NewIncomeService(uowFactory, cfg.IncomeInterval())

	log.Info("Starting passive income worker...")
	stopIncome := incomeService.Start(ctx)

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
		Bundles: cfg.Bundles,
	}
	discordBot, err := bot.New(botConfig, accountService, packService, tradeService, catalogService, eventBus)
	if err != nil {
		stopIncome()
		db.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")

	stopIncome()

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
