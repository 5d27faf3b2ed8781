package bot

import (
	"fmt"
	"strings"

	"cardbot/config"
	"cardbot/events"
	"cardbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
	Bundles []config.PackBundle
}

type Bot struct {
	config         Config
	session        *discordgo.Session
	accountService service.AccountService
	packService    service.PackService
	tradeService   service.TradeService
	catalogService service.CatalogService
	eventBus       *events.Bus
}

func New(config Config, accountService service.AccountService, packService service.PackService, tradeService service.TradeService, catalogService service.CatalogService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	bot := &Bot{
		config:         config,
		session:        dg,
		accountService: accountService,
		packService:    packService,
		tradeService:   tradeService,
		catalogService: catalogService,
		eventBus:       eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleComponentInteractions)

	// Register message-content commands (trade proposals, admin card adds)
	dg.AddHandler(bot.handleMessage)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Subscribe to trade events for DM notifications
	bot.subscribeTradeNotifications()

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleComponentInteractions routes button presses by custom ID prefix
func (b *Bot) handleComponentInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, "shop_buy:"):
		b.handleShopBuy(s, i, customID)
	case strings.HasPrefix(customID, "trade_accept:"), strings.HasPrefix(customID, "trade_reject:"):
		b.handleTradeResponse(s, i, customID)
	}
}
