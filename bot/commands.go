package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "pack",
			Description: "Open your free card pack",
		},
		{
			Name:        "shop",
			Description: "Browse purchasable card pack bundles",
		},
		{
			Name:        "collection",
			Description: "View a card collection",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player whose collection to view (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "balance",
			Description: "Check your coin balance",
		},
		{
			Name:        "grant",
			Description: "Grant a player a free pack (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to grant the pack to",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "Number of cards in the pack",
					Required:    true,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

// handleCommands routes slash commands to their handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "pack":
		b.handlePackCommand(s, i)
	case "shop":
		b.handleShopCommand(s, i)
	case "collection":
		b.handleCollectionCommand(s, i)
	case "balance":
		b.handleBalanceCommand(s, i)
	case "grant":
		b.handleGrantCommand(s, i)
	}
}
