package bot

import (
	"context"

	"cardbot/bot/common"
	"cardbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handlePackCommand handles /pack: ensure the account exists, then claim the
// cooldown-gated free pack
func (b *Bot) handlePackCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := interactionUserID(i)
	if err != nil {
		b.respondWithError(s, i, "Invalid user ID")
		return
	}

	ctx := context.Background()

	if _, err := b.accountService.EnsureAccount(ctx, userID); err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	cards, err := b.accountService.ClaimFreePack(ctx, userID)
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	embed := buildPackEmbed("You opened a free pack!", cards)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to /pack: %v", err)
	}
}

// handleGrantCommand handles /grant: admins open a pack on another player's behalf
func (b *Bot) handleGrantCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	actorID, err := interactionUserID(i)
	if err != nil {
		b.respondWithError(s, i, "Invalid user ID")
		return
	}

	if !isAdmin(actorID) {
		b.respondWithError(s, i, "Access denied: this action is restricted to administrators.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) < 2 {
		b.respondWithError(s, i, "Please specify a user and a card count")
		return
	}

	targetUser := options[0].UserValue(s)
	count := options[1].IntValue()
	if targetUser == nil {
		b.respondWithError(s, i, "Invalid user specified")
		return
	}
	if count <= 0 || count > 50 {
		b.respondWithError(s, i, "Card count must be between 1 and 50")
		return
	}

	targetID, err := parseDiscordID(targetUser.ID)
	if err != nil {
		b.respondWithError(s, i, "Invalid target user ID")
		return
	}

	cards, err := b.packService.OpenPack(context.Background(), targetID, int(count))
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	embed := buildPackEmbed("Pack granted to "+targetUser.Username, cards)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to /grant: %v", err)
	}
}

// buildPackEmbed renders the cards drawn from a pack
func buildPackEmbed(title string, cards []*models.Card) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(cards))
	for _, card := range cards {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  common.RarityEmoji(card.Rarity) + " " + card.Name,
			Value: string(card.Rarity) + ", " + common.FormatBalance(card.IncomePerHour) + " coins/hr",
		})
	}

	return &discordgo.MessageEmbed{
		Title:  title,
		Color:  0x5865F2,
		Fields: fields,
	}
}
