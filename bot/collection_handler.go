package bot

import (
	"context"
	"fmt"
	"strings"

	"cardbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const collectionPageSize = 25

// handleCollectionCommand handles /collection: list a player's owned cards
// with their inventory IDs (needed for trade proposals)
func (b *Bot) handleCollectionCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	subject := interactionUser(i)
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		if chosen := options[0].UserValue(s); chosen != nil {
			subject = chosen
		}
	}
	if subject == nil {
		b.respondWithError(s, i, "Invalid user specified")
		return
	}

	subjectID, err := parseDiscordID(subject.ID)
	if err != nil {
		b.respondWithError(s, i, "Invalid user ID")
		return
	}

	owned, err := b.accountService.GetCollection(context.Background(), subjectID)
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	if len(owned) == 0 {
		msg := fmt.Sprintf("**%s** doesn't own any cards yet. Try `/pack`!", subject.Username)
		if err := common.RespondWithMessage(s, i, msg, false); err != nil {
			log.Errorf("Error responding to /collection: %v", err)
		}
		return
	}

	var sb strings.Builder
	var totalIncome int64
	for n, oc := range owned {
		if n == collectionPageSize {
			sb.WriteString(fmt.Sprintf("… and %d more\n", len(owned)-collectionPageSize))
			break
		}
		sb.WriteString(fmt.Sprintf("`inv#%d` %s\n", oc.InventoryID, common.FormatCardLine(oc.Name, oc.Rarity, oc.IncomePerHour)))
	}
	for _, oc := range owned {
		totalIncome += oc.IncomePerHour
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s's Collection (%d cards)", subject.Username, len(owned)),
		Description: sb.String(),
		Color:       0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Passive income: %s coins/hr", common.FormatBalance(totalIncome)),
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to /collection: %v", err)
	}
}

// handleBalanceCommand handles /balance
func (b *Bot) handleBalanceCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := interactionUserID(i)
	if err != nil {
		b.respondWithError(s, i, "Invalid user ID")
		return
	}

	ctx := context.Background()
	user, err := b.accountService.EnsureAccount(ctx, userID)
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💰 You have **%s coins**.", common.FormatBalance(user.Balance)))

	history, err := b.accountService.RecentHistory(ctx, userID, 5)
	if err != nil {
		log.Errorf("Error loading balance history for user %d: %v", userID, err)
	} else if len(history) > 0 {
		sb.WriteString("\n\nRecent activity:")
		for _, h := range history {
			sb.WriteString(fmt.Sprintf("\n%s %+d (%s)",
				common.FormatDiscordTimestamp(h.CreatedAt, "R"), h.ChangeAmount, h.TransactionType))
		}
	}

	if err := common.RespondWithMessage(s, i, sb.String(), true); err != nil {
		log.Errorf("Error responding to /balance: %v", err)
	}
}
