package bot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cardbot/bot/common"
	"cardbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// inv#<id> followed by the recipient, as a raw ID or an @mention
var tradeProposalPattern = regexp.MustCompile(`^inv#(\d+)\s+<?@?!?(\d+)>?$`)

// handleMessage parses message-content commands: trade proposals and admin
// catalog additions
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	content := strings.TrimSpace(m.Content)

	if strings.HasPrefix(content, "inv#") {
		b.handleTradeProposalMessage(s, m, content)
		return
	}

	// "Name | rarity | coinsPerHour" adds a catalog card
	if strings.Count(content, "|") == 2 {
		b.handleCardAddMessage(s, m, content)
	}
}

// handleTradeProposalMessage parses "inv#<id> <recipientId>" and proposes
// the trade
func (b *Bot) handleTradeProposalMessage(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	matches := tradeProposalPattern.FindStringSubmatch(content)
	if matches == nil {
		b.replyTo(s, m, "To offer a card, use `inv#<id> <recipientId>` (see `/collection` for your inventory IDs).")
		return
	}

	inventoryID, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		b.replyTo(s, m, "Invalid inventory ID.")
		return
	}
	targetID, err := strconv.ParseInt(matches[2], 10, 64)
	if err != nil {
		b.replyTo(s, m, "Invalid recipient ID.")
		return
	}

	proposerID, err := parseDiscordID(m.Author.ID)
	if err != nil {
		b.replyTo(s, m, "Invalid user ID.")
		return
	}

	trade, err := b.tradeService.Propose(context.Background(), proposerID, inventoryID, targetID)
	if err != nil {
		message, _ := common.UserMessage(err)
		b.replyTo(s, m, message)
		return
	}

	b.replyTo(s, m, fmt.Sprintf("📨 Trade #%d offered to <@%d>. They can accept or reject it from their DMs.", trade.ID, targetID))
}

// handleCardAddMessage parses "Name | rarity | coinsPerHour" (admins only);
// an attached image becomes the card art
func (b *Bot) handleCardAddMessage(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	actorID, err := parseDiscordID(m.Author.ID)
	if err != nil {
		b.replyTo(s, m, "Invalid user ID.")
		return
	}

	if !isAdmin(actorID) {
		b.replyTo(s, m, "Access denied: only administrators can add cards.")
		return
	}

	parts := strings.Split(content, "|")
	name := strings.TrimSpace(parts[0])
	rawRarity := strings.TrimSpace(parts[1])
	rawIncome := strings.TrimSpace(parts[2])

	if name == "" {
		b.replyTo(s, m, "Card name cannot be empty.")
		return
	}

	rarity, ok := models.ParseRarity(rawRarity)
	if !ok {
		b.replyTo(s, m, fmt.Sprintf("Unknown rarity %q. Use common, rare, epic or legendary.", rawRarity))
		return
	}

	incomePerHour, err := strconv.ParseInt(rawIncome, 10, 64)
	if err != nil || incomePerHour < 0 {
		b.replyTo(s, m, fmt.Sprintf("Invalid income %q, expected a non-negative number of coins per hour.", rawIncome))
		return
	}

	var imageURL *string
	if len(m.Attachments) > 0 && m.Attachments[0].URL != "" {
		imageURL = &m.Attachments[0].URL
	}

	card, err := b.catalogService.AddCard(context.Background(), actorID, name, rarity, incomePerHour, imageURL)
	if err != nil {
		message, _ := common.UserMessage(err)
		b.replyTo(s, m, message)
		return
	}

	b.replyTo(s, m, fmt.Sprintf("🆕 Added %s to the catalog (card #%d).",
		common.FormatCardLine(card.Name, card.Rarity, card.IncomePerHour), card.ID))
}

// replyTo sends a reply in the message's channel
func (b *Bot) replyTo(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		log.Errorf("Error replying to message: %v", err)
	}
}
