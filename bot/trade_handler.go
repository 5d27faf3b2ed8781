package bot

import (
	"context"
	"fmt"
	"strings"

	"cardbot/bot/common"
	"cardbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleTradeResponse handles trade_accept:<id> / trade_reject:<id> button
// presses. The service re-validates target and ownership, so a press on a
// stale message fails with a specific error instead of double-resolving.
func (b *Bot) handleTradeResponse(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	action, rawID, ok := strings.Cut(customID, ":")
	if !ok {
		b.respondWithError(s, i, "Invalid trade button")
		return
	}

	tradeID, err := parseDiscordID(rawID)
	if err != nil {
		b.respondWithError(s, i, "Invalid trade ID")
		return
	}

	userID, err := interactionUserID(i)
	if err != nil {
		b.respondWithError(s, i, "Invalid user ID")
		return
	}

	ctx := context.Background()

	var trade *models.Trade
	switch action {
	case "trade_accept":
		trade, err = b.tradeService.Accept(ctx, tradeID, userID)
	case "trade_reject":
		trade, err = b.tradeService.Reject(ctx, tradeID, userID)
	default:
		b.respondWithError(s, i, "Invalid trade button")
		return
	}
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	var msg string
	if trade.Status == models.TradeStatusAccepted {
		msg = fmt.Sprintf("✅ Trade #%d accepted — the card is now yours.", trade.ID)
	} else {
		msg = fmt.Sprintf("❌ Trade #%d rejected.", trade.ID)
	}
	if err := common.RespondWithMessage(s, i, msg, false); err != nil {
		log.Errorf("Error responding to trade button: %v", err)
	}
}

// tradeResponseComponents builds the accept/reject buttons for a trade offer
func tradeResponseComponents(tradeID int64) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Accept",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("trade_accept:%d", tradeID),
				},
				discordgo.Button{
					Label:    "Reject",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("trade_reject:%d", tradeID),
				},
			},
		},
	}
}
