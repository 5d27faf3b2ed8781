package bot

import (
	"context"
	"fmt"
	"strconv"

	"cardbot/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// subscribeTradeNotifications wires trade lifecycle events to DM delivery.
// These fire only after the owning transaction committed; a failed DM is
// logged and swallowed, it can never affect the trade itself.
func (b *Bot) subscribeTradeNotifications() {
	b.eventBus.Subscribe(events.EventTypeTradeProposed, func(ctx context.Context, event events.Event) {
		proposed, ok := event.(events.TradeProposedEvent)
		if !ok {
			return
		}

		content := fmt.Sprintf("📨 <@%d> offered you **%s** (trade #%d).",
			proposed.ProposerID, proposed.CardName, proposed.TradeID)
		b.sendDM(proposed.TargetID, content, tradeResponseComponents(proposed.TradeID))
	})

	b.eventBus.Subscribe(events.EventTypeTradeResolved, func(ctx context.Context, event events.Event) {
		resolved, ok := event.(events.TradeResolvedEvent)
		if !ok {
			return
		}

		var content string
		if resolved.Accepted {
			content = fmt.Sprintf("✅ <@%d> accepted your offer of **%s** (trade #%d).",
				resolved.TargetID, resolved.CardName, resolved.TradeID)
		} else {
			content = fmt.Sprintf("❌ <@%d> declined your offer of **%s** (trade #%d).",
				resolved.TargetID, resolved.CardName, resolved.TradeID)
		}
		b.sendDM(resolved.ProposerID, content, nil)
	})
}

// sendDM delivers a direct message, best effort
func (b *Bot) sendDM(userID int64, content string, components []discordgo.MessageComponent) {
	channel, err := b.session.UserChannelCreate(strconv.FormatInt(userID, 10))
	if err != nil {
		log.Errorf("Failed to open DM channel with user %d: %v", userID, err)
		return
	}

	_, err = b.session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content:    content,
		Components: components,
	})
	if err != nil {
		log.Errorf("Failed to DM user %d: %v", userID, err)
	}
}
