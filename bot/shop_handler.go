package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cardbot/bot/common"
	"cardbot/config"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// findBundle looks up a configured bundle by card count
func findBundle(bundles []config.PackBundle, count int) (config.PackBundle, bool) {
	for _, b := range bundles {
		if b.Count == count {
			return b, true
		}
	}
	return config.PackBundle{}, false
}

// handleShopCommand handles /shop: show the configured bundles with one buy
// button each
func (b *Bot) handleShopCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	fields := make([]*discordgo.MessageEmbedField, 0, len(b.config.Bundles))
	buttons := make([]discordgo.MessageComponent, 0, len(b.config.Bundles))

	for _, bundle := range b.config.Bundles {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d cards", bundle.Count),
			Value:  fmt.Sprintf("%s coins", common.FormatBalance(bundle.Price)),
			Inline: true,
		})
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("Buy %d for %d", bundle.Count, bundle.Price),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("shop_buy:%d:%d", bundle.Count, bundle.Price),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🛒 Pack Shop",
		Description: "Spend your coins on extra card packs.",
		Color:       0x57F287,
		Fields:      fields,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}

	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error responding to /shop: %v", err)
	}
}

// handleShopBuy handles a shop_buy:<count>:<price> button press. The price in
// the custom ID is checked against the configured bundle, so a stale shop
// message can never sell at an outdated price.
func (b *Bot) handleShopBuy(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 {
		b.respondWithError(s, i, "Invalid shop button")
		return
	}

	count, err := strconv.Atoi(parts[1])
	if err != nil {
		b.respondWithError(s, i, "Invalid shop button")
		return
	}
	price, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		b.respondWithError(s, i, "Invalid shop button")
		return
	}

	bundle, ok := findBundle(b.config.Bundles, count)
	if !ok || bundle.Price != price {
		b.respondWithError(s, i, "That bundle is no longer available.")
		return
	}

	userID, err := interactionUserID(i)
	if err != nil {
		b.respondWithError(s, i, "Invalid user ID")
		return
	}

	cards, err := b.accountService.PurchasePack(context.Background(), userID, bundle.Count, bundle.Price)
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	title := fmt.Sprintf("You bought a %d-card pack for %s coins!", bundle.Count, common.FormatBalance(bundle.Price))
	if err := common.RespondWithEmbed(s, i, buildPackEmbed(title, cards), nil, false); err != nil {
		log.Errorf("Error responding to shop purchase: %v", err)
	}
}
