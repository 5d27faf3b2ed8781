package bot

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"cardbot/bot/common"
	"cardbot/config"
)

// interactionUser returns the user who triggered an interaction, whether it
// came from a guild channel or a DM
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// interactionUserID parses the triggering user's Discord ID
func interactionUserID(i *discordgo.InteractionCreate) (int64, error) {
	user := interactionUser(i)
	if user == nil {
		return 0, fmt.Errorf("interaction has no user")
	}

	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID %q: %w", user.ID, err)
	}

	return id, nil
}

// parseDiscordID parses a Discord snowflake string into an int64
func parseDiscordID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// isAdmin reports whether the given user is a configured administrator
func isAdmin(userID int64) bool {
	return config.Get().IsAdmin(userID)
}

// respondWithError sends an ephemeral error message for an interaction
func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := common.RespondWithMessage(s, i, "❌ "+message, true); err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// respondWithServiceError translates a service error and responds with it
func (b *Bot) respondWithServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	message, _ := common.UserMessage(err)
	b.respondWithError(s, i, message)
}
