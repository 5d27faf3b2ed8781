package common

import (
	"fmt"
	"strings"
	"time"

	"cardbot/models"
)

// FormatBalance formats a coin amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// RarityEmoji returns the marker shown next to a card of the given rarity
func RarityEmoji(rarity models.Rarity) string {
	switch rarity {
	case models.RarityLegendary:
		return "🟡"
	case models.RarityEpic:
		return "🟣"
	case models.RarityRare:
		return "🔵"
	default:
		return "⚪"
	}
}

// FormatCardLine renders a one-line card summary for embeds and DMs
func FormatCardLine(name string, rarity models.Rarity, incomePerHour int64) string {
	return fmt.Sprintf("%s **%s** (%s, %d coins/hr)", RarityEmoji(rarity), name, rarity, incomePerHour)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
