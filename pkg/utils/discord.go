package utils

import (
	"fmt"
	"strings"
)

// FormatUserMention formats a user ID as a Discord mention
func FormatUserMention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

// ExtractUserIDFromMention extracts user ID from Discord mention
func ExtractUserIDFromMention(mention string) string {
	userID := strings.TrimPrefix(mention, "<@")
	userID = strings.TrimSuffix(userID, ">")
	// Nickname mentions carry a leading !
	userID = strings.TrimPrefix(userID, "!")
	return userID
}

// IsUserMention checks if a string is a valid user mention
func IsUserMention(text string) bool {
	return strings.HasPrefix(text, "<@") && strings.HasSuffix(text, ">")
}

// FormatLeaderboardEntry formats a leaderboard entry with rank, user, and value
func FormatLeaderboardEntry(rank int, userMention, value string) string {
	var medal string
	switch rank {
	case 1:
		medal = "🥇"
	case 2:
		medal = "🥈"
	case 3:
		medal = "🥉"
	default:
		medal = fmt.Sprintf("%d.", rank)
	}

	return fmt.Sprintf("%s %s - %s", medal, userMention, value)
}
