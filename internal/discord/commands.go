package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/narlock/alder/internal/alder"
	"github.com/narlock/alder/internal/model"
	"github.com/narlock/alder/internal/roles"
	"github.com/narlock/alder/pkg/utils"
)

const leaderboardSize = 10

// handleStatsCommand handles the !stats command. A mention argument
// shows another member's stats; the caller's own pending interval is
// banked first so the reply reflects time up to this moment.
func (b *Bot) handleStatsCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	now := time.Now().UTC()

	targetID := m.Author.ID
	args := strings.Fields(m.Content)
	if len(args) > 1 && utils.IsUserMention(args[1]) {
		targetID = utils.ExtractUserIDFromMention(args[1])
	}

	// Bank any pending interval so the reply is current. A mentioned
	// member is only snapshotted while they have a running session;
	// snapshotting an idle member would count today toward their
	// streak without them connecting.
	if targetID == m.Author.ID || b.tracker.IsTracked(targetID) {
		res := b.tracker.OnSnapshot(ctx, targetID, now)
		if res.ElapsedSeconds > 0 {
			b.checkRoles(ctx, targetID)
		}
	}

	user, err := b.api.GetUser(ctx, targetID)
	if errors.Is(err, alder.ErrNotFound) {
		b.reply(s, m.ChannelID, fmt.Sprintf("%s has no focus time yet.", utils.FormatUserMention(targetID)))
		return
	}
	if err != nil {
		b.logger.Error("failed to get user stats",
			slog.String("user_id", targetID),
			slog.String("error", err.Error()),
		)
		b.reply(s, m.ChannelID, "Could not fetch stats right now, try again in a bit.")
		return
	}

	daily, err := b.api.GetDailyTime(ctx, targetID)
	if err != nil {
		b.logger.Warn("failed to get daily time", slog.String("error", err.Error()))
	}

	monthly, err := b.api.MonthToDateSeconds(ctx, targetID)
	if err != nil {
		b.logger.Warn("failed to get monthly time", slog.String("error", err.Error()))
	}

	var rec model.Streak
	if targetID == m.Author.ID {
		rec, err = b.streaks.Current(ctx, targetID, now)
	} else {
		rec, err = b.api.GetOrCreate(ctx, targetID, now)
	}
	if err != nil {
		b.logger.Warn("failed to get streak", slog.String("error", err.Error()))
	}

	tier := roles.TierForMonthlySeconds(monthly)

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Focus stats for %s**\n", utils.FormatUserMention(targetID))
	fmt.Fprintf(&sb, "Today: %s\n", utils.FormatDuration(daily.Stime))
	fmt.Fprintf(&sb, "This month: %s (%s)\n", utils.FormatDuration(monthly), tier)
	fmt.Fprintf(&sb, "All time: %s\n", utils.FormatDuration(user.Stime))
	fmt.Fprintf(&sb, "Tokens: %d\n", user.Tokens)
	fmt.Fprintf(&sb, "Streak: %d day(s), best %d", rec.CurrentStreak, rec.HighestStreak)

	b.reply(s, m.ChannelID, sb.String())
}

// handleStreakCommand handles the !streak command
func (b *Bot) handleStreakCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	rec, err := b.streaks.Current(ctx, m.Author.ID, time.Now().UTC())
	if err != nil {
		b.logger.Error("failed to get streak",
			slog.String("user_id", m.Author.ID),
			slog.String("error", err.Error()),
		)
		b.reply(s, m.ChannelID, "Could not fetch your streak right now, try again in a bit.")
		return
	}

	msg := fmt.Sprintf("%s your current streak is **%d day(s)**. Your best is **%d**.",
		utils.FormatUserMention(m.Author.ID), rec.CurrentStreak, rec.HighestStreak)
	b.reply(s, m.ChannelID, msg)
}

// handleTopCommand handles the !top command. Accepts an optional
// category: time (default), tokens, or streak.
func (b *Bot) handleTopCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	category := "time"
	if args := strings.Fields(m.Content); len(args) > 1 {
		category = strings.ToLower(args[1])
	}

	var (
		title string
		lines []string
		err   error
	)

	switch category {
	case "time":
		title = "Top focus time"
		lines, err = b.topUserLines(ctx, "stime", func(u model.User) string {
			return utils.FormatDuration(u.Stime)
		})
	case "tokens":
		title = "Top tokens"
		lines, err = b.topUserLines(ctx, "tokens", func(u model.User) string {
			return fmt.Sprintf("%d tokens", u.Tokens)
		})
	case "streak":
		title = "Top streaks"
		lines, err = b.topStreakLines(ctx)
	default:
		b.reply(s, m.ChannelID, "Usage: `!top [time|tokens|streak]`")
		return
	}

	if err != nil {
		b.logger.Error("failed to build leaderboard",
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		b.reply(s, m.ChannelID, "Could not fetch the leaderboard right now, try again in a bit.")
		return
	}
	if len(lines) == 0 {
		b.reply(s, m.ChannelID, "Nobody on the board yet. Hop in a focus channel!")
		return
	}

	b.reply(s, m.ChannelID, fmt.Sprintf("**%s**\n%s", title, strings.Join(lines, "\n")))
}

func (b *Bot) topUserLines(ctx context.Context, field string, format func(model.User) string) ([]string, error) {
	users, err := b.api.TopUsers(ctx, field, leaderboardSize)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(users))
	for i, u := range users {
		lines = append(lines, utils.FormatLeaderboardEntry(i+1, utils.FormatUserMention(u.ID), format(u)))
	}
	return lines, nil
}

func (b *Bot) topStreakLines(ctx context.Context) ([]string, error) {
	recs, err := b.api.TopStreaks(ctx, "current_streak", leaderboardSize)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(recs))
	for i, r := range recs {
		entry := fmt.Sprintf("%d day(s)", r.CurrentStreak)
		lines = append(lines, utils.FormatLeaderboardEntry(i+1, utils.FormatUserMention(r.UserID), entry))
	}
	return lines, nil
}

// handleShutdownCommand handles the !shutdown command. Admin only:
// flushes every active session so no focus time is lost, then exits.
func (b *Bot) handleShutdownCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.isAdmin(m.GuildID, m.Author.ID) {
		b.reply(s, m.ChannelID, "You do not have permission to do that.")
		return
	}

	b.reply(s, m.ChannelID, "Saving all active sessions and shutting down.")
	b.logger.Info("shutdown requested", slog.String("user_id", m.Author.ID))

	if err := b.Stop(); err != nil {
		b.logger.Error("failed to stop bot", slog.String("error", err.Error()))
	}
	os.Exit(0)
}

func (b *Bot) isAdmin(guildID, userID string) bool {
	if b.cfg.AdminRoleID == "" {
		return false
	}
	memberRoles, err := sessionRoles{b.session}.MemberRoles(guildID, userID)
	if err != nil {
		b.logger.Warn("failed to check member roles",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return false
	}
	for _, id := range memberRoles {
		if id == b.cfg.AdminRoleID {
			return true
		}
	}
	return false
}

func (b *Bot) reply(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		b.logger.Error("failed to send message",
			slog.String("channel_id", channelID),
			slog.String("error", err.Error()),
		)
	}
}
