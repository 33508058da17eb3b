// Package discord wires the Discord gateway to the time tracking
// core: voice-state transitions drive the session lifecycle, text
// commands expose stats and leaderboards, and activity roles are
// reconciled as monthly totals change.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/narlock/alder/internal/alder"
	"github.com/narlock/alder/internal/config"
	"github.com/narlock/alder/internal/roles"
	"github.com/narlock/alder/internal/streak"
	"github.com/narlock/alder/internal/timetrack"
)

// Bot represents the Discord bot
type Bot struct {
	session  *discordgo.Session
	cfg      *config.Bot
	api      *alder.Client
	tracker  *timetrack.Tracker
	streaks  *streak.Service
	assigner *roles.Assigner
	logger   *slog.Logger

	focusChannels map[string]bool

	startupOnce sync.Once
	stopSweep   context.CancelFunc
}

// New creates a new Discord bot
func New(cfg *config.Bot, api *alder.Client, tracker *timetrack.Tracker, streaks *streak.Service, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	if logger == nil {
		logger = slog.Default()
	}

	bot := &Bot{
		session:       session,
		cfg:           cfg,
		api:           api,
		tracker:       tracker,
		streaks:       streaks,
		logger:        logger,
		focusChannels: make(map[string]bool, len(cfg.FocusChannelIDs)),
	}
	for _, id := range cfg.FocusChannelIDs {
		bot.focusChannels[id] = true
	}

	bot.assigner, err = roles.NewAssigner(sessionRoles{session}, api, cfg.TierRoleIDs, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create role assigner: %w", err)
	}

	session.AddHandler(bot.guildCreate)
	session.AddHandler(bot.voiceStateUpdate)
	session.AddHandler(bot.messageCreate)

	return bot, nil
}

// Start opens the gateway connection and begins the periodic sweep.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.stopSweep = cancel
	sweeper := timetrack.NewSweeper(b.tracker, b.cfg.SweepInterval, b.reconcileGuildRoles, b.logger)
	go sweeper.Start(ctx)

	b.logger.Info("bot is running", slog.String("guild_id", b.cfg.GuildID))
	return nil
}

// Stop flushes every active session and closes the gateway. Users
// connected at shutdown keep the time they focused.
func (b *Bot) Stop() error {
	if b.stopSweep != nil {
		b.stopSweep()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	results := b.tracker.OnShutdown(ctx, time.Now().UTC())
	b.logger.Info("shutdown flush complete", slog.Int("sessions", len(results)))

	return b.session.Close()
}

func (b *Bot) isFocusChannel(channelID string) bool {
	return channelID != "" && b.focusChannels[channelID]
}

// guildCreate fires when the guild becomes available after connect.
// Members already sitting in focus channels start accruing from now;
// their earlier unobserved time is not reconstructed.
func (b *Bot) guildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.ID != b.cfg.GuildID {
		return
	}
	b.startupOnce.Do(func() {
		var connected []string
		for _, vs := range g.VoiceStates {
			if b.isFocusChannel(vs.ChannelID) {
				connected = append(connected, vs.UserID)
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		b.tracker.OnStartup(ctx, connected, time.Now().UTC())
	})
}

// voiceStateUpdate handles focus channel joins and leaves.
func (b *Bot) voiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if vs.GuildID != b.cfg.GuildID {
		return
	}

	wasIn := vs.BeforeUpdate != nil && b.isFocusChannel(vs.BeforeUpdate.ChannelID)
	nowIn := b.isFocusChannel(vs.ChannelID)
	if wasIn == nowIn {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	now := time.Now().UTC()

	if nowIn {
		b.tracker.OnJoin(ctx, vs.UserID, now)
		return
	}

	res := b.tracker.OnLeave(ctx, vs.UserID, now)
	if res.ElapsedSeconds > 0 {
		b.checkRoles(ctx, vs.UserID)
	}
}

// checkRoles reconciles the member's activity role after their
// monthly total moved.
func (b *Bot) checkRoles(ctx context.Context, userID string) {
	if err := b.assigner.Reconcile(ctx, b.cfg.GuildID, userID); err != nil {
		b.logger.Error("role reconcile failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}

// reconcileGuildRoles re-checks every guild member holding a tier
// role. Runs when the UTC month rolls over and the monthly counters
// restart, so roles earned last month are revoked even for members
// not currently in a voice channel.
func (b *Bot) reconcileGuildRoles(ctx context.Context) {
	if err := b.assigner.ReconcileHolders(ctx, b.cfg.GuildID, sessionRoles{b.session}); err != nil {
		b.logger.Error("guild role reconcile failed", slog.String("error", err.Error()))
	}
}

// messageCreate handles message creation events
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot || m.GuildID != b.cfg.GuildID {
		return
	}

	content := strings.TrimSpace(m.Content)

	switch {
	case content == "!stats" || strings.HasPrefix(content, "!stats "):
		b.handleStatsCommand(s, m)
	case content == "!streak":
		b.handleStreakCommand(s, m)
	case content == "!top" || strings.HasPrefix(content, "!top "):
		b.handleTopCommand(s, m)
	case content == "!shutdown":
		b.handleShutdownCommand(s, m)
	}
}

// sessionRoles adapts the discordgo session to the role assigner.
type sessionRoles struct {
	s *discordgo.Session
}

func (r sessionRoles) MemberRoles(guildID, userID string) ([]string, error) {
	member, err := r.s.State.Member(guildID, userID)
	if err != nil {
		member, err = r.s.GuildMember(guildID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get member %s: %w", userID, err)
		}
	}
	return member.Roles, nil
}

func (r sessionRoles) AddRole(guildID, userID, roleID string) error {
	return r.s.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (r sessionRoles) RemoveRole(guildID, userID, roleID string) error {
	return r.s.GuildMemberRoleRemove(guildID, userID, roleID)
}

// ListMembers returns every guild member's role IDs, preferring the
// state cache and falling back to paginated REST fetches.
func (r sessionRoles) ListMembers(guildID string) (map[string][]string, error) {
	out := make(map[string][]string)

	if g, err := r.s.State.Guild(guildID); err == nil && len(g.Members) > 0 {
		for _, m := range g.Members {
			out[m.User.ID] = m.Roles
		}
		return out, nil
	}

	after := ""
	for {
		members, err := r.s.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of %s: %w", guildID, err)
		}
		if len(members) == 0 {
			return out, nil
		}
		for _, m := range members {
			out[m.User.ID] = m.Roles
		}
		after = members[len(members)-1].User.ID
	}
}
