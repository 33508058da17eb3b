package roles

import (
	"context"
	"fmt"
	"log/slog"
)

// RoleManager is the slice of the Discord API the assigner needs.
type RoleManager interface {
	MemberRoles(guildID, userID string) ([]string, error)
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
}

// MonthlyTotals reads a user's month-to-date focus seconds.
// Implemented by the Alder API client.
type MonthlyTotals interface {
	MonthToDateSeconds(ctx context.Context, userID string) (int64, error)
}

// MemberLister enumerates guild members with the role IDs they hold.
type MemberLister interface {
	ListMembers(guildID string) (map[string][]string, error)
}

// Assigner reconciles a member's activity role against their
// month-to-date hours. The tier is recomputed from the durable total
// on every check; nothing about previously granted roles is cached.
type Assigner struct {
	roles   RoleManager
	monthly MonthlyTotals
	// tierRoleIDs holds the six role IDs, Tier1 first.
	tierRoleIDs []string
	logger      *slog.Logger
}

// NewAssigner creates an Assigner. tierRoleIDs must hold exactly six
// role IDs, lowest tier first; pass nil to disable role management.
func NewAssigner(roles RoleManager, monthly MonthlyTotals, tierRoleIDs []string, logger *slog.Logger) (*Assigner, error) {
	if tierRoleIDs != nil && len(tierRoleIDs) != 6 {
		return nil, fmt.Errorf("expected six tier role IDs, got %d", len(tierRoleIDs))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assigner{
		roles:       roles,
		monthly:     monthly,
		tierRoleIDs: tierRoleIDs,
		logger:      logger,
	}, nil
}

// Enabled reports whether tier roles are configured.
func (a *Assigner) Enabled() bool {
	return len(a.tierRoleIDs) == 6
}

// roleID returns the Discord role for a tier, or "" for TierNone.
func (a *Assigner) roleID(t Tier) string {
	if t == TierNone || !a.Enabled() {
		return ""
	}
	return a.tierRoleIDs[int(t)-1]
}

// Reconcile makes the member's roles reflect exactly the tier implied
// by their current monthly hours: the matching tier role is granted if
// missing and every other tier role held is revoked.
func (a *Assigner) Reconcile(ctx context.Context, guildID, userID string) error {
	if !a.Enabled() {
		return nil
	}

	seconds, err := a.monthly.MonthToDateSeconds(ctx, userID)
	if err != nil {
		return fmt.Errorf("month-to-date time for %s: %w", userID, err)
	}
	tier := TierForMonthlySeconds(seconds)
	wantRole := a.roleID(tier)

	held, err := a.roles.MemberRoles(guildID, userID)
	if err != nil {
		return fmt.Errorf("member roles for %s: %w", userID, err)
	}
	heldSet := make(map[string]bool, len(held))
	for _, id := range held {
		heldSet[id] = true
	}

	for _, id := range a.tierRoleIDs {
		if id == wantRole || !heldSet[id] {
			continue
		}
		if err := a.roles.RemoveRole(guildID, userID, id); err != nil {
			return fmt.Errorf("remove role %s from %s: %w", id, userID, err)
		}
	}

	if wantRole != "" && !heldSet[wantRole] {
		if err := a.roles.AddRole(guildID, userID, wantRole); err != nil {
			return fmt.Errorf("add role %s to %s: %w", wantRole, userID, err)
		}
		a.logger.Info("activity role assigned",
			slog.String("user_id", userID),
			slog.String("tier", tier.String()),
		)
	}
	return nil
}

// holdsTierRole reports whether any of roleIDs is a configured tier
// role.
func (a *Assigner) holdsTierRole(roleIDs []string) bool {
	for _, held := range roleIDs {
		for _, tier := range a.tierRoleIDs {
			if held == tier {
				return true
			}
		}
	}
	return false
}

// ReconcileHolders re-checks every guild member currently holding a
// tier role. Run when the monthly counters restart, so members whose
// new month-to-date total no longer earns their role lose it even if
// they are not in a voice channel at the time. A failed member is
// logged and the walk continues.
func (a *Assigner) ReconcileHolders(ctx context.Context, guildID string, members MemberLister) error {
	if !a.Enabled() {
		return nil
	}

	byUser, err := members.ListMembers(guildID)
	if err != nil {
		return fmt.Errorf("list members of %s: %w", guildID, err)
	}

	checked := 0
	for userID, held := range byUser {
		if !a.holdsTierRole(held) {
			continue
		}
		checked++
		if err := a.Reconcile(ctx, guildID, userID); err != nil {
			a.logger.Error("role reconcile failed",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}
	a.logger.Info("tier role holders reconciled", slog.Int("checked", checked))
	return nil
}
