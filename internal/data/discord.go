package data

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/wardenbot/warden/discord"
	"github.com/wardenbot/warden/internal/biz/repo"
)

// discordRepo implements the platform repository over the Discord client
type discordRepo struct {
	client *discord.Client
}

// NewDiscordRepo creates a new Discord platform repository
func NewDiscordRepo(client *discord.Client) repo.PlatformRepo {
	return &discordRepo{client: client}
}

// DeleteMessage deletes a single message
func (r *discordRepo) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return r.client.DeleteMessage(channelID, messageID)
}

// PurgeByAuthor deletes up to limit recent messages by the author.
// Finding nothing to delete is success.
func (r *discordRepo) PurgeByAuthor(ctx context.Context, channelID, authorID string, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	ids, err := r.client.RecentMessageIDsByAuthor(channelID, authorID, limit)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := r.client.BulkDeleteMessages(channelID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// SendNotice sends a notification message to a channel
func (r *discordRepo) SendNotice(ctx context.Context, channelID, text string) error {
	return r.client.SendText(channelID, text)
}

// AddRole assigns a role to a member
func (r *discordRepo) AddRole(ctx context.Context, guildID, memberID, roleID string) error {
	return r.client.AddRole(guildID, memberID, roleID)
}

// RemoveRole removes a role from a member
func (r *discordRepo) RemoveRole(ctx context.Context, guildID, memberID, roleID string) error {
	return r.client.RemoveRole(guildID, memberID, roleID)
}

// HasRole checks whether the member currently carries the role
func (r *discordRepo) HasRole(ctx context.Context, guildID, memberID, roleID string) (bool, error) {
	roles, err := r.client.MemberRoles(guildID, memberID)
	if err != nil {
		return false, err
	}
	for _, id := range roles {
		if id == roleID {
			return true, nil
		}
	}
	return false, nil
}

// EnsureMuteRole returns the configured role when it still exists,
// otherwise creates a fresh Muted role.
func (r *discordRepo) EnsureMuteRole(ctx context.Context, guildID, roleID string) (string, error) {
	if roleID != "" {
		exists, err := r.client.RoleExists(guildID, roleID)
		if err == nil && exists {
			return roleID, nil
		}
	}
	return r.client.CreateMutedRole(guildID)
}

// HasManageMessages checks the member's message-management privilege
func (r *discordRepo) HasManageMessages(ctx context.Context, channelID, memberID string) (bool, error) {
	perms, err := r.client.MemberPermissions(channelID, memberID)
	if err != nil {
		return false, err
	}
	return perms&discordgo.PermissionManageMessages != 0, nil
}

// HasManageGuild checks the member's guild-management privilege
func (r *discordRepo) HasManageGuild(ctx context.Context, channelID, memberID string) (bool, error) {
	perms, err := r.client.MemberPermissions(channelID, memberID)
	if err != nil {
		return false, err
	}
	return perms&discordgo.PermissionManageServer != 0, nil
}
