package repo

import "context"

// PlatformRepo wraps the chat platform's role and message operations.
// Every call may fail with "not found" or "forbidden"; callers treat those
// as non-fatal and degrade to a log line.
type PlatformRepo interface {
	// DeleteMessage deletes a single message
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// PurgeByAuthor deletes up to limit recent messages by the author in the
	// channel, returning how many were removed. Finding nothing is success.
	PurgeByAuthor(ctx context.Context, channelID, authorID string, limit int) (int, error)

	// SendNotice sends a notification message to a channel
	SendNotice(ctx context.Context, channelID, text string) error

	// AddRole assigns a role to a member
	AddRole(ctx context.Context, guildID, memberID, roleID string) error

	// RemoveRole removes a role from a member
	RemoveRole(ctx context.Context, guildID, memberID, roleID string) error

	// HasRole checks whether the member currently carries the role
	HasRole(ctx context.Context, guildID, memberID, roleID string) (bool, error)

	// EnsureMuteRole validates the configured mute role, creating a fresh one
	// if it is missing, and returns the role ID to use
	EnsureMuteRole(ctx context.Context, guildID, roleID string) (string, error)

	// HasManageMessages checks the member's message-management privilege
	HasManageMessages(ctx context.Context, channelID, memberID string) (bool, error)

	// HasManageGuild checks the member's guild-management privilege
	HasManageGuild(ctx context.Context, channelID, memberID string) (bool, error)
}
