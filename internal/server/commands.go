package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wardenbot/warden/discord"
	"github.com/wardenbot/warden/internal/biz/domain"
	"github.com/wardenbot/warden/internal/biz/repo"
	"github.com/wardenbot/warden/internal/biz/usecase"
)

// permission a command requires of its invoker
type permission int

const (
	permManageMessages permission = iota
	permManageGuild
)

type commandHandler func(ctx context.Context, msg *discord.Message, args []string)

type command struct {
	name    string
	aliases []string
	perm    permission
	handler commandHandler
}

// CommandRouter dispatches prefix commands to moderation handlers
type CommandRouter struct {
	prefix       string
	settingsRepo repo.SettingsRepo
	platformRepo repo.PlatformRepo
	muteUC       *usecase.MuteUsecase

	commands []*command
}

// NewCommandRouter creates the router with the full command set registered
func NewCommandRouter(
	prefix string,
	settingsRepo repo.SettingsRepo,
	platformRepo repo.PlatformRepo,
	muteUC *usecase.MuteUsecase,
) *CommandRouter {
	r := &CommandRouter{
		prefix:       prefix,
		settingsRepo: settingsRepo,
		platformRepo: platformRepo,
		muteUC:       muteUC,
	}

	r.commands = []*command{
		{name: "profanity", aliases: []string{"prof", "swears", "sw", "curses"}, perm: permManageGuild, handler: r.handleProfanity},
		{name: "spam", aliases: []string{"antispam", "sp"}, perm: permManageGuild, handler: r.handleSpam},
		{name: "mute", aliases: []string{"m", "silence"}, perm: permManageMessages, handler: r.handleMute},
		{name: "unmute", aliases: []string{"um", "umt", "unm"}, perm: permManageMessages, handler: r.handleUnmute},
	}
	return r
}

// Names returns every registered command name and alias. The profanity
// filter uses this set to exempt command invocations.
func (r *CommandRouter) Names() []string {
	var names []string
	for _, cmd := range r.commands {
		names = append(names, cmd.name)
		names = append(names, cmd.aliases...)
	}
	return names
}

// Dispatch routes the message to a command handler. Returns true when the
// message was a recognized command, whether or not the invoker was allowed.
func (r *CommandRouter) Dispatch(ctx context.Context, msg *discord.Message) bool {
	content := strings.TrimSpace(msg.Content)
	if !strings.HasPrefix(strings.ToLower(content), strings.ToLower(r.prefix)) {
		return false
	}

	fields := strings.Fields(content[len(r.prefix):])
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	cmd := r.lookup(name)
	if cmd == nil {
		return false
	}

	allowed, err := r.checkPermission(ctx, msg, cmd.perm)
	if err != nil {
		fmt.Printf("[Commands] Permission check failed for %s: %v\n", msg.AuthorID, err)
		return true
	}
	if !allowed {
		r.reply(ctx, msg, "You do not have permission to use that command.")
		return true
	}

	cmd.handler(ctx, msg, args)
	return true
}

func (r *CommandRouter) lookup(name string) *command {
	for _, cmd := range r.commands {
		if name == cmd.name {
			return cmd
		}
		for _, alias := range cmd.aliases {
			if name == alias {
				return cmd
			}
		}
	}
	return nil
}

func (r *CommandRouter) checkPermission(ctx context.Context, msg *discord.Message, perm permission) (bool, error) {
	switch perm {
	case permManageGuild:
		return r.platformRepo.HasManageGuild(ctx, msg.ChannelID, msg.AuthorID)
	default:
		return r.platformRepo.HasManageMessages(ctx, msg.ChannelID, msg.AuthorID)
	}
}

func (r *CommandRouter) reply(ctx context.Context, msg *discord.Message, text string) {
	if err := r.platformRepo.SendNotice(ctx, msg.ChannelID, text); err != nil {
		fmt.Printf("[Commands] Failed to reply: %v\n", err)
	}
}

// handleProfanity manages the profanity filter: bare invocation toggles it,
// subcommands manage the guild's custom word list.
func (r *CommandRouter) handleProfanity(ctx context.Context, msg *discord.Message, args []string) {
	if len(args) == 0 {
		r.toggleProfanity(ctx, msg)
		return
	}

	switch strings.ToLower(args[0]) {
	case "add":
		if len(args) < 2 {
			r.reply(ctx, msg, "Usage: "+r.prefix+"profanity add <word>")
			return
		}
		word := strings.ToLower(args[1])
		if err := r.settingsRepo.AddWord(ctx, msg.GuildID, word); err != nil {
			fmt.Printf("[Commands] Failed to add word: %v\n", err)
			r.reply(ctx, msg, "Could not update the word list.")
			return
		}
		// The invocation itself spells out the newly banned word
		if err := r.platformRepo.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
			fmt.Printf("[Commands] Failed to delete add invocation: %v\n", err)
		}
		r.reply(ctx, msg, "Word added to the filter.")
	case "delete", "remove":
		if len(args) < 2 {
			r.reply(ctx, msg, "Usage: "+r.prefix+"profanity delete <word>")
			return
		}
		existed, err := r.settingsRepo.RemoveWord(ctx, msg.GuildID, strings.ToLower(args[1]))
		if err != nil {
			fmt.Printf("[Commands] Failed to remove word: %v\n", err)
			r.reply(ctx, msg, "Could not update the word list.")
			return
		}
		if !existed {
			r.reply(ctx, msg, "That word is not on the list.")
			return
		}
		r.reply(ctx, msg, "Word removed from the filter.")
	case "clear":
		if err := r.settingsRepo.ClearWords(ctx, msg.GuildID); err != nil {
			fmt.Printf("[Commands] Failed to clear words: %v\n", err)
			r.reply(ctx, msg, "Could not clear the word list.")
			return
		}
		r.reply(ctx, msg, "Custom word list cleared, falling back to the default list.")
	default:
		r.reply(ctx, msg, "Unknown subcommand. Use add, delete or clear.")
	}
}

func (r *CommandRouter) toggleProfanity(ctx context.Context, msg *discord.Message) {
	settings, err := r.settingsRepo.Get(ctx, msg.GuildID)
	if err != nil {
		fmt.Printf("[Commands] Failed to load settings: %v\n", err)
		r.reply(ctx, msg, "Could not load guild settings.")
		return
	}

	enabled := settings != nil && settings.ProfanityEnabled
	if err := r.settingsRepo.SetProfanityEnabled(ctx, msg.GuildID, !enabled); err != nil {
		fmt.Printf("[Commands] Failed to toggle profanity: %v\n", err)
		r.reply(ctx, msg, "Could not update guild settings.")
		return
	}
	if enabled {
		r.reply(ctx, msg, "Profanity filter disabled.")
	} else {
		r.reply(ctx, msg, "Profanity filter enabled.")
	}
}

// handleSpam manages the spam detector: bare invocation toggles it,
// subcommands manage the per-guild whitelist.
func (r *CommandRouter) handleSpam(ctx context.Context, msg *discord.Message, args []string) {
	if len(args) == 0 {
		r.toggleSpam(ctx, msg)
		return
	}

	switch strings.ToLower(args[0]) {
	case "whitelist", "wl":
		memberID, ok := parseMemberID(args[1:])
		if !ok {
			r.reply(ctx, msg, "Usage: "+r.prefix+"spam whitelist <member>")
			return
		}
		if err := r.settingsRepo.AddWhitelist(ctx, msg.GuildID, memberID); err != nil {
			fmt.Printf("[Commands] Failed to whitelist: %v\n", err)
			r.reply(ctx, msg, "Could not update the whitelist.")
			return
		}
		r.reply(ctx, msg, "Member whitelisted from spam detection.")
	case "unwhitelist", "unwl":
		memberID, ok := parseMemberID(args[1:])
		if !ok {
			r.reply(ctx, msg, "Usage: "+r.prefix+"spam unwhitelist <member>")
			return
		}
		existed, err := r.settingsRepo.RemoveWhitelist(ctx, msg.GuildID, memberID)
		if err != nil {
			fmt.Printf("[Commands] Failed to unwhitelist: %v\n", err)
			r.reply(ctx, msg, "Could not update the whitelist.")
			return
		}
		if !existed {
			r.reply(ctx, msg, "That member is not whitelisted.")
			return
		}
		r.reply(ctx, msg, "Member removed from the spam whitelist.")
	default:
		r.reply(ctx, msg, "Unknown subcommand. Use whitelist or unwhitelist.")
	}
}

func (r *CommandRouter) toggleSpam(ctx context.Context, msg *discord.Message) {
	settings, err := r.settingsRepo.Get(ctx, msg.GuildID)
	if err != nil {
		fmt.Printf("[Commands] Failed to load settings: %v\n", err)
		r.reply(ctx, msg, "Could not load guild settings.")
		return
	}

	enabled := settings != nil && settings.SpamEnabled
	if err := r.settingsRepo.SetSpamEnabled(ctx, msg.GuildID, !enabled); err != nil {
		fmt.Printf("[Commands] Failed to toggle spam: %v\n", err)
		r.reply(ctx, msg, "Could not update guild settings.")
		return
	}
	if enabled {
		r.reply(ctx, msg, "Spam detection disabled.")
	} else {
		r.reply(ctx, msg, "Spam detection enabled.")
	}
}

// handleMute mutes a member, optionally for a duration: mute <member>
// [duration] [reason...]. Without a duration the mute holds until unmute.
func (r *CommandRouter) handleMute(ctx context.Context, msg *discord.Message, args []string) {
	memberID, ok := parseMemberID(args)
	if !ok {
		r.reply(ctx, msg, "Usage: "+r.prefix+"mute <member> [duration] [reason]")
		return
	}
	rest := args[1:]

	var duration *time.Duration
	if len(rest) > 0 {
		if d, err := time.ParseDuration(rest[0]); err == nil && d > 0 {
			duration = &d
			rest = rest[1:]
		}
	}
	reason := strings.Join(rest, " ")
	if reason == "" {
		reason = "muted by moderator"
	}

	roleID, err := r.ensureMuteRole(ctx, msg.GuildID)
	if err != nil {
		fmt.Printf("[Commands] Failed to ensure mute role: %v\n", err)
		r.reply(ctx, msg, "Could not set up the mute role.")
		return
	}

	punishment := &domain.Punishment{
		MemberID:    memberID,
		GuildID:     msg.GuildID,
		ModeratorID: msg.AuthorID,
		Reason:      reason,
		CreatedAt:   time.Now(),
		Duration:    duration,
	}
	if err := r.muteUC.Issue(ctx, punishment, roleID); err != nil {
		fmt.Printf("[Commands] Failed to mute %s: %v\n", memberID, err)
		r.reply(ctx, msg, "Could not record the mute.")
		return
	}

	if duration != nil {
		r.reply(ctx, msg, fmt.Sprintf("Member muted for %v.", *duration))
	} else {
		r.reply(ctx, msg, "Member muted until further notice.")
	}
}

// handleUnmute lifts a mute early: unmute <member>
func (r *CommandRouter) handleUnmute(ctx context.Context, msg *discord.Message, args []string) {
	memberID, ok := parseMemberID(args)
	if !ok {
		r.reply(ctx, msg, "Usage: "+r.prefix+"unmute <member>")
		return
	}

	roleID := ""
	settings, err := r.settingsRepo.Get(ctx, msg.GuildID)
	if err != nil {
		fmt.Printf("[Commands] Failed to load settings: %v\n", err)
	} else if settings != nil {
		roleID = settings.MuteRoleID
	}

	existed, err := r.muteUC.Lift(ctx, msg.GuildID, memberID, roleID)
	if err != nil {
		fmt.Printf("[Commands] Failed to unmute %s: %v\n", memberID, err)
		r.reply(ctx, msg, "Could not lift the mute.")
		return
	}
	if !existed {
		r.reply(ctx, msg, "That member is not muted.")
		return
	}
	r.reply(ctx, msg, "Member unmuted.")
}

// ensureMuteRole resolves the guild's mute role, persisting a freshly
// created one back to settings.
func (r *CommandRouter) ensureMuteRole(ctx context.Context, guildID string) (string, error) {
	configured := ""
	settings, err := r.settingsRepo.Get(ctx, guildID)
	if err == nil && settings != nil {
		configured = settings.MuteRoleID
	}

	roleID, err := r.platformRepo.EnsureMuteRole(ctx, guildID, configured)
	if err != nil {
		return "", err
	}
	if roleID != configured {
		if err := r.settingsRepo.SetMuteRole(ctx, guildID, roleID); err != nil {
			fmt.Printf("[Commands] Failed to persist mute role: %v\n", err)
		}
	}
	return roleID, nil
}

// parseMemberID extracts a member ID from the first argument: a mention
// (<@id> or <@!id>) or a raw snowflake.
func parseMemberID(args []string) (string, bool) {
	if len(args) == 0 {
		return "", false
	}

	arg := args[0]
	if strings.HasPrefix(arg, "<@") && strings.HasSuffix(arg, ">") {
		arg = strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
		arg = strings.TrimPrefix(arg, "!")
	}

	if arg == "" {
		return "", false
	}
	for _, r := range arg {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return arg, true
}
