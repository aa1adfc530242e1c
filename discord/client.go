package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Message is an inbound gateway message stripped down to what the
// moderation core needs.
type Message struct {
	ID        string
	GuildID   string
	ChannelID string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	Bot       bool
}

// Client wraps the Discord gateway session and the REST operations the
// moderation core uses.
type Client struct {
	token     string
	session   *discordgo.Session
	onMessage func(*Message)
	onReady   func()
}

// NewClient creates a new Discord client. Debug turns on the SDK's own
// debug logging.
func NewClient(token string, debug bool) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	if debug {
		session.LogLevel = discordgo.LogDebug
	}

	return &Client{token: token, session: session}, nil
}

// OnMessage registers the inbound message handler
func (c *Client) OnMessage(handler func(*Message)) {
	c.onMessage = handler
}

// OnReady registers the gateway-ready handler
func (c *Client) OnReady(handler func()) {
	c.onReady = handler
}

// Start registers gateway handlers and opens the connection
func (c *Client) Start() error {
	c.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		c.handleMessage(m)
	})
	c.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		fmt.Printf("[Discord] Logged in as %s (ID %s)\n", r.User.Username, r.User.ID)
		if c.onReady != nil {
			c.onReady()
		}
	})

	fmt.Println("[Discord] Opening gateway connection...")
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}
	return nil
}

// Stop closes the gateway connection
func (c *Client) Stop() {
	if err := c.session.Close(); err != nil {
		fmt.Printf("[Discord] Close error: %v\n", err)
	}
}

// BotUserID returns the bot's own user ID, empty before ready
func (c *Client) BotUserID() string {
	if c.session.State != nil && c.session.State.User != nil {
		return c.session.State.User.ID
	}
	return ""
}

func (c *Client) handleMessage(m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == c.BotUserID() {
		return
	}

	msg := &Message{
		ID:        m.ID,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		Content:   m.Content,
		CreatedAt: m.Timestamp,
		Bot:       m.Author.Bot,
	}

	if c.onMessage != nil {
		c.onMessage(msg)
	}
}

// DeleteMessage deletes a single message
func (c *Client) DeleteMessage(channelID, messageID string) error {
	return c.session.ChannelMessageDelete(channelID, messageID)
}

// RecentMessageIDsByAuthor returns up to limit recent message IDs by the
// author in the channel, newest first.
func (c *Client) RecentMessageIDsByAuthor(channelID, authorID string, limit int) ([]string, error) {
	msgs, err := c.session.ChannelMessages(channelID, 50, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel messages: %w", err)
	}

	var ids []string
	for _, m := range msgs {
		if len(ids) >= limit {
			break
		}
		if m.Author != nil && m.Author.ID == authorID {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

// BulkDeleteMessages deletes a batch of messages in one call
func (c *Client) BulkDeleteMessages(channelID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	if len(messageIDs) == 1 {
		return c.session.ChannelMessageDelete(channelID, messageIDs[0])
	}
	return c.session.ChannelMessagesBulkDelete(channelID, messageIDs)
}

// SendText sends a plain text message to a channel
func (c *Client) SendText(channelID, text string) error {
	_, err := c.session.ChannelMessageSend(channelID, text)
	return err
}

// AddRole assigns a role to a member
func (c *Client) AddRole(guildID, memberID, roleID string) error {
	return c.session.GuildMemberRoleAdd(guildID, memberID, roleID)
}

// RemoveRole removes a role from a member
func (c *Client) RemoveRole(guildID, memberID, roleID string) error {
	return c.session.GuildMemberRoleRemove(guildID, memberID, roleID)
}

// MemberRoles returns the member's current role IDs
func (c *Client) MemberRoles(guildID, memberID string) ([]string, error) {
	member, err := c.session.GuildMember(guildID, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}
	return member.Roles, nil
}

// RoleExists checks whether a role is still present in the guild
func (c *Client) RoleExists(guildID, roleID string) (bool, error) {
	roles, err := c.session.GuildRoles(guildID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch guild roles: %w", err)
	}
	for _, role := range roles {
		if role.ID == roleID {
			return true, nil
		}
	}
	return false, nil
}

// CreateMutedRole creates a permissionless "Muted" role and denies it
// send-messages on every channel it can reach. Channel overwrite failures
// are best-effort.
func (c *Client) CreateMutedRole(guildID string) (string, error) {
	noPerms := int64(0)
	role, err := c.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        "Muted",
		Permissions: &noPerms,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create mute role: %w", err)
	}

	channels, err := c.session.GuildChannels(guildID)
	if err != nil {
		fmt.Printf("[Discord] Could not list channels for overwrites: %v\n", err)
		return role.ID, nil
	}
	for _, ch := range channels {
		err := c.session.ChannelPermissionSet(
			ch.ID, role.ID, discordgo.PermissionOverwriteTypeRole,
			0, discordgo.PermissionSendMessages)
		if err != nil {
			fmt.Printf("[Discord] Overwrite failed on channel %s: %v\n", ch.ID, err)
		}
	}

	return role.ID, nil
}

// MemberPermissions returns the member's effective permission bits in the
// given channel.
func (c *Client) MemberPermissions(channelID, memberID string) (int64, error) {
	perms, err := c.session.UserChannelPermissions(memberID, channelID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute permissions: %w", err)
	}
	return perms, nil
}
