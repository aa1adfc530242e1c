package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wardenbot/warden/internal/biz/domain"
	"github.com/wardenbot/warden/internal/biz/repo"
	"github.com/wardenbot/warden/internal/biz/usecase"
)

const (
	profanityNotice = "That word is not allowed on this server."
	spamNotice      = "Spam is not allowed on this server."
	autoMuteReason  = "sending messages too quickly"
)

// AutomodService applies the moderation policies to incoming messages
type AutomodService struct {
	profanityUC  *usecase.ProfanityUsecase
	activityUC   *usecase.ActivityUsecase
	muteUC       *usecase.MuteUsecase
	settingsRepo repo.SettingsRepo
	platformRepo repo.PlatformRepo

	autoMuteDuration time.Duration
}

// NewAutomodService creates a new automod service
func NewAutomodService(
	profanityUC *usecase.ProfanityUsecase,
	activityUC *usecase.ActivityUsecase,
	muteUC *usecase.MuteUsecase,
	settingsRepo repo.SettingsRepo,
	platformRepo repo.PlatformRepo,
	autoMuteDuration time.Duration,
) *AutomodService {
	return &AutomodService{
		profanityUC:      profanityUC,
		activityUC:       activityUC,
		muteUC:           muteUC,
		settingsRepo:     settingsRepo,
		platformRepo:     platformRepo,
		autoMuteDuration: autoMuteDuration,
	}
}

// HandleMessage runs both moderation policies against a message.
// Every message counts toward the activity window, even when both
// policies are switched off for the guild.
func (s *AutomodService) HandleMessage(ctx context.Context, msg *domain.Message) {
	s.activityUC.Record(*msg)

	settings, err := s.settingsRepo.Get(ctx, msg.GuildID)
	if err != nil {
		fmt.Printf("[Automod] Failed to load settings for guild %s: %v\n", msg.GuildID, err)
		return
	}
	if settings == nil {
		// No row means the guild never enabled anything
		return
	}

	if settings.ProfanityEnabled {
		s.applyProfanityPolicy(ctx, msg, settings)
	}
	if settings.SpamEnabled {
		s.applySpamPolicy(ctx, msg, settings)
	}
}

// applyProfanityPolicy deletes the message and posts a notice when the
// content matches the active word list. Command invocations are exempt
// so moderators can manage the list without tripping it.
func (s *AutomodService) applyProfanityPolicy(ctx context.Context, msg *domain.Message, settings *domain.GuildSettings) {
	if !s.profanityUC.Matches(msg.Content, settings) {
		return
	}
	if s.profanityUC.IsCommandInvocation(msg.Content) {
		return
	}

	if err := s.platformRepo.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
		fmt.Printf("[Automod] Failed to delete message %s: %v\n", msg.ID, err)
	}
	if err := s.platformRepo.SendNotice(ctx, msg.ChannelID, profanityNotice); err != nil {
		fmt.Printf("[Automod] Failed to send profanity notice: %v\n", err)
	}
}

// applySpamPolicy mutes and purges a member whose recent message count
// exceeds the threshold. The window is cleared before the whitelist
// check so a whitelisted burst cannot re-trigger on its trailing edge.
func (s *AutomodService) applySpamPolicy(ctx context.Context, msg *domain.Message, settings *domain.GuildSettings) {
	if !s.activityUC.IsSpamming(msg.AuthorID) {
		return
	}

	toDelete := len(s.activityUC.Window(msg.AuthorID))
	s.activityUC.Clear(msg.AuthorID)

	if settings.IsWhitelisted(msg.AuthorID) {
		return
	}

	roleID, err := s.platformRepo.EnsureMuteRole(ctx, msg.GuildID, settings.MuteRoleID)
	if err != nil {
		fmt.Printf("[Automod] Failed to ensure mute role for guild %s: %v\n", msg.GuildID, err)
		return
	}
	if roleID != settings.MuteRoleID {
		if err := s.settingsRepo.SetMuteRole(ctx, msg.GuildID, roleID); err != nil {
			fmt.Printf("[Automod] Failed to persist mute role for guild %s: %v\n", msg.GuildID, err)
		}
	}

	if _, err := s.platformRepo.PurgeByAuthor(ctx, msg.ChannelID, msg.AuthorID, toDelete); err != nil {
		fmt.Printf("[Automod] Failed to purge messages from %s: %v\n", msg.AuthorID, err)
	}

	exempt, err := s.platformRepo.HasManageMessages(ctx, msg.ChannelID, msg.AuthorID)
	if err != nil {
		fmt.Printf("[Automod] Failed to check permissions for %s: %v\n", msg.AuthorID, err)
		exempt = false
	}
	if !exempt {
		duration := s.autoMuteDuration
		punishment := &domain.Punishment{
			MemberID:    msg.AuthorID,
			GuildID:     msg.GuildID,
			ModeratorID: "",
			Reason:      autoMuteReason,
			CreatedAt:   time.Now(),
			Duration:    &duration,
		}
		if err := s.muteUC.Issue(ctx, punishment, roleID); err != nil {
			fmt.Printf("[Automod] Failed to auto-mute %s: %v\n", msg.AuthorID, err)
		}
	}

	if err := s.platformRepo.SendNotice(ctx, msg.ChannelID, spamNotice); err != nil {
		fmt.Printf("[Automod] Failed to send spam notice: %v\n", err)
	}
}
