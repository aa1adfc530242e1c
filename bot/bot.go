package bot

import (
	"fmt"
	"time"

	"github.com/wardenbot/warden/discord"
	"github.com/wardenbot/warden/internal/biz"
	"github.com/wardenbot/warden/internal/biz/usecase"
	"github.com/wardenbot/warden/internal/data"
	"github.com/wardenbot/warden/internal/server"
	"github.com/wardenbot/warden/internal/service"
)

// Config carries everything needed to assemble the bot
type Config struct {
	Token        string
	Prefix       string
	DataDir      string
	WordlistPath string

	SpamWindow        time.Duration
	SpamThreshold     int
	ActivityCacheSize int
	AutoMuteDuration  time.Duration
	ReconcileInterval time.Duration

	Debug bool
}

// Bot is the assembled moderation bot
type Bot struct {
	client *discord.Client
	repos  *data.Repositories
	srv    *server.DiscordServer
}

// New wires the full stack: client, repositories, usecases, services and
// the gateway server.
func New(cfg Config) (*Bot, error) {
	client, err := discord.NewClient(cfg.Token, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	repos, err := data.NewRepositories(client, cfg.DataDir, cfg.WordlistPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create repositories: %w", err)
	}

	activityUC, err := usecase.NewActivityUsecase(cfg.SpamWindow, cfg.SpamThreshold, cfg.ActivityCacheSize)
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("failed to create activity cache: %w", err)
	}
	muteUC := usecase.NewMuteUsecase(repos.Punishments, repos.Platform)

	router := server.NewCommandRouter(cfg.Prefix, repos.Settings, repos.Platform, muteUC)

	ucs := &biz.Usecases{
		Profanity: usecase.NewProfanityUsecase(repos.Wordlist, cfg.Prefix, router.Names()),
		Activity:  activityUC,
		Mutes:     muteUC,
	}

	automod := service.NewAutomodService(
		ucs.Profanity, ucs.Activity, ucs.Mutes,
		repos.Settings, repos.Platform,
		cfg.AutoMuteDuration,
	)
	reconciler := service.NewMuteReconciler(ucs.Mutes, repos.Settings, cfg.ReconcileInterval)

	return &Bot{
		client: client,
		repos:  repos,
		srv:    server.NewDiscordServer(client, router, automod, reconciler, ucs.Mutes),
	}, nil
}

// Start opens the gateway connection and begins processing
func (b *Bot) Start() error {
	return b.srv.Start()
}

// Stop shuts everything down in dependency order
func (b *Bot) Stop() {
	b.srv.Stop()
	b.repos.Close()
}
