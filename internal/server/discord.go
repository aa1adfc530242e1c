package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/wardenbot/warden/discord"
	"github.com/wardenbot/warden/internal/biz/domain"
	"github.com/wardenbot/warden/internal/biz/usecase"
	"github.com/wardenbot/warden/internal/service"
)

// DiscordServer connects the gateway to the command router and the
// moderation pipeline.
type DiscordServer struct {
	client     *discord.Client
	router     *CommandRouter
	automod    *service.AutomodService
	reconciler *service.MuteReconciler
	muteUC     *usecase.MuteUsecase

	readyOnce sync.Once
}

// NewDiscordServer creates a new Discord server
func NewDiscordServer(
	client *discord.Client,
	router *CommandRouter,
	automod *service.AutomodService,
	reconciler *service.MuteReconciler,
	muteUC *usecase.MuteUsecase,
) *DiscordServer {
	return &DiscordServer{
		client:     client,
		router:     router,
		automod:    automod,
		reconciler: reconciler,
		muteUC:     muteUC,
	}
}

// Start registers gateway handlers and opens the connection
func (s *DiscordServer) Start() error {
	s.client.OnReady(s.handleReady)
	s.client.OnMessage(s.handleMessage)
	return s.client.Start()
}

// Stop stops the reconcile loop and closes the gateway
func (s *DiscordServer) Stop() {
	s.reconciler.Stop()
	s.client.Stop()
}

// handleReady rebuilds the mute index from the ledger and starts the
// reconciler. Gateway reconnects fire Ready again; recovery runs once.
func (s *DiscordServer) handleReady() {
	s.readyOnce.Do(func() {
		ctx := context.Background()
		if err := s.muteUC.Rebuild(ctx); err != nil {
			fmt.Printf("[Server] Failed to rebuild mute index: %v\n", err)
		} else {
			fmt.Printf("[Server] Mute index rebuilt, %d active\n", len(s.muteUC.Snapshot()))
		}
		s.reconciler.Start(ctx)
	})
}

// handleMessage feeds guild messages through the command router and then,
// commands included, through the moderation pipeline: every message counts
// toward the activity window, and the profanity filter's command exemption
// keeps word management from tripping it. Bot authors and direct messages
// are ignored.
func (s *DiscordServer) handleMessage(msg *discord.Message) {
	if msg.Bot || msg.GuildID == "" {
		return
	}

	ctx := context.Background()
	s.router.Dispatch(ctx, msg)

	s.automod.HandleMessage(ctx, &domain.Message{
		ID:        msg.ID,
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		AuthorID:  msg.AuthorID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	})
}
