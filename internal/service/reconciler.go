package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wardenbot/warden/internal/biz/repo"
	"github.com/wardenbot/warden/internal/biz/usecase"
)

// MuteReconciler lifts timed mutes once they expire
type MuteReconciler struct {
	muteUC       *usecase.MuteUsecase
	settingsRepo repo.SettingsRepo

	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewMuteReconciler creates a new mute reconciler
func NewMuteReconciler(muteUC *usecase.MuteUsecase, settingsRepo repo.SettingsRepo, interval time.Duration) *MuteReconciler {
	return &MuteReconciler{
		muteUC:       muteUC,
		settingsRepo: settingsRepo,
		interval:     interval,
	}
}

// Start starts the reconcile loop
func (r *MuteReconciler) Start(ctx context.Context) {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.loop()

	fmt.Printf("[Reconciler] Started with interval %v\n", r.interval)
}

// Stop stops the reconcile loop
func (r *MuteReconciler) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	fmt.Println("[Reconciler] Stopped")
}

func (r *MuteReconciler) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.Reconcile(time.Now())
		}
	}
}

// Reconcile lifts every mute that has expired as of now. It works on a
// snapshot of the index so the loop never races with new punishments,
// and a failure on one record never blocks the rest.
func (r *MuteReconciler) Reconcile(now time.Time) {
	ctx := context.Background()

	for _, punishment := range r.muteUC.Snapshot() {
		if punishment.Duration == nil {
			continue
		}
		if !punishment.ExpiredAt(now) {
			continue
		}

		settings, err := r.settingsRepo.Get(ctx, punishment.GuildID)
		if err != nil {
			// Lifting without the role ID would strand the role on the
			// member; leave the record for the next tick instead
			fmt.Printf("[Reconciler] Failed to load settings for guild %s: %v\n", punishment.GuildID, err)
			continue
		}
		roleID := ""
		if settings != nil {
			roleID = settings.MuteRoleID
		}

		if _, err := r.muteUC.Lift(ctx, punishment.GuildID, punishment.MemberID, roleID); err != nil {
			fmt.Printf("[Reconciler] Failed to lift mute for %s: %v\n", punishment.MemberID, err)
			continue
		}
		fmt.Printf("[Reconciler] Lifted expired mute for %s\n", punishment.MemberID)
	}
}
