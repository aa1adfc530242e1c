package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/wardenbot/warden/internal/biz/repo"
)

func newTestSettings(t *testing.T) repo.SettingsRepo {
	t.Helper()
	settings, err := NewSettingsRepo(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("NewSettingsRepo: %v", err)
	}
	t.Cleanup(func() { settings.Close() })
	return settings
}

func TestSettingsRepo_AbsentGuild(t *testing.T) {
	settings := newTestSettings(t)

	got, err := settings.Get(context.Background(), "200")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("guild with no settings should return nil, got %+v", got)
	}
}

func TestSettingsRepo_Toggles(t *testing.T) {
	settings := newTestSettings(t)
	ctx := context.Background()

	if err := settings.SetProfanityEnabled(ctx, "200", true); err != nil {
		t.Fatalf("SetProfanityEnabled: %v", err)
	}

	got, err := settings.Get(ctx, "200")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.ProfanityEnabled || got.SpamEnabled {
		t.Errorf("unexpected toggles: %+v", got)
	}

	_ = settings.SetSpamEnabled(ctx, "200", true)
	_ = settings.SetProfanityEnabled(ctx, "200", false)

	got, _ = settings.Get(ctx, "200")
	if got.ProfanityEnabled || !got.SpamEnabled {
		t.Errorf("unexpected toggles after flip: %+v", got)
	}
}

func TestSettingsRepo_MuteRole(t *testing.T) {
	settings := newTestSettings(t)
	ctx := context.Background()

	if err := settings.SetMuteRole(ctx, "200", "role-1"); err != nil {
		t.Fatalf("SetMuteRole: %v", err)
	}

	got, _ := settings.Get(ctx, "200")
	if got.MuteRoleID != "role-1" {
		t.Errorf("MuteRoleID = %q, want %q", got.MuteRoleID, "role-1")
	}
}

func TestSettingsRepo_Words(t *testing.T) {
	settings := newTestSettings(t)
	ctx := context.Background()

	_ = settings.AddWord(ctx, "200", "badword")
	_ = settings.AddWord(ctx, "200", "badword") // duplicate add is a no-op
	_ = settings.AddWord(ctx, "200", "another")

	got, _ := settings.Get(ctx, "200")
	if len(got.Words) != 2 {
		t.Fatalf("Words = %v, want 2 entries", got.Words)
	}

	existed, err := settings.RemoveWord(ctx, "200", "badword")
	if err != nil || !existed {
		t.Fatalf("RemoveWord existing: existed=%v err=%v", existed, err)
	}
	existed, err = settings.RemoveWord(ctx, "200", "missing")
	if err != nil || existed {
		t.Fatalf("RemoveWord missing: existed=%v err=%v", existed, err)
	}

	if err := settings.ClearWords(ctx, "200"); err != nil {
		t.Fatalf("ClearWords: %v", err)
	}
	got, _ = settings.Get(ctx, "200")
	if len(got.Words) != 0 {
		t.Errorf("Words after clear = %v", got.Words)
	}
}

func TestSettingsRepo_Whitelist(t *testing.T) {
	settings := newTestSettings(t)
	ctx := context.Background()

	_ = settings.AddWhitelist(ctx, "200", "100")

	got, _ := settings.Get(ctx, "200")
	if !got.IsWhitelisted("100") {
		t.Error("member 100 should be whitelisted")
	}
	if got.IsWhitelisted("101") {
		t.Error("member 101 should not be whitelisted")
	}

	existed, err := settings.RemoveWhitelist(ctx, "200", "100")
	if err != nil || !existed {
		t.Fatalf("RemoveWhitelist: existed=%v err=%v", existed, err)
	}
	existed, _ = settings.RemoveWhitelist(ctx, "200", "100")
	if existed {
		t.Error("second removal should report false")
	}
}

func TestSettingsRepo_GuildsAreIsolated(t *testing.T) {
	settings := newTestSettings(t)
	ctx := context.Background()

	_ = settings.AddWord(ctx, "200", "badword")
	_ = settings.SetProfanityEnabled(ctx, "201", true)

	a, _ := settings.Get(ctx, "200")
	b, _ := settings.Get(ctx, "201")

	if len(a.Words) != 1 || a.ProfanityEnabled {
		t.Errorf("guild 200 settings: %+v", a)
	}
	if len(b.Words) != 0 || !b.ProfanityEnabled {
		t.Errorf("guild 201 settings: %+v", b)
	}
}
