package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wardenbot/warden/internal/biz/domain"
	"github.com/wardenbot/warden/internal/biz/usecase"
)

type fakeWordlist struct {
	words []string
}

func (f *fakeWordlist) DefaultWords() []string { return f.words }

type fakeSettings struct {
	settings map[string]*domain.GuildSettings
	getErr   error

	savedMuteRoles map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{
		settings:       make(map[string]*domain.GuildSettings),
		savedMuteRoles: make(map[string]string),
	}
}

func (f *fakeSettings) Get(ctx context.Context, guildID string) (*domain.GuildSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.settings[guildID], nil
}

func (f *fakeSettings) SetProfanityEnabled(ctx context.Context, guildID string, enabled bool) error {
	return nil
}

func (f *fakeSettings) SetSpamEnabled(ctx context.Context, guildID string, enabled bool) error {
	return nil
}

func (f *fakeSettings) SetMuteRole(ctx context.Context, guildID, roleID string) error {
	f.savedMuteRoles[guildID] = roleID
	return nil
}

func (f *fakeSettings) AddWord(ctx context.Context, guildID, word string) error { return nil }

func (f *fakeSettings) RemoveWord(ctx context.Context, guildID, word string) (bool, error) {
	return false, nil
}

func (f *fakeSettings) ClearWords(ctx context.Context, guildID string) error { return nil }

func (f *fakeSettings) AddWhitelist(ctx context.Context, guildID, memberID string) error { return nil }

func (f *fakeSettings) RemoveWhitelist(ctx context.Context, guildID, memberID string) (bool, error) {
	return false, nil
}

func (f *fakeSettings) Close() error { return nil }

type fakePlatform struct {
	deletedMessages []string
	notices         []string
	purgedLimit     int
	addedRoles      []string
	removedRoles    []string
	memberRoles     map[string][]string

	muteRoleID     string
	manageMessages map[string]bool
	manageGuild    map[string]bool
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		memberRoles:    make(map[string][]string),
		muteRoleID:     "muted-role",
		manageMessages: make(map[string]bool),
		manageGuild:    make(map[string]bool),
	}
}

func (f *fakePlatform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	f.deletedMessages = append(f.deletedMessages, messageID)
	return nil
}

func (f *fakePlatform) PurgeByAuthor(ctx context.Context, channelID, authorID string, limit int) (int, error) {
	f.purgedLimit = limit
	return limit, nil
}

func (f *fakePlatform) SendNotice(ctx context.Context, channelID, text string) error {
	f.notices = append(f.notices, text)
	return nil
}

func (f *fakePlatform) AddRole(ctx context.Context, guildID, memberID, roleID string) error {
	f.addedRoles = append(f.addedRoles, roleID)
	f.memberRoles[memberID] = append(f.memberRoles[memberID], roleID)
	return nil
}

func (f *fakePlatform) RemoveRole(ctx context.Context, guildID, memberID, roleID string) error {
	f.removedRoles = append(f.removedRoles, roleID)
	return nil
}

func (f *fakePlatform) HasRole(ctx context.Context, guildID, memberID, roleID string) (bool, error) {
	for _, id := range f.memberRoles[memberID] {
		if id == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlatform) EnsureMuteRole(ctx context.Context, guildID, roleID string) (string, error) {
	return f.muteRoleID, nil
}

func (f *fakePlatform) HasManageMessages(ctx context.Context, channelID, memberID string) (bool, error) {
	return f.manageMessages[memberID], nil
}

func (f *fakePlatform) HasManageGuild(ctx context.Context, channelID, memberID string) (bool, error) {
	return f.manageGuild[memberID], nil
}

type fakeLedger struct {
	records    map[string]*domain.Punishment
	putErr     error
	deleteErrs map[string]error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		records:    make(map[string]*domain.Punishment),
		deleteErrs: make(map[string]error),
	}
}

func (f *fakeLedger) Put(ctx context.Context, p *domain.Punishment) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.records[p.MemberID] = p
	return nil
}

func (f *fakeLedger) Get(ctx context.Context, memberID string) (*domain.Punishment, error) {
	return f.records[memberID], nil
}

func (f *fakeLedger) Delete(ctx context.Context, memberID string) (bool, error) {
	if err := f.deleteErrs[memberID]; err != nil {
		return false, err
	}
	_, ok := f.records[memberID]
	delete(f.records, memberID)
	return ok, nil
}

func (f *fakeLedger) ListAll(ctx context.Context) ([]*domain.Punishment, error) {
	var out []*domain.Punishment
	for _, p := range f.records {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeLedger) Close() error { return nil }

type automodFixture struct {
	svc        *AutomodService
	settings   *fakeSettings
	platform   *fakePlatform
	ledger     *fakeLedger
	activityUC *usecase.ActivityUsecase
	muteUC     *usecase.MuteUsecase
}

func newAutomodFixture(t *testing.T) *automodFixture {
	t.Helper()

	settings := newFakeSettings()
	platform := newFakePlatform()
	ledger := newFakeLedger()

	profanityUC := usecase.NewProfanityUsecase(
		&fakeWordlist{words: []string{"badword"}},
		"s.",
		[]string{"profanity", "sw", "spam", "sp", "mute", "m", "unmute", "um"},
	)
	activityUC, err := usecase.NewActivityUsecase(3*time.Second, 5, 64)
	if err != nil {
		t.Fatalf("NewActivityUsecase: %v", err)
	}
	muteUC := usecase.NewMuteUsecase(ledger, platform)

	svc := NewAutomodService(profanityUC, activityUC, muteUC, settings, platform, 10*time.Second)
	return &automodFixture{
		svc:        svc,
		settings:   settings,
		platform:   platform,
		ledger:     ledger,
		activityUC: activityUC,
		muteUC:     muteUC,
	}
}

func message(id, content string) *domain.Message {
	return &domain.Message{
		ID:        id,
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		AuthorID:  "member-1",
		Content:   content,
		CreatedAt: time.Now(),
	}
}

func TestAutomod_NoSettingsRowDoesNothing(t *testing.T) {
	f := newAutomodFixture(t)

	f.svc.HandleMessage(context.Background(), message("1", "badword"))

	if len(f.platform.deletedMessages) != 0 || len(f.platform.notices) != 0 {
		t.Error("guild without settings should not be moderated")
	}
	if len(f.activityUC.Window("member-1")) != 1 {
		t.Error("message should still count toward the activity window")
	}
}

func TestAutomod_SettingsErrorSkipsPolicies(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.getErr = errors.New("db gone")

	f.svc.HandleMessage(context.Background(), message("1", "badword"))

	if len(f.platform.deletedMessages) != 0 {
		t.Error("settings error should skip moderation")
	}
}

func TestAutomod_ProfanityDeletesAndNotifies(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.settings["guild-1"] = &domain.GuildSettings{GuildID: "guild-1", ProfanityEnabled: true}

	f.svc.HandleMessage(context.Background(), message("42", "you BaD-WoRd you"))

	if len(f.platform.deletedMessages) != 1 || f.platform.deletedMessages[0] != "42" {
		t.Errorf("deleted = %v, want [42]", f.platform.deletedMessages)
	}
	if len(f.platform.notices) != 1 || f.platform.notices[0] != profanityNotice {
		t.Errorf("notices = %v", f.platform.notices)
	}
}

func TestAutomod_ProfanityDisabledLeavesMessage(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.settings["guild-1"] = &domain.GuildSettings{GuildID: "guild-1"}

	f.svc.HandleMessage(context.Background(), message("42", "badword"))

	if len(f.platform.deletedMessages) != 0 {
		t.Error("disabled filter should not delete")
	}
}

func TestAutomod_CommandInvocationExempt(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.settings["guild-1"] = &domain.GuildSettings{GuildID: "guild-1", ProfanityEnabled: true}

	f.svc.HandleMessage(context.Background(), message("42", "s.sw add badword"))

	if len(f.platform.deletedMessages) != 0 {
		t.Error("command invocations must not be deleted by the filter they manage")
	}
}

func TestAutomod_SpamMutesAndPurges(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.settings["guild-1"] = &domain.GuildSettings{GuildID: "guild-1", SpamEnabled: true}

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		f.svc.HandleMessage(ctx, message("m", "hello"))
	}

	if f.platform.purgedLimit != 6 {
		t.Errorf("purged limit = %d, want 6", f.platform.purgedLimit)
	}
	if len(f.activityUC.Window("member-1")) != 0 {
		t.Error("window should be cleared after the verdict")
	}
	p := f.muteUC.Get("member-1")
	if p == nil {
		t.Fatal("spammer should be muted")
	}
	if p.Duration == nil || *p.Duration != 10*time.Second {
		t.Errorf("auto-mute duration = %v, want 10s", p.Duration)
	}
	if len(f.platform.addedRoles) != 1 || f.platform.addedRoles[0] != "muted-role" {
		t.Errorf("added roles = %v", f.platform.addedRoles)
	}
	if len(f.platform.notices) != 1 || f.platform.notices[0] != spamNotice {
		t.Errorf("notices = %v", f.platform.notices)
	}
}

func TestAutomod_SpamBelowThresholdIgnored(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.settings["guild-1"] = &domain.GuildSettings{GuildID: "guild-1", SpamEnabled: true}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		f.svc.HandleMessage(ctx, message("m", "hello"))
	}

	if f.muteUC.IsMuted("member-1") {
		t.Error("five messages in the window should not trip the threshold")
	}
	if len(f.activityUC.Window("member-1")) != 5 {
		t.Error("window should be untouched below the threshold")
	}
}

func TestAutomod_WhitelistedSpammerClearedButUnpunished(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.settings["guild-1"] = &domain.GuildSettings{
		GuildID:       "guild-1",
		SpamEnabled:   true,
		SpamWhitelist: []string{"member-1"},
	}

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		f.svc.HandleMessage(ctx, message("m", "hello"))
	}

	if f.muteUC.IsMuted("member-1") {
		t.Error("whitelisted member must not be muted")
	}
	if f.platform.purgedLimit != 0 {
		t.Error("whitelisted member must not be purged")
	}
	if len(f.activityUC.Window("member-1")) != 0 {
		t.Error("window must still be cleared so the burst cannot re-trigger")
	}
}

func TestAutomod_ModeratorSpammerPurgedNotMuted(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.settings["guild-1"] = &domain.GuildSettings{GuildID: "guild-1", SpamEnabled: true}
	f.platform.manageMessages["member-1"] = true

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		f.svc.HandleMessage(ctx, message("m", "hello"))
	}

	if f.muteUC.IsMuted("member-1") {
		t.Error("members with message management must not be auto-muted")
	}
	if f.platform.purgedLimit != 6 {
		t.Error("the burst should still be purged")
	}
	if len(f.platform.notices) != 1 {
		t.Error("the notice should still be posted")
	}
}

func TestAutomod_FreshMuteRolePersisted(t *testing.T) {
	f := newAutomodFixture(t)
	f.settings.settings["guild-1"] = &domain.GuildSettings{GuildID: "guild-1", SpamEnabled: true, MuteRoleID: "stale-role"}
	f.platform.muteRoleID = "fresh-role"

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		f.svc.HandleMessage(ctx, message("m", "hello"))
	}

	if f.settings.savedMuteRoles["guild-1"] != "fresh-role" {
		t.Errorf("saved mute role = %q, want fresh-role", f.settings.savedMuteRoles["guild-1"])
	}
}
