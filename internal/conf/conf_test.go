package conf

import "testing"

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()

	if cfg.Commands.Prefix != "s." {
		t.Errorf("Prefix = %q, want s.", cfg.Commands.Prefix)
	}
	if cfg.Spam.WindowSeconds != 3 || cfg.Spam.Threshold != 5 {
		t.Errorf("spam defaults = %+v", cfg.Spam)
	}
	if cfg.Spam.AutoMuteSeconds != 10 || cfg.Spam.ReconcileSeconds != 1 {
		t.Errorf("mute defaults = %+v", cfg.Spam)
	}
}

func TestEnvIntOverride(t *testing.T) {
	t.Setenv("SPAM_THRESHOLD", "9")
	t.Setenv("SPAM_WINDOW_SECONDS", "not-a-number")

	cfg := LoadFromEnv()
	if cfg.Spam.Threshold != 9 {
		t.Errorf("Threshold = %d, want 9", cfg.Spam.Threshold)
	}
	if cfg.Spam.WindowSeconds != 3 {
		t.Errorf("unparseable value should keep the default, got %d", cfg.Spam.WindowSeconds)
	}
}

func TestValidate(t *testing.T) {
	cfg := LoadFromEnv()
	cfg.Discord.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing token should fail validation")
	}

	cfg.Discord.Token = "token"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Spam.Threshold = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero threshold should fail validation")
	}
}
