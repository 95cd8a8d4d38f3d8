package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetGlobal() {
	globalConfig = nil
	initOnce = *new(sync.Once)
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, `
chat:
  word_wrap: 64
`)

	if err := Initialize(path); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config after initialization")
	}
	if cfg.Chat.WordWrap != 64 {
		t.Errorf("expected word wrap 64, got %d", cfg.Chat.WordWrap)
	}
}

func TestInitialize_MultipleCallsIgnored(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	first := writeConfig(t, "chat:\n  word_wrap: 10\n")
	second := writeConfig(t, "chat:\n  word_wrap: 20\n")

	if err := Initialize(first); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}
	_ = Initialize(second)

	if got := GetConfig().Chat.WordWrap; got != 10 {
		t.Errorf("second Initialize call should be ignored, got word wrap %d", got)
	}
}

func TestInitialize_Error(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	if err := Initialize(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if GetConfig() != nil {
		t.Error("failed initialization must leave the config unset")
	}
}

func TestGetConfig_BeforeInitialize(t *testing.T) {
	resetGlobal()

	if cfg := GetConfig(); cfg != nil {
		t.Error("expected nil config before initialization")
	}
}

func TestSetConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	cfg := Default()
	cfg.Detection.Ports = []int{1234}
	SetConfig(cfg)

	got := GetConfig()
	if got == nil || len(got.Detection.Ports) != 1 || got.Detection.Ports[0] != 1234 {
		t.Fatalf("unexpected config after SetConfig: %+v", got)
	}
}

func TestReloadConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, "chat:\n  word_wrap: 30\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	if err := os.WriteFile(path, []byte("chat:\n  word_wrap: 90\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ReloadConfig(path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if got := GetConfig().Chat.WordWrap; got != 90 {
		t.Errorf("expected word wrap 90 after reload, got %d", got)
	}

	// an invalid file keeps the previous configuration
	if err := os.WriteFile(path, []byte("chat:\n  word_wrap: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ReloadConfig(path); err == nil {
		t.Fatal("expected reload to fail")
	}
	if got := GetConfig().Chat.WordWrap; got != 90 {
		t.Errorf("expected previous config to remain, got word wrap %d", got)
	}
}

func TestMustGetConfig_Panics(t *testing.T) {
	resetGlobal()

	defer func() {
		if recover() == nil {
			t.Error("expected MustGetConfig to panic before initialization")
		}
	}()
	MustGetConfig()
}
