package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"detect":     false,
		"models":     false,
		"config":     false,
		"version":    false,
		"completion": false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	flags := []struct {
		name      string
		shorthand string
	}{
		{"config", "c"},
		{"verbose", "v"},
		{"port", "p"},
		{"token", "t"},
		{"override", "o"},
		{"model", "m"},
		{"secure", ""},
		{"parallel", ""},
		{"metrics-file", ""},
	}
	for _, f := range flags {
		flag := rootCmd.PersistentFlags().Lookup(f.name)
		if flag == nil {
			t.Errorf("persistent flag --%s not defined", f.name)
			continue
		}
		if flag.Shorthand != f.shorthand {
			t.Errorf("--%s shorthand = %q, want %q", f.name, flag.Shorthand, f.shorthand)
		}
	}

	if rootCmd.Flags().Lookup("no-markdown") == nil {
		t.Error("--no-markdown not defined on the root command")
	}
	if rootCmd.RunE == nil {
		t.Error("root command must start a chat")
	}
}

func TestCompletionBash(t *testing.T) {
	var buf bytes.Buffer
	completionCmd.SetOut(&buf)
	defer completionCmd.SetOut(nil)

	if err := completionCmd.RunE(completionCmd, []string{"bash"}); err != nil {
		t.Fatalf("completion bash failed: %v", err)
	}
	if !strings.Contains(buf.String(), "chatifier") {
		t.Error("bash completion does not mention chatifier")
	}

	if err := completionCmd.RunE(completionCmd, []string{"tcsh"}); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestConfigValidate(t *testing.T) {
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()
	cfgFile = ""

	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	if err := os.WriteFile(valid, []byte("detection:\n  ports: [11434, 8080]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("detection:\n  ports: [70000]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	configValidateCmd.SetOut(&buf)
	defer configValidateCmd.SetOut(nil)

	if err := runConfigValidate(configValidateCmd, []string{valid}); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if !strings.Contains(buf.String(), "valid.yaml is valid") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	err := runConfigValidate(configValidateCmd, []string{invalid})
	if err == nil {
		t.Fatal("expected error for out of range port")
	}
	if !strings.Contains(err.Error(), "70000") {
		t.Errorf("error should name the bad port: %v", err)
	}

	if err := runConfigValidate(configValidateCmd, []string{filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

func TestConfigValidateNoFile(t *testing.T) {
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()
	cfgFile = ""

	t.Setenv("CHATIFIER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	configValidateCmd.SetOut(&buf)
	defer configValidateCmd.SetOut(nil)

	if err := runConfigValidate(configValidateCmd, nil); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	if !strings.Contains(buf.String(), "No configuration file found") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
