package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linear-view/linview/internal/config"
)

func TestRunInitWithDeps_CreatesConfig(t *testing.T) {
	dir := t.TempDir()

	cmd := newInitCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	opts := &initOptions{apiKey: "lin_api_abc", masterToken: "master-secret", endpoint: "https://api.linear.app/graphql"}
	if err := runInitWithDeps(cmd, opts, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	if cfg.APIKey != "lin_api_abc" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.MasterToken != "master-secret" {
		t.Errorf("MasterToken = %q", cfg.MasterToken)
	}
	if cfg.Defaults.Priority != "medium" {
		t.Errorf("Defaults.Priority = %q, want medium", cfg.Defaults.Priority)
	}
}

func TestRunInitWithDeps_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte("api_key: existing\n"), 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	err := runInitWithDeps(newInitCommand(), &initOptions{}, dir)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected overwrite refusal, got: %v", err)
	}
}

func TestRunInitWithDeps_Force(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte("api_key: existing\n"), 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	opts := &initOptions{apiKey: "new-key", force: true}
	if err := runInitWithDeps(newInitCommand(), opts, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	if cfg.APIKey != "new-key" {
		t.Errorf("APIKey = %q, want new-key", cfg.APIKey)
	}
}

func TestRunInitWithDeps_HintsWhenNoAPIKey(t *testing.T) {
	dir := t.TempDir()

	cmd := newInitCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := runInitWithDeps(cmd, &initOptions{}, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), config.EnvAPIKey) {
		t.Errorf("expected env var hint, got: %s", buf.String())
	}
}
