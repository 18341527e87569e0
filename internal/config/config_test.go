// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Thresholds.ContextWindow != 50 {
		t.Errorf("expected context window 50, got %d", cfg.Thresholds.ContextWindow)
	}
	if cfg.Thresholds.OverlapRatio != 0.8 {
		t.Errorf("expected overlap ratio 0.8, got %f", cfg.Thresholds.OverlapRatio)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.AI.Model == "" || cfg.AI.URL == "" {
		t.Error("AI defaults should be populated")
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("expected 30s AI timeout, got %v", cfg.AI.Timeout)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if cfg == nil {
		t.Fatal("expected a config, got nil")
	}
	if cfg.Thresholds.ContextWindow != 50 {
		t.Errorf("missing file should yield defaults, got %d", cfg.Thresholds.ContextWindow)
	}
}

func TestLoadOrDefault_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avg-scan.yaml")
	content := []byte("thresholds:\n  context_window: 80\nserver:\n  addr: \":9090\"\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := LoadOrDefault(path)
	if cfg.Thresholds.ContextWindow != 80 {
		t.Errorf("expected context window 80 from file, got %d", cfg.Thresholds.ContextWindow)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090 from file, got %q", cfg.Server.Addr)
	}
	// Values not in the file keep their defaults.
	if cfg.Thresholds.OverlapRatio != 0.8 {
		t.Errorf("expected default overlap ratio, got %f", cfg.Thresholds.OverlapRatio)
	}
}

func TestLoadOrDefault_SanitizesBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avg-scan.yaml")
	content := []byte("thresholds:\n  context_window: -5\n  overlap_ratio: 7.0\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := LoadOrDefault(path)
	if cfg.Thresholds.ContextWindow != 50 {
		t.Errorf("negative window should clamp to default, got %d", cfg.Thresholds.ContextWindow)
	}
	if cfg.Thresholds.OverlapRatio != 0.8 {
		t.Errorf("out-of-range ratio should clamp to default, got %f", cfg.Thresholds.OverlapRatio)
	}
}

func TestLoadOrDefault_MistralKeyFallback(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "sk-test-123")

	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if cfg.AI.APIKey != "sk-test-123" {
		t.Errorf("expected MISTRAL_API_KEY fallback, got %q", cfg.AI.APIKey)
	}
}
