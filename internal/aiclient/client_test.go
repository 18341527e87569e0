// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"avg-scan/internal/config"
)

func testConfig(url string) config.AI {
	return config.AI{
		APIKey:   "test-key",
		URL:      url,
		Model:    "mistral-large-latest",
		MaxChars: 15000,
		Timeout:  5 * time.Second,
	}
}

func TestAnalyze(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"content": `{"found":[{"type":"name","value":"Jan Jansen","confidence":0.92}]}`,
				}},
			},
		})
	}))
	defer ts.Close()

	c := New(testConfig(ts.URL))
	found, err := c.Analyze(context.Background(), "Overleg met Jan Jansen.")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody.Model != "mistral-large-latest" {
		t.Errorf("unexpected model %q", gotBody.Model)
	}
	if gotBody.ResponseFormat.Type != "json_object" {
		t.Errorf("expected json_object response format, got %q", gotBody.ResponseFormat.Type)
	}
	if gotBody.Temperature != 0.1 {
		t.Errorf("expected temperature 0.1, got %f", gotBody.Temperature)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("expected system+user messages, got %v", gotBody.Messages)
	}

	if len(found) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(found))
	}
	if found[0].Type != "name" || found[0].Value != "Jan Jansen" || found[0].Confidence != 0.92 {
		t.Errorf("unexpected candidate %+v", found[0])
	}
}

func TestAnalyze_TruncatesLongText(t *testing.T) {
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"found":[]}`}},
			},
		})
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.MaxChars = 100
	c := New(cfg)

	if _, err := c.Analyze(context.Background(), strings.Repeat("a", 500)); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got := len(gotBody.Messages[1].Content); got != 100 {
		t.Errorf("expected text truncated to 100 chars, got %d", got)
	}
}

func TestAnalyze_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := New(testConfig(ts.URL))
	if _, err := c.Analyze(context.Background(), "tekst"); err == nil {
		t.Error("expected an error for non-200 status")
	}
}

func TestAnalyze_MalformedContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "not json"}},
			},
		})
	}))
	defer ts.Close()

	c := New(testConfig(ts.URL))
	if _, err := c.Analyze(context.Background(), "tekst"); err == nil {
		t.Error("expected an error for malformed analysis content")
	}
}

func TestAnalyze_Disabled(t *testing.T) {
	c := New(config.AI{})
	if c.Enabled() {
		t.Error("client without API key should be disabled")
	}
	if _, err := c.Analyze(context.Background(), "tekst"); err == nil {
		t.Error("expected an error when unconfigured")
	}
}
