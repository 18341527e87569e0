// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package aiclient calls the Mistral chat-completions API for AI-assisted
// PII detection. The client is a best-effort supplement: when it is
// unconfigured or fails, the orchestrator keeps the rule-based results and
// moves on.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"avg-scan/internal/config"
	"avg-scan/internal/detector"
)

// systemPrompt instructs the model to flag Dutch personal data and skip
// organizational noise, mirroring the behavior of the rule-based pipeline.
const systemPrompt = `You are a GDPR compliance expert specializing in Dutch personal data anonymization.
Your task is to analyze the provided text and identify Personally Identifiable Information (PII) that needs to be redacted.

Focus specifically on:
1. Names of PERSONS (exclude company names like BV, VOF, Stichting, Gemeente).
2. Phone numbers (mobile and landline).
3. Email addresses.
4. BSN (Burgerservicenummer).
5. IBAN bank accounts.

Do NOT flag:
- Company names, government bodies, or job titles.
- Dates or generalized locations (like city names alone).

Return a JSON object with a single key "found" containing an array of objects.
Each object must have:
- "type": One of ["name", "phone", "email", "bsn", "iban"]
- "value": The exact substring found in the text.
- "confidence": Number between 0 and 1.`

// Client talks to the chat-completions endpoint.
type Client struct {
	apiKey   string
	url      string
	model    string
	maxChars int
	http     *http.Client
}

// New creates a client from the AI configuration. The returned client is
// safe for concurrent use.
func New(cfg config.AI) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		url:      cfg.URL,
		model:    cfg.Model,
		maxChars: cfg.MaxChars,
		http:     &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the client has an API key configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat formatSpec    `json:"response_format"`
	Temperature    float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type formatSpec struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type analysisResult struct {
	Found []detector.ExternalCandidate `json:"found"`
}

// Analyze sends the page text to the model and returns the PII candidates
// it found. The text is truncated to the configured character limit to stay
// under token limits.
func (c *Client) Analyze(ctx context.Context, text string) ([]detector.ExternalCandidate, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ai client: no API key configured")
	}

	if c.maxChars > 0 && len(text) > c.maxChars {
		text = text[:c.maxChars]
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		ResponseFormat: formatSpec{Type: "json_object"},
		Temperature:    0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("ai client: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("ai client: unexpected status %d: %s", resp.StatusCode, string(payload))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("ai client: decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("ai client: empty response")
	}

	// The model returns the JSON object as a string in the message content.
	var result analysisResult
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("ai client: parse analysis content: %w", err)
	}

	return result.Found, nil
}
