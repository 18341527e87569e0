// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package json renders detection results as machine-readable JSON, the
// same shape the HTTP detect endpoint returns.
package json

import (
	"encoding/json"
	"fmt"

	"avg-scan/internal/core"
	"avg-scan/internal/detector"
	"avg-scan/internal/formatters"
)

// Formatter implements JSON output.
type Formatter struct{}

// NewFormatter creates a new JSON formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON output"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

type output struct {
	Filename   string          `json:"filename,omitempty"`
	Stats      stats           `json:"stats"`
	Categories []categoryBlock `json:"categories"`
}

type stats struct {
	Total      int `json:"total"`
	Categories int `json:"categories"`
}

type categoryBlock struct {
	Category    string      `json:"category"`
	DisplayName string      `json:"displayName"`
	Icon        string      `json:"icon"`
	Items       []detection `json:"items"`
}

type detection struct {
	Value      string `json:"value"`
	Page       int    `json:"page"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	Confidence string `json:"confidence"`
	Selected   bool   `json:"selected"`
}

func (f *Formatter) Format(result *detector.Result, options formatters.Options) (string, error) {
	filtered := formatters.FilterByConfidence(result.All, options)

	byCategory := make(map[string][]detection)
	for _, d := range filtered {
		value := d.Value
		if !options.ShowMatch && !options.Verbose {
			value = "[AFGESCHERMD]"
		}
		byCategory[d.Category] = append(byCategory[d.Category], detection{
			Value:      value,
			Page:       d.Page,
			StartIndex: d.StartIndex,
			EndIndex:   d.EndIndex,
			Confidence: string(d.Confidence),
			Selected:   d.Selected,
		})
	}

	out := output{
		Filename: options.Filename,
		Stats: stats{
			Total:      len(filtered),
			Categories: len(byCategory),
		},
		Categories: []categoryBlock{},
	}
	for _, categoryID := range core.CategoryOrder(result) {
		items, ok := byCategory[categoryID]
		if !ok {
			continue
		}
		group := result.ByCategory[categoryID]
		out.Categories = append(out.Categories, categoryBlock{
			Category:    categoryID,
			DisplayName: group.Name,
			Icon:        group.Icon,
			Items:       items,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling results to JSON: %w", err)
	}
	return string(data), nil
}

func init() {
	formatters.Register(NewFormatter())
}
