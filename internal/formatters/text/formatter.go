// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package text renders detection results as colored, human-readable
// terminal output.
package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"avg-scan/internal/core"
	"avg-scan/internal/detector"
	"avg-scan/internal/formatters"
)

// Formatter implements colored text output grouped per category.
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter.
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output grouped per category"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(result *detector.Result, options formatters.Options) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	filtered := formatters.FilterByConfidence(result.All, options)
	if len(filtered) == 0 {
		return "Geen persoonsgegevens gevonden.", nil
	}

	var builder strings.Builder
	f.appendHeader(&builder, result, filtered, options)

	shown := make(map[string]bool)
	for _, d := range filtered {
		shown[d.Category] = true
	}

	for _, categoryID := range core.CategoryOrder(result) {
		if !shown[categoryID] {
			continue
		}
		group := result.ByCategory[categoryID]
		f.appendCategory(&builder, group, filtered, categoryID, options)
	}

	return builder.String(), nil
}

// appendHeader writes the per-file summary line.
func (f *Formatter) appendHeader(builder *strings.Builder, result *detector.Result, filtered []detector.Detection, options formatters.Options) {
	title := "Scanresultaat"
	if options.Filename != "" {
		title = fmt.Sprintf("Scanresultaat voor %s", options.Filename)
	}
	summary := fmt.Sprintf("%s: %d gevonden in %d categorieën\n\n", title, len(filtered), result.Stats.Categories)
	if !options.NoColor {
		summary = f.colors["white"].Sprint(summary)
	}
	builder.WriteString(summary)
}

// appendCategory writes one category block with its detections.
func (f *Formatter) appendCategory(builder *strings.Builder, group *detector.CategoryGroup, filtered []detector.Detection, categoryID string, options formatters.Options) {
	header := fmt.Sprintf("%s %s\n", group.Icon, group.Name)
	if !options.NoColor {
		header = f.colors["cyan"].Sprint(header)
	}
	builder.WriteString(header)

	for _, d := range filtered {
		if d.Category != categoryID {
			continue
		}
		f.appendDetection(builder, d, options)
	}
	builder.WriteString("\n")
}

func (f *Formatter) appendDetection(builder *strings.Builder, d detector.Detection, options formatters.Options) {
	levelStr := fmt.Sprintf("[%-7s]", strings.ToUpper(string(d.Confidence)))
	if !options.NoColor {
		levelStr = f.confidenceColor(d.Confidence).Sprint(levelStr)
	}

	pageStr := fmt.Sprintf("pagina %3d", d.Page)
	if !options.NoColor {
		pageStr = f.colors["magenta"].Sprint(pageStr)
	}

	value := "[AFGESCHERMD]"
	if options.ShowMatch || options.Verbose {
		value = sanitizeValue(d.Value)
	}
	if !options.NoColor {
		value = f.colors["white"].Sprint(value)
	}

	fmt.Fprintf(builder, "  %s %s  %s\n", levelStr, pageStr, value)

	if options.Verbose {
		fmt.Fprintf(builder, "           positie %d-%d, geselecteerd: %v\n", d.StartIndex, d.EndIndex, d.Selected)
	}
}

func (f *Formatter) confidenceColor(c detector.Confidence) *color.Color {
	switch c {
	case detector.ConfidenceHigh:
		return f.colors["red"]
	case detector.ConfidenceMedium:
		return f.colors["yellow"]
	case detector.ConfidenceLearned:
		return f.colors["blue"]
	default:
		return f.colors["green"]
	}
}

// sanitizeValue flattens newlines and tabs so one detection stays one line.
func sanitizeValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	runes := []rune(value)
	if len(runes) > 60 {
		return string(runes[:57]) + "..."
	}
	return value
}

func init() {
	formatters.Register(NewFormatter())
}
