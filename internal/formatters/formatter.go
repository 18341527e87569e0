// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package formatters renders detection results for the CLI and for file
// export. Formatters register themselves into a shared registry so the
// output format stays a plain -format flag value.
package formatters

import (
	"fmt"
	"strings"

	"avg-scan/internal/detector"
)

// Options configures how a formatter renders a result.
type Options struct {
	ConfidenceLevel map[string]bool // which confidence levels to display
	Verbose         bool            // whether to display detailed information
	NoColor         bool            // whether to disable colored output
	ShowMatch       bool            // whether to display the matched text itself
	Filename        string          // source file, shown in headers
}

// DefaultOptions shows every confidence level.
func DefaultOptions() Options {
	return Options{
		ConfidenceLevel: map[string]bool{
			string(detector.ConfidenceHigh):    true,
			string(detector.ConfidenceMedium):  true,
			string(detector.ConfidenceLow):     true,
			string(detector.ConfidenceLearned): true,
		},
		ShowMatch: true,
	}
}

// Formatter renders a detection result in one output format.
type Formatter interface {
	Format(result *detector.Result, options Options) (string, error)

	// Name returns the flag value that selects this formatter.
	Name() string

	// Description returns a one-line description for help output.
	Description() string

	// FileExtension returns the recommended extension for exported files.
	FileExtension() string
}

// Registry holds all registered formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter to the registry.
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names.
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter to the default registry.
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get retrieves a formatter from the default registry.
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List returns the names registered in the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// Export renders a result in the named format.
func Export(format string, result *detector.Result, options Options) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(result, options)
}

// FilterByConfidence returns the detections whose confidence level is
// enabled in the options. A nil level map keeps everything.
func FilterByConfidence(detections []detector.Detection, options Options) []detector.Detection {
	if options.ConfidenceLevel == nil {
		return detections
	}
	var filtered []detector.Detection
	for _, d := range detections {
		if options.ConfidenceLevel[string(d.Confidence)] {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
