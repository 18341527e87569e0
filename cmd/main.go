// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Command avg-scan scans a document for Dutch personal data and prints the
// findings per category.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"avg-scan/internal/config"
	"avg-scan/internal/core"
	"avg-scan/internal/detector"
	"avg-scan/internal/feedback"
	"avg-scan/internal/formatters"
	_ "avg-scan/internal/formatters/json"
	_ "avg-scan/internal/formatters/text"
	"avg-scan/internal/lexicon"
	"avg-scan/internal/paths"
	"avg-scan/internal/preprocessors"
)

type cliFlags struct {
	file          string
	format        string
	confidence    string
	searchTerm    string
	verbose       bool
	noColor       bool
	showMatch     bool
	learn         string
	ignore        string
	listFeedback  bool
	clearFeedback bool
	configFile    string
}

func main() {
	flags := parseFlags()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	cfg := config.LoadOrDefault(flags.configFile)

	lex, err := lexicon.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := feedback.NewStore(paths.FeedbackDBFile(), cfg.Thresholds.MinTermLength)
	scanner := core.NewScanner(cfg, lex, store)

	if handled := runFeedbackCommands(flags, store); handled {
		return
	}

	if flags.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	doc, err := preprocessors.ProcessFile(flags.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var result *detector.Result
	if flags.searchTerm != "" {
		result = searchPages(scanner, doc.Pages, flags.searchTerm)
	} else {
		result = scanner.ScanPages(doc.Pages)
	}

	options := buildOptions(flags)
	options.Filename = flags.file

	output, err := formatters.Export(flags.format, result, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	fmt.Println(output)

	if result.Stats.Total > 0 {
		os.Exit(1)
	}
}

func parseFlags() cliFlags {
	var flags cliFlags
	flag.StringVar(&flags.file, "file", "", "File to scan (pdf, image or text)")
	flag.StringVar(&flags.format, "format", "text", "Output format: text or json")
	flag.StringVar(&flags.confidence, "confidence", "all", "Confidence levels to show (comma-separated: high,medium,low,learned or all)")
	flag.StringVar(&flags.searchTerm, "search", "", "Search for a literal term instead of running detection")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show detailed detection information")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.showMatch, "show-match", true, "Show the matched text (false prints placeholders)")
	flag.StringVar(&flags.learn, "learn", "", "Add a term to the learned words and exit")
	flag.StringVar(&flags.ignore, "ignore", "", "Add a term to the ignored words and exit")
	flag.BoolVar(&flags.listFeedback, "list-feedback", false, "Print learned and ignored words and exit")
	flag.BoolVar(&flags.clearFeedback, "clear-feedback", false, "Remove all learned and ignored words and exit")
	flag.StringVar(&flags.configFile, "config", "", "Path to a configuration file")
	flag.Parse()

	// Piped output gets no ANSI colors.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		flags.noColor = true
	}
	return flags
}

// runFeedbackCommands handles the feedback management flags. It returns true
// when a feedback command ran and the program should exit normally.
func runFeedbackCommands(flags cliFlags, store *feedback.Store) bool {
	switch {
	case flags.learn != "":
		if !store.LearnWord(flags.learn) {
			fmt.Fprintf(os.Stderr, "Error: term %q is too short to learn\n", flags.learn)
			os.Exit(2)
		}
		fmt.Printf("Learned: %s\n", strings.ToLower(strings.TrimSpace(flags.learn)))
		return true

	case flags.ignore != "":
		if !store.IgnoreWord(flags.ignore) {
			fmt.Fprintf(os.Stderr, "Error: term %q is too short to ignore\n", flags.ignore)
			os.Exit(2)
		}
		fmt.Printf("Ignored: %s\n", strings.ToLower(strings.TrimSpace(flags.ignore)))
		return true

	case flags.listFeedback:
		fmt.Println("Learned words:")
		for _, w := range store.LearnedWords() {
			fmt.Printf("  %s\n", w)
		}
		fmt.Println("Ignored words:")
		for _, w := range store.IgnoredWords() {
			fmt.Printf("  %s\n", w)
		}
		return true

	case flags.clearFeedback:
		store.Clear()
		fmt.Println("Feedback cleared.")
		return true
	}
	return false
}

// searchPages runs the literal term search over every page and buckets the
// matches like a regular scan so formatters can render them.
func searchPages(scanner *core.Scanner, pages []string, term string) *detector.Result {
	result := detector.EmptyResult()
	for i, page := range pages {
		for _, d := range scanner.DetectCustom(page, term) {
			d.Page = i + 1
			result.All = append(result.All, d)
			group, ok := result.ByCategory[d.Category]
			if !ok {
				group = &detector.CategoryGroup{Name: d.DisplayName, Icon: d.Icon}
				result.ByCategory[d.Category] = group
			}
			group.Items = append(group.Items, d)
		}
	}
	result.Stats = detector.Stats{
		Total:      len(result.All),
		Categories: len(result.ByCategory),
	}
	return result
}

func buildOptions(flags cliFlags) formatters.Options {
	options := formatters.DefaultOptions()
	options.Verbose = flags.verbose
	options.NoColor = flags.noColor
	options.ShowMatch = flags.showMatch

	levels := strings.ToLower(strings.TrimSpace(flags.confidence))
	if levels != "" && levels != "all" {
		enabled := make(map[string]bool)
		for _, level := range strings.Split(levels, ",") {
			enabled[strings.TrimSpace(level)] = true
		}
		options.ConfidenceLevel = enabled
	}
	return options
}
