// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Command avg-scan-server serves the detection engine over HTTP for the
// redaction frontend.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"avg-scan/internal/aiclient"
	"avg-scan/internal/config"
	"avg-scan/internal/core"
	"avg-scan/internal/feedback"
	"avg-scan/internal/lexicon"
	"avg-scan/internal/paths"
	"avg-scan/internal/server"
)

func main() {
	configFile := flag.String("config", "", "Path to a configuration file")
	addr := flag.String("addr", "", "Listen address (overrides configuration)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	// A missing .env is fine; the environment may carry the key directly.
	if err := godotenv.Load(); err == nil {
		log.Info("loaded environment from .env")
	}

	cfg := config.LoadOrDefault(*configFile)
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	lex, err := lexicon.Load()
	if err != nil {
		log.Error("failed to load lexicon", "error", err)
		os.Exit(1)
	}

	dbPath := cfg.Feedback.DBPath
	if dbPath == "" {
		dbPath = paths.FeedbackDBFile()
	}
	store := feedback.NewStore(dbPath, cfg.Thresholds.MinTermLength)
	scanner := core.NewScanner(cfg, lex, store)

	ai := aiclient.New(cfg.AI)
	if ai.Enabled() {
		log.Info("AI analysis enabled", "model", cfg.AI.Model)
	} else {
		log.Info("AI analysis disabled, no API key configured")
	}

	handler := server.NewHandler(scanner, ai, log)
	router := server.NewRouter(handler, cfg.Server.AllowedOrigins)

	log.Info("starting server", "addr", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
