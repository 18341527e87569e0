// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the detection engine over HTTP for the redaction
// frontend.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"avg-scan/internal/aiclient"
	"avg-scan/internal/core"
	"avg-scan/internal/detector"
)

// Handler carries the engine dependencies for the HTTP endpoints.
type Handler struct {
	scanner *core.Scanner
	ai      *aiclient.Client
	log     *slog.Logger
}

// NewHandler creates a handler around a scanner. The AI client may be nil
// or unconfigured; the analyze endpoint then returns rule-based results
// only.
func NewHandler(scanner *core.Scanner, ai *aiclient.Client, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{scanner: scanner, ai: ai, log: log}
}

// NewRouter wires all routes. The frontend runs on a separate dev origin,
// so CORS is open unless specific origins are configured.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	if len(allowedOrigins) == 0 {
		r.Use(cors.Default())
	} else {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = allowedOrigins
		r.Use(cors.New(corsCfg))
	}

	r.GET("/", h.Health)

	api := r.Group("/api")
	{
		api.POST("/detect", h.Detect)
		api.POST("/search", h.Search)
		api.POST("/analyze", h.Analyze)
		api.POST("/feedback/learn", h.LearnWord)
		api.POST("/feedback/ignore", h.IgnoreWord)
		api.GET("/feedback", h.GetFeedback)
		api.DELETE("/feedback", h.ClearFeedback)
	}

	return r
}

// Health reports service liveness and whether AI assistance is available.
func (h *Handler) Health(c *gin.Context) {
	aiEnabled := h.ai != nil && h.ai.Enabled()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ai_enabled": aiEnabled})
}

type detectRequest struct {
	Text string `json:"text" binding:"required"`
	Page int    `json:"page"`
}

// Detect runs the rule-based pipeline over one page of text.
func (h *Handler) Detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	result := h.scanner.Detect(req.Text, req.Page)
	c.JSON(http.StatusOK, resultResponse(result))
}

type searchRequest struct {
	Text string `json:"text" binding:"required"`
	Term string `json:"term" binding:"required"`
}

// Search finds every literal occurrence of a user-supplied term.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches := h.scanner.DetectCustom(req.Text, req.Term)
	if matches == nil {
		matches = []detector.Detection{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "total": len(matches)})
}

// Analyze runs the rule-based pipeline and, when configured, merges AI
// candidates into the result. An AI failure downgrades to rule-based
// results instead of failing the request.
func (h *Handler) Analyze(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	result := h.scanner.Detect(req.Text, req.Page)
	aiUsed := false

	if h.ai != nil && h.ai.Enabled() {
		candidates, err := h.ai.Analyze(c.Request.Context(), req.Text)
		if err != nil {
			h.log.Warn("AI analysis failed, returning rule-based results", "error", err)
		} else {
			result = h.scanner.MergeExternal(req.Text, req.Page, result, candidates)
			aiUsed = true
		}
	}

	resp := resultResponse(result)
	resp["ai_used"] = aiUsed
	c.JSON(http.StatusOK, resp)
}

type feedbackRequest struct {
	Term string `json:"term" binding:"required"`
}

// LearnWord adds a term to the learned set.
func (h *Handler) LearnWord(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.scanner.Feedback().LearnWord(req.Term) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is too short to learn"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"learned": h.scanner.Feedback().LearnedWords()})
}

// IgnoreWord adds a term to the ignored set.
func (h *Handler) IgnoreWord(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.scanner.Feedback().IgnoreWord(req.Term) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is too short to ignore"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ignored": h.scanner.Feedback().IgnoredWords()})
}

// GetFeedback returns both term sets.
func (h *Handler) GetFeedback(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"learned": h.scanner.Feedback().LearnedWords(),
		"ignored": h.scanner.Feedback().IgnoredWords(),
	})
}

// ClearFeedback empties both term sets.
func (h *Handler) ClearFeedback(c *gin.Context) {
	h.scanner.Feedback().Clear()
	c.JSON(http.StatusOK, gin.H{"learned": []string{}, "ignored": []string{}})
}

// resultResponse shapes a result for JSON transport in the category order
// the frontend renders.
func resultResponse(result *detector.Result) gin.H {
	categories := make([]gin.H, 0, len(result.ByCategory))
	for _, id := range core.CategoryOrder(result) {
		group := result.ByCategory[id]
		categories = append(categories, gin.H{
			"category":    id,
			"displayName": group.Name,
			"icon":        group.Icon,
			"items":       group.Items,
		})
	}

	return gin.H{
		"detections": result.All,
		"categories": categories,
		"stats": gin.H{
			"total":      result.Stats.Total,
			"categories": result.Stats.Categories,
		},
	}
}
