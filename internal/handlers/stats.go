// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"promptstash/internal/apperror"
	"promptstash/internal/auth"
	"promptstash/internal/models"
	"promptstash/internal/store"
)

// Stats groups the rollup handlers: global totals, windowed activity,
// and per-user statistics.
type Stats struct {
	stats    *store.StatsStore
	activity *store.ActivityStore
}

// NewStats creates a new Stats handler group.
func NewStats(stats *store.StatsStore, activity *store.ActivityStore) *Stats {
	return &Stats{stats: stats, activity: activity}
}

// topN bounds the category/prompt lists embedded in the global rollup.
const topN = 5

// Global returns the library-wide rollup.
func (h *Stats) Global(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Totals()
	if err != nil {
		respondError(w, err)
		return
	}

	if stats.TopCategories, err = h.stats.TopCategories(topN); err != nil {
		respondError(w, err)
		return
	}
	if stats.RecentPrompts, err = h.stats.RecentPrompts(topN); err != nil {
		respondError(w, err)
		return
	}
	if stats.TopRated, err = h.stats.TopRated(topN); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// timeframes maps the accepted timeframe query values to window sizes.
var timeframes = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

const defaultTimeframe = "7d"

// Activity returns event counts per action kind inside the requested
// window. Unknown timeframe values fall back to the default.
func (h *Stats) Activity(w http.ResponseWriter, r *http.Request) {
	timeframe := r.URL.Query().Get("timeframe")
	window, ok := timeframes[timeframe]
	if !ok {
		timeframe = defaultTimeframe
		window = timeframes[defaultTimeframe]
	}

	since := time.Now().Add(-window)
	counts, err := h.activity.CountByActionSince(since)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ActivityStats{
		Timeframe: timeframe,
		Since:     since,
		Counts:    counts,
	})
}

// User returns the caller's own rollup plus recent activity.
func (h *Stats) User(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, apperror.Unauthorized("authentication required"))
		return
	}

	stats, err := h.stats.UserTotals(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	if stats.RecentActivity, err = h.activity.ListRecentByUser(userID, 10); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
