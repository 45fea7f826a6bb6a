// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PromptSummary is the trimmed public projection of a prompt used in
// stats rollups and top-N lists.
type PromptSummary struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Author      PublicUser `json:"author"`
	ReviewCount int        `json:"review_count"`
	Rating      float64    `json:"rating"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CategoryCount pairs a category name with the number of prompts
// referencing it.
type CategoryCount struct {
	Name        string `json:"name"`
	PromptCount int    `json:"prompt_count"`
}

// Stats is the global rollup returned by GET /api/stats.
type Stats struct {
	TotalPrompts    int             `json:"total_prompts"`
	TotalCategories int             `json:"total_categories"`
	TotalUsers      int             `json:"total_users"`
	TotalReviews    int             `json:"total_reviews"`
	TotalUsage      int             `json:"total_usage"`
	AvgRating       float64         `json:"avg_rating"`
	TopCategories   []CategoryCount `json:"top_categories"`
	RecentPrompts   []PromptSummary `json:"recent_prompts"`
	TopRated        []PromptSummary `json:"top_rated"`
}

// ActivityStats is the time-boxed activity rollup: event counts per
// action kind inside the window.
type ActivityStats struct {
	Timeframe string         `json:"timeframe"`
	Since     time.Time      `json:"since"`
	Counts    map[Action]int `json:"counts"`
}

// UserStats is the per-user rollup returned by GET /api/stats/user.
type UserStats struct {
	PromptsAuthored int             `json:"prompts_authored"`
	ReviewsWritten  int             `json:"reviews_written"`
	TotalUsage      int             `json:"total_usage"`
	TotalReviews    int             `json:"total_reviews"`
	RecentActivity  []ActivityEvent `json:"recent_activity"`
}
