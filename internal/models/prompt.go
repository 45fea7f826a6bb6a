// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Default values applied when a prompt is created without the
// corresponding fields.
const (
	DefaultCategory      = "Uncategorized"
	DefaultDifficulty    = "medium"
	DefaultEstimatedTime = "5-10 minutes"
)

// Placeholder describes a single template variable inside a prompt body.
// Order matters: placeholders are presented in the sequence the author
// defined them.
type Placeholder struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Example     string `json:"example,omitempty"`
}

// Prompt is a stored prompt template with its metadata and derived
// rating state.
type Prompt struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Prompt        string        `json:"prompt"` // The prompt body text itself
	Category      string        `json:"category"`
	CategoryID    *uuid.UUID    `json:"category_id,omitempty"`
	Tags          []string      `json:"tags"`
	Difficulty    string        `json:"difficulty"`
	EstimatedTime string        `json:"estimated_time"`
	Placeholders  []Placeholder `json:"placeholders"`
	UsageCount    int           `json:"usage_count"`

	// Rating is the cached mean of all review ratings, recomputed on
	// every review insertion. 0 when the prompt has no reviews.
	Rating float64 `json:"rating"`

	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods at read time,
	// independently of the cached Rating column.
	ReviewCount int     `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`
}

// ApplyDefaults fills unset optional fields with their defaults.
// Called by the store before insertion.
func (p *Prompt) ApplyDefaults() {
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.Difficulty == "" {
		p.Difficulty = DefaultDifficulty
	}
	if p.EstimatedTime == "" {
		p.EstimatedTime = DefaultEstimatedTime
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Placeholders == nil {
		p.Placeholders = []Placeholder{}
	}
}

// OwnedBy reports whether the given user may mutate this prompt.
// Only the original author has mutation rights.
func (p *Prompt) OwnedBy(userID uuid.UUID) bool {
	return p.AuthorID == userID
}

// PromptFilter holds the composable listing filters. Zero values mean
// "no constraint". Filters combine with AND semantics; Search matches
// title OR description OR body; Tags uses has-some semantics.
type PromptFilter struct {
	Category string
	Search   string
	Tags     []string
}

// PromptUpdate carries the mutable prompt fields for an update. Nil
// pointers and nil slices leave the stored value untouched.
type PromptUpdate struct {
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	Prompt        *string       `json:"prompt"`
	Category      *string       `json:"category"`
	Tags          []string      `json:"tags"`
	Difficulty    *string       `json:"difficulty"`
	EstimatedTime *string       `json:"estimated_time"`
	Placeholders  []Placeholder `json:"placeholders"`
}

// Apply merges the set fields onto p.
func (u *PromptUpdate) Apply(p *Prompt) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Prompt != nil {
		p.Prompt = *u.Prompt
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Tags != nil {
		p.Tags = u.Tags
	}
	if u.Difficulty != nil {
		p.Difficulty = *u.Difficulty
	}
	if u.EstimatedTime != nil {
		p.EstimatedTime = *u.EstimatedTime
	}
	if u.Placeholders != nil {
		p.Placeholders = u.Placeholders
	}
}
