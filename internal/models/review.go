// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds enforced at the request boundary.
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewMedia groups the attachment-style fields of a review. Each
// entry is an opaque URL; ordering is preserved.
type ReviewMedia struct {
	MediaFiles  []string `json:"media_files,omitempty"`
	Screenshots []string `json:"screenshots,omitempty"`
	PromptEdits []string `json:"prompt_edits,omitempty"`
}

// Review is a rated piece of feedback on a prompt. Creation triggers
// recomputation of the owning prompt's cached rating.
type Review struct {
	ID                     uuid.UUID   `json:"id"`
	PromptID               uuid.UUID   `json:"prompt_id"`
	UserID                 uuid.UUID   `json:"user_id"`
	Rating                 int         `json:"rating"`
	Comment                *string     `json:"comment,omitempty"`
	ToolUsed               *string     `json:"tool_used,omitempty"`
	WhatWorked             *string     `json:"what_worked,omitempty"`
	WhatDidntWork          *string     `json:"what_didnt_work,omitempty"`
	ImprovementSuggestions *string     `json:"improvement_suggestions,omitempty"`
	TestRunGraphicsLink    *string     `json:"test_run_graphics_link,omitempty"`
	Media                  ReviewMedia `json:"media"`
	ParentReviewID         *uuid.UUID  `json:"parent_review_id,omitempty"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`

	// Virtual field populated when reviews are nested in a prompt detail.
	User *PublicUser `json:"user,omitempty"`
}

// ValidRating reports whether r is inside the accepted rating range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
