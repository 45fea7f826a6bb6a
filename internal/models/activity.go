// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the kind of event stored in the activity log.
type Action string

const (
	ActionSignup       Action = "signup"
	ActionSignin       Action = "signin"
	ActionPromptView   Action = "prompt_view"
	ActionPromptCreate Action = "prompt_create"
	ActionPromptEdit   Action = "prompt_edit"
	ActionPromptDelete Action = "prompt_delete"
	ActionPromptTest   Action = "prompt_test"
	ActionReviewAdd    Action = "review_add"
)

// ActivityEvent is one append-only entry in the activity log. UserID is
// nil for anonymous actions (prompt views and usage don't require auth).
type ActivityEvent struct {
	ID        int64      `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Action    Action     `json:"action"`
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
	Metadata  string     `json:"metadata,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
