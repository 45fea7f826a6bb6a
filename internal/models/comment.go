// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is free-text discussion on a prompt. Comments carry no rating
// semantics and may form threads through ParentID.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PromptID  uuid.UUID  `json:"prompt_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Content   string     `json:"content"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Virtual field populated by store methods.
	User *PublicUser `json:"user,omitempty"`
}

// Tag is a label attached to prompts through a many-to-many
// association. UsageCount is derived from the association table.
type Tag struct {
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}
