// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"promptstash/internal/store"
)

// Tags exposes the tag vocabulary.
type Tags struct {
	tags *store.TagStore
}

// NewTags creates a new Tags handler group.
func NewTags(tags *store.TagStore) *Tags {
	return &Tags{tags: tags}
}

// List returns all known tags with usage counts, most used first.
func (h *Tags) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tags)
}
