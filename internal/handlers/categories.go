// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"promptstash/internal/apperror"
	"promptstash/internal/models"
	"promptstash/internal/store"
)

// Categories groups the category management handlers.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List returns all categories with their prompt counts.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Icon        *string `json:"icon"`
}

// Create adds a new category. Duplicate names conflict.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := requireText("name", req.Name, maxNameLen); err != nil {
		respondError(w, err)
		return
	}

	c, err := h.categories.Create(&models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// categoryUpdateRequest carries optional fields: absent fields leave
// the stored value untouched.
type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

// Update merges the supplied fields onto an existing category.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	c, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if c == nil {
		respondError(w, apperror.NotFound("category", id.String()))
		return
	}

	var req categoryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.Name != nil {
		if err := requireText("name", *req.Name, maxNameLen); err != nil {
			respondError(w, err)
			return
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Color != nil {
		c.Color = *req.Color
	}
	if req.Icon != nil {
		c.Icon = req.Icon
	}

	if err := h.categories.Update(c); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// Delete removes a category. A category still referenced by prompts
// cannot be deleted.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	c, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if c == nil {
		respondError(w, apperror.NotFound("category", id.String()))
		return
	}

	count, err := h.categories.PromptCount(c.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	if count > 0 {
		respondError(w, apperror.Conflict("category still contains prompts"))
		return
	}

	if err := h.categories.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
