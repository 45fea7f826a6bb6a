// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"promptstash/internal/activity"
	"promptstash/internal/apperror"
	"promptstash/internal/auth"
	"promptstash/internal/models"
	"promptstash/internal/store"
	"promptstash/internal/summary"
)

// Prompts groups the prompt catalog handlers: listing, detail, CRUD,
// usage tracking, reviews, comments, and the search alias.
type Prompts struct {
	prompts    *store.PromptStore
	categories *store.CategoryStore
	reviews    *store.ReviewStore
	comments   *store.CommentStore
	recorder   *activity.Recorder
}

// NewPrompts creates a new Prompts handler group.
func NewPrompts(prompts *store.PromptStore, categories *store.CategoryStore, reviews *store.ReviewStore, comments *store.CommentStore, recorder *activity.Recorder) *Prompts {
	return &Prompts{prompts: prompts, categories: categories, reviews: reviews, comments: comments, recorder: recorder}
}

// promptDetail is the GET /api/prompts/{id} response: the prompt plus
// its resolved category entity, nested reviews, and the derived
// summary label. The Category field shadows the embedded prompt's
// denormalized category name in the JSON output.
type promptDetail struct {
	*models.Prompt
	Category *models.Category `json:"category"`
	Summary  string           `json:"summary"`
	Reviews  []models.Review  `json:"reviews"`
}

// categoryFor resolves the prompt's category entity, preferring the FK
// and falling back to the denormalized name. A name-only stub is
// returned when no row matches, so the label survives in the response.
func (h *Prompts) categoryFor(p *models.Prompt) (*models.Category, error) {
	if p.CategoryID != nil {
		c, err := h.categories.FindByID(*p.CategoryID)
		if err != nil || c != nil {
			return c, err
		}
	}
	c, err := h.categories.FindByName(p.Category)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &models.Category{Name: p.Category}
	}
	return c, nil
}

// summarize returns the explicit description when present, otherwise
// the heuristic label derived from the prompt text.
func summarize(p *models.Prompt) string {
	if p.Description != "" {
		return p.Description
	}
	return summary.Generate(p.Title, p.Prompt)
}

// List returns prompts matching the query filters as a bare array.
func (h *Prompts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.PromptFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Tags:     splitTags(q.Get("tags")),
	}
	limit, offset := limitOffset(q)

	prompts, err := h.prompts.List(filter, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prompts)
}

// Search is the alias surface over prompt listing: q maps to the
// search filter and minRating is applied as a post-filter on the
// read-time average.
func (h *Prompts) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.PromptFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}
	limit, offset := limitOffset(q)

	prompts, err := h.prompts.List(filter, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}

	if raw := q.Get("minRating"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, apperror.ValidationFailed("minRating", "minRating must be a number"))
			return
		}
		filtered := []models.Prompt{}
		for _, p := range prompts {
			if p.AvgRating >= min {
				filtered = append(filtered, p)
			}
		}
		prompts = filtered
	}

	respondJSON(w, http.StatusOK, prompts)
}

// Get returns one prompt with nested reviews. Views are recorded as
// activity, anonymously when the caller is unauthenticated.
func (h *Prompts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.prompts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if p == nil {
		respondError(w, apperror.NotFound("prompt", id.String()))
		return
	}

	category, err := h.categoryFor(p)
	if err != nil {
		respondError(w, err)
		return
	}

	reviews, err := h.reviews.ListByPrompt(id)
	if err != nil {
		respondError(w, err)
		return
	}

	h.recorder.Record(models.ActionPromptView, ctxUserID(r), activity.UUIDPtr(id), "")

	respondJSON(w, http.StatusOK, promptDetail{
		Prompt:   p,
		Category: category,
		Summary:  summarize(p),
		Reviews:  reviews,
	})
}

type promptRequest struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Prompt        string               `json:"prompt"`
	Category      string               `json:"category"`
	Tags          []string             `json:"tags"`
	Difficulty    string               `json:"difficulty"`
	EstimatedTime string               `json:"estimated_time"`
	Placeholders  []models.Placeholder `json:"placeholders"`
}

func (req *promptRequest) validate() error {
	if err := requireText("title", req.Title, maxTitleLen); err != nil {
		return err
	}
	return requireText("prompt", req.Prompt, maxPromptLen)
}

// Create stores a new prompt owned by the caller.
func (h *Prompts) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req promptRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	p, err := h.prompts.Create(&models.Prompt{
		Title:         req.Title,
		Description:   req.Description,
		Prompt:        req.Prompt,
		Category:      req.Category,
		Tags:          req.Tags,
		Difficulty:    req.Difficulty,
		EstimatedTime: req.EstimatedTime,
		Placeholders:  req.Placeholders,
		AuthorID:      userID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.recorder.Record(models.ActionPromptCreate, &userID, activity.UUIDPtr(p.ID), "")
	respondJSON(w, http.StatusCreated, p)
}

// Update modifies a prompt. Only the author may update.
func (h *Prompts) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.prompts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if p == nil {
		respondError(w, apperror.NotFound("prompt", id.String()))
		return
	}
	if !p.OwnedBy(userID) {
		respondError(w, apperror.Forbidden("only the author can modify this prompt"))
		return
	}

	var req models.PromptUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.Title != nil {
		if err := requireText("title", *req.Title, maxTitleLen); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Prompt != nil {
		if err := requireText("prompt", *req.Prompt, maxPromptLen); err != nil {
			respondError(w, err)
			return
		}
	}
	req.Apply(p)

	if err := h.prompts.Update(p); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.prompts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}

	h.recorder.Record(models.ActionPromptEdit, &userID, activity.UUIDPtr(id), "")
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a prompt. Only the author may delete.
func (h *Prompts) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.prompts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if p == nil {
		respondError(w, apperror.NotFound("prompt", id.String()))
		return
	}
	if !p.OwnedBy(userID) {
		respondError(w, apperror.Forbidden("only the author can delete this prompt"))
		return
	}

	if err := h.prompts.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	h.recorder.Record(models.ActionPromptDelete, &userID, activity.UUIDPtr(id), "")
	w.WriteHeader(http.StatusNoContent)
}

// Use increments the usage counter. No auth required; usage from
// anonymous visitors counts too.
func (h *Prompts) Use(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	found, err := h.prompts.IncrementUsage(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !found {
		respondError(w, apperror.NotFound("prompt", id.String()))
		return
	}

	h.recorder.Record(models.ActionPromptTest, ctxUserID(r), activity.UUIDPtr(id), "")

	p, err := h.prompts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

type reviewRequest struct {
	Rating                 int                `json:"rating"`
	Comment                *string            `json:"comment"`
	ToolUsed               *string            `json:"tool_used"`
	WhatWorked             *string            `json:"what_worked"`
	WhatDidntWork          *string            `json:"what_didnt_work"`
	ImprovementSuggestions *string            `json:"improvement_suggestions"`
	TestRunGraphicsLink    *string            `json:"test_run_graphics_link"`
	Media                  models.ReviewMedia `json:"media"`
	ParentReviewID         *string            `json:"parent_review_id"`
}

// Review adds a review to a prompt and recomputes its cached rating.
func (h *Prompts) Review(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !models.ValidRating(req.Rating) {
		respondError(w, apperror.ValidationFailed("rating", "rating must be between 1 and 5"))
		return
	}

	p, err := h.prompts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if p == nil {
		respondError(w, apperror.NotFound("prompt", id.String()))
		return
	}

	review := &models.Review{
		PromptID:               id,
		UserID:                 userID,
		Rating:                 req.Rating,
		Comment:                req.Comment,
		ToolUsed:               req.ToolUsed,
		WhatWorked:             req.WhatWorked,
		WhatDidntWork:          req.WhatDidntWork,
		ImprovementSuggestions: req.ImprovementSuggestions,
		TestRunGraphicsLink:    req.TestRunGraphicsLink,
		Media:                  req.Media,
	}
	if req.ParentReviewID != nil {
		parentID, err := uuid.Parse(*req.ParentReviewID)
		if err != nil {
			respondError(w, apperror.ValidationFailed("parent_review_id", "invalid parent review id"))
			return
		}
		review.ParentReviewID = &parentID
	}

	created, err := h.reviews.Create(review)
	if err != nil {
		respondError(w, err)
		return
	}

	h.recorder.Record(models.ActionReviewAdd, &userID, activity.UUIDPtr(id), "")
	respondJSON(w, http.StatusCreated, created)
}

type commentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

// ListComments returns the discussion thread on a prompt.
func (h *Prompts) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.prompts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if p == nil {
		respondError(w, apperror.NotFound("prompt", id.String()))
		return
	}

	comments, err := h.comments.ListByPrompt(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// CreateComment adds a comment to a prompt's discussion thread.
func (h *Prompts) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := requireText("content", req.Content, maxContentLen); err != nil {
		respondError(w, err)
		return
	}

	p, err := h.prompts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if p == nil {
		respondError(w, apperror.NotFound("prompt", id.String()))
		return
	}

	comment := &models.Comment{PromptID: id, UserID: userID, Content: req.Content}
	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			respondError(w, apperror.ValidationFailed("parent_id", "invalid parent comment id"))
			return
		}
		comment.ParentID = &parentID
	}

	created, err := h.comments.Create(comment)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ctxUserID returns a pointer to the authenticated user's ID, or nil
// for anonymous requests. Used for activity attribution.
func ctxUserID(r *http.Request) *uuid.UUID {
	if id, ok := auth.UserIDFromCtx(r.Context()); ok {
		return &id
	}
	return nil
}
