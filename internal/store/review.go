// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"promptstash/internal/models"
)

// ReviewStore handles review persistence and the cached prompt rating.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Create inserts a review and recomputes the owning prompt's cached
// rating as the mean of all its review ratings.
//
// The insert and the recompute run as separate statements without a
// transaction: two concurrent reviews on the same prompt can race, with
// one recompute missing the other's row until the next review lands.
// The cached value is eventually consistent, and reads recompute their
// own aggregate anyway.
func (s *ReviewStore) Create(rev *models.Review) (*models.Review, error) {
	media, err := marshalJSON(rev.Media)
	if err != nil {
		return nil, err
	}

	created := &models.Review{}
	var rawMedia []byte
	err = s.db.QueryRow(`
		INSERT INTO reviews (prompt_id, user_id, rating, comment, tool_used,
		                     what_worked, what_didnt_work, improvement_suggestions,
		                     test_run_graphics_link, media, parent_review_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, prompt_id, user_id, rating, comment, tool_used,
		          what_worked, what_didnt_work, improvement_suggestions,
		          test_run_graphics_link, media, parent_review_id,
		          created_at, updated_at
	`, rev.PromptID, rev.UserID, rev.Rating, rev.Comment, rev.ToolUsed,
		rev.WhatWorked, rev.WhatDidntWork, rev.ImprovementSuggestions,
		rev.TestRunGraphicsLink, media, rev.ParentReviewID,
	).Scan(
		&created.ID, &created.PromptID, &created.UserID, &created.Rating,
		&created.Comment, &created.ToolUsed, &created.WhatWorked,
		&created.WhatDidntWork, &created.ImprovementSuggestions,
		&created.TestRunGraphicsLink, &rawMedia, &created.ParentReviewID,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	if err := unmarshalJSON(rawMedia, &created.Media); err != nil {
		return nil, err
	}

	if err := s.RecomputeRating(rev.PromptID); err != nil {
		return nil, err
	}

	return created, nil
}

// RecomputeRating reads the mean review rating for a prompt and writes
// it back onto the cached prompts.rating column. 0 when no reviews exist.
func (s *ReviewStore) RecomputeRating(promptID uuid.UUID) error {
	var mean float64
	err := s.db.QueryRow(`
		SELECT COALESCE(AVG(rating)::double precision, 0) FROM reviews WHERE prompt_id = $1
	`, promptID).Scan(&mean)
	if err != nil {
		return fmt.Errorf("compute mean rating: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE prompts SET rating = $1, updated_at = NOW() WHERE id = $2
	`, mean, promptID)
	if err != nil {
		return fmt.Errorf("store mean rating: %w", err)
	}
	return nil
}

// ListByPrompt returns all reviews for a prompt, oldest first, with
// each reviewer's public fields populated.
func (s *ReviewStore) ListByPrompt(promptID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.prompt_id, r.user_id, r.rating, r.comment, r.tool_used,
		       r.what_worked, r.what_didnt_work, r.improvement_suggestions,
		       r.test_run_graphics_link, r.media, r.parent_review_id,
		       r.created_at, r.updated_at,
		       u.id, u.name, u.avatar
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.prompt_id = $1
		ORDER BY r.created_at ASC
	`, promptID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	items := []models.Review{}
	for rows.Next() {
		var (
			r        models.Review
			rawMedia []byte
			user     models.PublicUser
		)
		if err := rows.Scan(
			&r.ID, &r.PromptID, &r.UserID, &r.Rating, &r.Comment, &r.ToolUsed,
			&r.WhatWorked, &r.WhatDidntWork, &r.ImprovementSuggestions,
			&r.TestRunGraphicsLink, &rawMedia, &r.ParentReviewID,
			&r.CreatedAt, &r.UpdatedAt,
			&user.ID, &user.Name, &user.Avatar,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if err := unmarshalJSON(rawMedia, &r.Media); err != nil {
			return nil, err
		}
		r.User = &user
		items = append(items, r)
	}
	return items, rows.Err()
}
