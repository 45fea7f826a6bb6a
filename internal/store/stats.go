// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"promptstash/internal/models"
)

// StatsStore derives rollup statistics across the catalog tables.
// Everything here is read-only.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore creates a new StatsStore with the given database connection.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Totals fills the scalar fields of a Stats rollup: entity counts,
// summed usage, and the mean cached rating across all prompts.
func (s *StatsStore) Totals() (*models.Stats, error) {
	stats := &models.Stats{}
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM prompts),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COALESCE(SUM(usage_count), 0) FROM prompts),
			(SELECT COALESCE(AVG(rating)::double precision, 0) FROM prompts)
	`).Scan(
		&stats.TotalPrompts, &stats.TotalCategories, &stats.TotalUsers,
		&stats.TotalReviews, &stats.TotalUsage, &stats.AvgRating,
	)
	if err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}
	return stats, nil
}

// TopCategories returns the n categories with the most prompts.
func (s *StatsStore) TopCategories(n int) ([]models.CategoryCount, error) {
	rows, err := s.db.Query(`
		SELECT c.name, COUNT(p.id) AS prompt_count
		FROM categories c
		LEFT JOIN prompts p ON p.category = c.name
		GROUP BY c.name
		ORDER BY prompt_count DESC, c.name ASC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("stats top categories: %w", err)
	}
	defer rows.Close()

	items := []models.CategoryCount{}
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Name, &c.PromptCount); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// promptSummarySelect is the shared projection for top-N prompt lists.
const promptSummarySelect = `
	SELECT p.id, p.title, p.category, p.rating, p.created_at,
	       u.id, u.name, u.avatar,
	       (SELECT COUNT(*) FROM reviews r WHERE r.prompt_id = p.id) AS review_count
	FROM prompts p
	JOIN users u ON u.id = p.author_id`

// scanPromptSummaries collects summary rows from a query.
func scanPromptSummaries(rows *sql.Rows) ([]models.PromptSummary, error) {
	defer rows.Close()

	items := []models.PromptSummary{}
	for rows.Next() {
		var ps models.PromptSummary
		if err := rows.Scan(
			&ps.ID, &ps.Title, &ps.Category, &ps.Rating, &ps.CreatedAt,
			&ps.Author.ID, &ps.Author.Name, &ps.Author.Avatar,
			&ps.ReviewCount,
		); err != nil {
			return nil, fmt.Errorf("scan prompt summary: %w", err)
		}
		items = append(items, ps)
	}
	return items, rows.Err()
}

// RecentPrompts returns the n newest prompts as public projections.
func (s *StatsStore) RecentPrompts(n int) ([]models.PromptSummary, error) {
	rows, err := s.db.Query(promptSummarySelect+`
		ORDER BY p.created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("stats recent prompts: %w", err)
	}
	return scanPromptSummaries(rows)
}

// TopRated returns the n highest-rated prompts, excluding unrated ones.
func (s *StatsStore) TopRated(n int) ([]models.PromptSummary, error) {
	rows, err := s.db.Query(promptSummarySelect+`
		WHERE p.rating > 0
		ORDER BY p.rating DESC, p.created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("stats top rated: %w", err)
	}
	return scanPromptSummaries(rows)
}

// UserTotals returns authored-content rollups for one user: prompts
// and reviews written, plus summed usage and review counts across the
// user's own prompts.
func (s *StatsStore) UserTotals(userID uuid.UUID) (*models.UserStats, error) {
	stats := &models.UserStats{}
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM prompts WHERE author_id = $1),
			(SELECT COUNT(*) FROM reviews WHERE user_id = $1),
			(SELECT COALESCE(SUM(usage_count), 0) FROM prompts WHERE author_id = $1),
			(SELECT COUNT(*) FROM reviews r
			 JOIN prompts p ON p.id = r.prompt_id
			 WHERE p.author_id = $1)
	`, userID).Scan(
		&stats.PromptsAuthored, &stats.ReviewsWritten,
		&stats.TotalUsage, &stats.TotalReviews,
	)
	if err != nil {
		return nil, fmt.Errorf("stats user totals: %w", err)
	}
	return stats, nil
}
