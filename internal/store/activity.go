// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"promptstash/internal/models"
)

// ActivityStore persists the append-only activity log. Rows are never
// updated or deleted by the application.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates a new ActivityStore with the given database connection.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Insert appends one event to the log.
func (s *ActivityStore) Insert(e *models.ActivityEvent) error {
	err := s.db.QueryRow(`
		INSERT INTO activity_log (user_id, action, subject_id, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.UserID, e.Action, e.SubjectID, e.Metadata,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// CountByActionSince returns event counts per action kind for events
// newer than the cutoff.
func (s *ActivityStore) CountByActionSince(since time.Time) (map[models.Action]int, error) {
	rows, err := s.db.Query(`
		SELECT action, COUNT(*)
		FROM activity_log
		WHERE created_at >= $1
		GROUP BY action
	`, since)
	if err != nil {
		return nil, fmt.Errorf("count activity: %w", err)
	}
	defer rows.Close()

	counts := map[models.Action]int{}
	for rows.Next() {
		var (
			action models.Action
			count  int
		)
		if err := rows.Scan(&action, &count); err != nil {
			return nil, fmt.Errorf("scan activity count: %w", err)
		}
		counts[action] = count
	}
	return counts, rows.Err()
}

// ListRecentByUser returns the newest events for a user, newest first.
func (s *ActivityStore) ListRecentByUser(userID uuid.UUID, limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, user_id, action, subject_id, metadata, created_at
		FROM activity_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list user activity: %w", err)
	}
	defer rows.Close()

	items := []models.ActivityEvent{}
	for rows.Next() {
		var e models.ActivityEvent
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Action, &e.SubjectID, &e.Metadata, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
