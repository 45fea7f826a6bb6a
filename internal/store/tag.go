// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"promptstash/internal/models"
)

// TagStore exposes the tag vocabulary with derived usage counts.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// List returns all known tags, most used first, then alphabetically.
// UsageCount is derived from the association table, never stored.
func (s *TagStore) List() ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.name, COUNT(pt.prompt_id) AS usage_count
		FROM tags t
		LEFT JOIN prompt_tags pt ON pt.tag_name = t.name
		GROUP BY t.name
		ORDER BY usage_count DESC, t.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	items := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.Name, &t.UsageCount); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
