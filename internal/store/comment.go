// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"promptstash/internal/models"
)

// CommentStore handles prompt discussion threads.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts a comment and returns it.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	created := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (prompt_id, user_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, prompt_id, user_id, content, parent_id, created_at, updated_at
	`, c.PromptID, c.UserID, c.Content, c.ParentID,
	).Scan(
		&created.ID, &created.PromptID, &created.UserID, &created.Content,
		&created.ParentID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// ListByPrompt returns all comments on a prompt, oldest first, with
// each author's public fields populated. Threading is expressed by
// parent_id; clients assemble the tree.
func (s *CommentStore) ListByPrompt(promptID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.prompt_id, c.user_id, c.content, c.parent_id,
		       c.created_at, c.updated_at,
		       u.id, u.name, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.prompt_id = $1
		ORDER BY c.created_at ASC
	`, promptID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	items := []models.Comment{}
	for rows.Next() {
		var (
			c    models.Comment
			user models.PublicUser
		)
		if err := rows.Scan(
			&c.ID, &c.PromptID, &c.UserID, &c.Content, &c.ParentID,
			&c.CreatedAt, &c.UpdatedAt,
			&user.ID, &user.Name, &user.Avatar,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.User = &user
		items = append(items, c)
	}
	return items, rows.Err()
}
