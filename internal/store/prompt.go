// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"promptstash/internal/models"
)

// Pagination defaults applied when the caller passes non-positive values.
const (
	DefaultLimit  = 50
	DefaultOffset = 0
	maxLimit      = 200
)

// PromptStore handles all prompt-related database operations, including
// the tag association table.
type PromptStore struct {
	db *sql.DB
}

// NewPromptStore creates a new PromptStore with the given database connection.
func NewPromptStore(db *sql.DB) *PromptStore {
	return &PromptStore{db: db}
}

// promptColumns are the base columns selected for every prompt row,
// followed by the tag aggregate and the read-time review aggregates.
const promptSelect = `
	SELECT p.id, p.title, p.description, p.prompt, p.category, p.category_id,
	       p.difficulty, p.estimated_time, p.placeholders, p.usage_count,
	       p.rating, p.author_id, p.created_at, p.updated_at,
	       COALESCE((SELECT jsonb_agg(pt.tag_name ORDER BY pt.tag_name)
	                 FROM prompt_tags pt WHERE pt.prompt_id = p.id), '[]') AS tags,
	       COALESCE(r.review_count, 0) AS review_count,
	       COALESCE(r.avg_rating, 0) AS avg_rating
	FROM prompts p
	LEFT JOIN (
		SELECT prompt_id, COUNT(*) AS review_count, AVG(rating)::double precision AS avg_rating
		FROM reviews GROUP BY prompt_id
	) r ON r.prompt_id = p.id`

// scanPrompt scans one row produced by promptSelect.
func scanPrompt(scanner interface{ Scan(...any) error }) (*models.Prompt, error) {
	var (
		p            models.Prompt
		placeholders []byte
		tags         []byte
	)
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Description, &p.Prompt, &p.Category, &p.CategoryID,
		&p.Difficulty, &p.EstimatedTime, &placeholders, &p.UsageCount,
		&p.Rating, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
		&tags, &p.ReviewCount, &p.AvgRating,
	)
	if err != nil {
		return nil, err
	}

	p.Placeholders = []models.Placeholder{}
	if err := unmarshalJSON(placeholders, &p.Placeholders); err != nil {
		return nil, err
	}
	p.Tags = []string{}
	if err := unmarshalJSON(tags, &p.Tags); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns prompts matching the filter, newest first. Filters
// combine with AND; Search matches title OR description OR body
// case-insensitively; Tags matches prompts whose tag set intersects
// the given list. Non-positive limit/offset fall back to defaults.
func (s *PromptStore) List(filter models.PromptFilter, limit, offset int) ([]models.Prompt, error) {
	if limit <= 0 || limit > maxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = DefaultOffset
	}

	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		where = append(where, "p.category = "+arg(filter.Category))
	}
	if filter.Search != "" {
		pat := "%" + escapeLike(filter.Search) + "%"
		ph := arg(pat)
		where = append(where, fmt.Sprintf(
			"(p.title ILIKE %s OR p.description ILIKE %s OR p.prompt ILIKE %s)", ph, ph, ph))
	}
	if len(filter.Tags) > 0 {
		phs := make([]string, len(filter.Tags))
		for i, tag := range filter.Tags {
			phs[i] = arg(tag)
		}
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM prompt_tags pt WHERE pt.prompt_id = p.id AND pt.tag_name IN (%s))",
			strings.Join(phs, ", ")))
	}

	query := promptSelect
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\tORDER BY p.created_at DESC"
	query += "\n\tLIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	items := []models.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a single prompt by ID. Returns nil if not found.
// The detail handler loads nested reviews and resolves the category
// entity separately.
func (s *PromptStore) FindByID(id uuid.UUID) (*models.Prompt, error) {
	row := s.db.QueryRow(promptSelect+` WHERE p.id = $1`, id)
	p, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find prompt by id: %w", err)
	}
	return p, nil
}

// Create inserts a new prompt, applying defaults for unset fields, and
// writes its tag associations. The denormalized category name is
// resolved to a category ID when a matching category exists.
func (s *PromptStore) Create(p *models.Prompt) (*models.Prompt, error) {
	p.ApplyDefaults()

	categoryID, err := s.resolveCategoryID(p.Category)
	if err != nil {
		return nil, err
	}

	placeholders, err := marshalJSON(p.Placeholders)
	if err != nil {
		return nil, err
	}

	var created models.Prompt
	var rawPlaceholders []byte
	err = s.db.QueryRow(`
		INSERT INTO prompts (title, description, prompt, category, category_id,
		                     difficulty, estimated_time, placeholders, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, description, prompt, category, category_id,
		          difficulty, estimated_time, placeholders, usage_count,
		          rating, author_id, created_at, updated_at
	`, p.Title, p.Description, p.Prompt, p.Category, categoryID,
		p.Difficulty, p.EstimatedTime, placeholders, p.AuthorID,
	).Scan(
		&created.ID, &created.Title, &created.Description, &created.Prompt,
		&created.Category, &created.CategoryID, &created.Difficulty,
		&created.EstimatedTime, &rawPlaceholders, &created.UsageCount,
		&created.Rating, &created.AuthorID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}

	created.Placeholders = []models.Placeholder{}
	if err := unmarshalJSON(rawPlaceholders, &created.Placeholders); err != nil {
		return nil, err
	}

	if err := s.ReplaceTags(created.ID, p.Tags); err != nil {
		return nil, err
	}
	created.Tags = normalizeTags(p.Tags)

	return &created, nil
}

// Update writes the mutable prompt fields and stamps updated_at. The
// caller merges the requested changes into p beforehand.
func (s *PromptStore) Update(p *models.Prompt) error {
	categoryID, err := s.resolveCategoryID(p.Category)
	if err != nil {
		return err
	}

	placeholders, err := marshalJSON(p.Placeholders)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE prompts SET
			title = $1, description = $2, prompt = $3, category = $4,
			category_id = $5, difficulty = $6, estimated_time = $7,
			placeholders = $8, updated_at = NOW()
		WHERE id = $9
	`, p.Title, p.Description, p.Prompt, p.Category, categoryID,
		p.Difficulty, p.EstimatedTime, placeholders, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update prompt: %w", err)
	}

	return s.ReplaceTags(p.ID, p.Tags)
}

// Delete removes a prompt by ID. Reviews, comments, and tag
// associations cascade at the database level.
func (s *PromptStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM prompts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}

// IncrementUsage atomically bumps the usage counter by one. Returns
// false when no prompt with the given ID exists.
func (s *PromptStore) IncrementUsage(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE prompts SET usage_count = usage_count + 1 WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("increment usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("increment usage: %w", err)
	}
	return n > 0, nil
}

// ReplaceTags rewrites the tag associations for a prompt inside a
// transaction. Unknown tags are registered in the tags table first.
func (s *PromptStore) ReplaceTags(promptID uuid.UUID, tags []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM prompt_tags WHERE prompt_id = $1`, promptID); err != nil {
		return fmt.Errorf("clear prompt tags: %w", err)
	}

	for _, tag := range normalizeTags(tags) {
		if _, err := tx.Exec(`
			INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING
		`, tag); err != nil {
			return fmt.Errorf("register tag %q: %w", tag, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO prompt_tags (prompt_id, tag_name) VALUES ($1, $2)
		`, promptID, tag); err != nil {
			return fmt.Errorf("attach tag %q: %w", tag, err)
		}
	}

	return tx.Commit()
}

// resolveCategoryID looks up the category ID for a denormalized name.
// Returns nil for names without a registered category.
func (s *PromptStore) resolveCategoryID(name string) (*uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`SELECT id FROM categories WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve category id: %w", err)
	}
	return &id, nil
}

// normalizeTags trims whitespace, drops empties, and deduplicates
// while preserving first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// escapeLike escapes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
