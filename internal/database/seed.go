package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// starterCategories are created on first boot so the library isn't empty.
var starterCategories = []struct {
	name        string
	description string
	color       string
}{
	{"Uncategorized", "Prompts without a specific category", "#9ca3af"},
	{"Writing", "Drafting, editing, and copywriting prompts", "#3b82f6"},
	{"Analysis", "Data analysis and research prompts", "#10b981"},
	{"Planning", "Project and strategy planning prompts", "#f59e0b"},
}

// Seed populates the database with initial development data. It creates
// a default admin user and the starter categories if none exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
	`, "admin@promptstash.local", string(hash), "Admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	for _, c := range starterCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, description, color)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING
		`, c.name, c.description, c.color)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.name, err)
		}
	}

	slog.Info("database seeded with default admin user and starter categories",
		"email", "admin@promptstash.local",
		"password", "admin",
	)

	return nil
}
