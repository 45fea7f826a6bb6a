// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"promptstash/internal/database"
	"promptstash/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with the development defaults.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "promptstash")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "promptstash")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user and registers cleanup of the user
// and everything it authored.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	email := "storetest-" + uuid.NewString()[:8] + "@example.com"
	u, err := NewUserStore(db).Create(email, "password123", "Store Tester")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM activity_log WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM reviews WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM comments WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM prompts WHERE author_id = $1", u.ID)
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testPrompt creates a prompt owned by the given user. The prompt rides
// on the user's cleanup (prompts cascade reviews, comments, and tags).
func testPrompt(t *testing.T, db *sql.DB, author *models.User, title string, tags ...string) *models.Prompt {
	t.Helper()

	p, err := NewPromptStore(db).Create(&models.Prompt{
		Title:    title,
		Prompt:   "Test prompt body for " + title,
		Tags:     tags,
		AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("create test prompt: %v", err)
	}
	return p
}

// cleanCategories removes test categories by name. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM categories WHERE name = $1", name)
	}
}
