// Package main is a one-shot fixture importer. It reads a JSON file of
// categories and prompts (with embedded reviews), inserts them through
// the regular store layer, and exits. Re-running is safe: prompts are
// matched by title and skipped if already present.
//
// Usage:
//
//	promptstash-import -file fixtures.json [-owner email]
//
// The owner must be an existing user; imported prompts and reviews are
// attributed to it. Defaults to the dev seed admin.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"promptstash/internal/config"
	"promptstash/internal/database"
	"promptstash/internal/models"
	"promptstash/internal/store"
)

// fixture is the import file layout.
type fixture struct {
	Categories []fixtureCategory `json:"categories"`
	Prompts    []fixturePrompt   `json:"prompts"`
}

type fixtureCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type fixturePrompt struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Prompt        string               `json:"prompt"`
	Category      string               `json:"category"`
	Tags          []string             `json:"tags"`
	Difficulty    string               `json:"difficulty"`
	EstimatedTime string               `json:"estimated_time"`
	Placeholders  []models.Placeholder `json:"placeholders"`
	Reviews       []fixtureReview      `json:"reviews"`
}

type fixtureReview struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

func main() {
	file := flag.String("file", "fixtures.json", "path to the fixtures JSON file")
	owner := flag.String("owner", "admin@promptstash.local", "email of the user to own imported data")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		slog.Error("failed to read fixtures file", "file", *file, "error", err)
		os.Exit(1)
	}

	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		slog.Error("failed to parse fixtures file", "file", *file, "error", err)
		os.Exit(1)
	}

	user, err := store.NewUserStore(db).FindByEmail(*owner)
	if err != nil {
		slog.Error("owner lookup failed", "error", err)
		os.Exit(1)
	}
	if user == nil {
		slog.Error("owner not found; create the user first", "email", *owner)
		os.Exit(1)
	}

	categories := store.NewCategoryStore(db)
	prompts := store.NewPromptStore(db)
	reviews := store.NewReviewStore(db)

	imported, skipped := 0, 0

	for _, c := range fx.Categories {
		existing, err := categories.FindByName(c.Name)
		if err != nil {
			slog.Error("category lookup failed", "name", c.Name, "error", err)
			os.Exit(1)
		}
		if existing != nil {
			continue
		}
		if _, err := categories.Create(&models.Category{
			Name:        c.Name,
			Description: c.Description,
			Color:       c.Color,
		}); err != nil {
			slog.Error("category import failed", "name", c.Name, "error", err)
			os.Exit(1)
		}
		slog.Info("category imported", "name", c.Name)
	}

	for _, f := range fx.Prompts {
		if promptExists(db, f.Title) {
			skipped++
			continue
		}

		p, err := prompts.Create(&models.Prompt{
			Title:         f.Title,
			Description:   f.Description,
			Prompt:        f.Prompt,
			Category:      f.Category,
			Tags:          f.Tags,
			Difficulty:    f.Difficulty,
			EstimatedTime: f.EstimatedTime,
			Placeholders:  f.Placeholders,
			AuthorID:      user.ID,
		})
		if err != nil {
			slog.Error("prompt import failed", "title", f.Title, "error", err)
			os.Exit(1)
		}

		for _, rev := range f.Reviews {
			if !models.ValidRating(rev.Rating) {
				slog.Warn("skipping review with invalid rating",
					"title", f.Title, "rating", rev.Rating)
				continue
			}
			if _, err := reviews.Create(&models.Review{
				PromptID: p.ID,
				UserID:   user.ID,
				Rating:   rev.Rating,
				Comment:  rev.Comment,
			}); err != nil {
				slog.Error("review import failed", "title", f.Title, "error", err)
				os.Exit(1)
			}
		}
		imported++
	}

	slog.Info("import complete", "imported", imported, "skipped", skipped)
}

// promptExists checks for an existing prompt with the same title. The
// title match is what makes re-running the importer idempotent.
func promptExists(db *sql.DB, title string) bool {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM prompts WHERE title = $1`, title).Scan(&count); err != nil {
		slog.Error("prompt existence check failed", "title", title, "error", err)
		os.Exit(1)
	}
	return count > 0
}
