// handler_test.go provides an end-to-end test harness that wires the
// real stores, router, and middleware against a test database. Tests
// are skipped if PostgreSQL is not available.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"promptstash/internal/activity"
	"promptstash/internal/auth"
	"promptstash/internal/database"
	"promptstash/internal/models"
	"promptstash/internal/store"
)

// testEnv bundles everything a handler integration test needs.
type testEnv struct {
	db     *sql.DB
	router http.Handler
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "promptstash")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "promptstash")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

// newTestEnv builds the full handler stack against the test database,
// skipping the test when it is unreachable. The auth handler group is
// created without a Redis code store; verification-flow tests build
// their own.
func newTestEnv(t *testing.T) *testEnv {
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
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService("handler-test-secret-0123456789")
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	recorder := activity.NewRecorder(store.NewActivityStore(db))
	authH := NewAuth(store.NewUserStore(db), tokens, nil, recorder)
	prompts := NewPrompts(store.NewPromptStore(db), store.NewCategoryStore(db), store.NewReviewStore(db), store.NewCommentStore(db), recorder)
	categories := NewCategories(store.NewCategoryStore(db))
	stats := NewStats(store.NewStatsStore(db), store.NewActivityStore(db))
	tags := NewTags(store.NewTagStore(db))

	// Routes mirror the production router (which lives a package above
	// and cannot be imported here without a cycle). The router package
	// has its own wiring tests.
	r := chi.NewRouter()
	r.Use(auth.Authenticate(tokens))
	r.Post("/auth/signup", authH.Signup)
	r.Post("/auth/signin", authH.Signin)
	r.Post("/auth/send-verification", authH.SendVerification)
	r.Post("/auth/verify-code", authH.VerifyCode)
	r.With(auth.RequireAuth).Get("/auth/me", authH.Me)
	r.Get("/api/prompts", prompts.List)
	r.Get("/api/prompts/{id}", prompts.Get)
	r.Post("/api/prompts/{id}/use", prompts.Use)
	r.Get("/api/prompts/{id}/comments", prompts.ListComments)
	r.Get("/api/categories", categories.List)
	r.Get("/api/search", prompts.Search)
	r.Get("/api/tags", tags.List)
	r.Get("/api/stats", stats.Global)
	r.Get("/api/stats/activity", stats.Activity)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Post("/api/prompts", prompts.Create)
		r.Put("/api/prompts/{id}", prompts.Update)
		r.Delete("/api/prompts/{id}", prompts.Delete)
		r.Post("/api/prompts/{id}/review", prompts.Review)
		r.Post("/api/prompts/{id}/comments", prompts.CreateComment)
		r.Post("/api/categories", categories.Create)
		r.Put("/api/categories/{id}", categories.Update)
		r.Delete("/api/categories/{id}", categories.Delete)
		r.Get("/api/stats/user", stats.User)
	})

	return &testEnv{db: db, router: r}
}

// do performs a JSON request against the test router. token may be
// empty for anonymous requests.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doDirect invokes a single handler function with a JSON body,
// bypassing the router. Used by tests that don't need the full stack.
func doDirect(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/", bytes.NewReader(buf))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// decode unmarshals a response body into v.
func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// signup registers a throwaway user through the API and returns the
// token plus the user record. Cleanup removes the user and everything
// it authored.
func (e *testEnv) signup(t *testing.T) (string, *models.User) {
	t.Helper()

	email := "handlertest-" + uuid.NewString()[:8] + "@example.com"
	w := e.do(t, "POST", "/auth/signup", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Handler Tester",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	decode(t, w, &resp)
	if resp.Token == "" || resp.User == nil {
		t.Fatalf("signup response incomplete: %s", w.Body.String())
	}

	t.Cleanup(func() {
		e.db.Exec("DELETE FROM activity_log WHERE user_id = $1", resp.User.ID)
		e.db.Exec("DELETE FROM reviews WHERE user_id = $1", resp.User.ID)
		e.db.Exec("DELETE FROM comments WHERE user_id = $1", resp.User.ID)
		e.db.Exec("DELETE FROM prompts WHERE author_id = $1", resp.User.ID)
		e.db.Exec("DELETE FROM users WHERE id = $1", resp.User.ID)
	})
	return resp.Token, resp.User
}

// createPrompt makes a prompt through the API and returns it.
func (e *testEnv) createPrompt(t *testing.T, token string, body map[string]any) *models.Prompt {
	t.Helper()

	w := e.do(t, "POST", "/api/prompts", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create prompt: got %d: %s", w.Code, w.Body.String())
	}
	var p models.Prompt
	decode(t, w, &p)
	return &p
}

// cleanCategory removes a category by name in cleanup.
func (e *testEnv) cleanCategory(t *testing.T, name string) {
	t.Helper()
	t.Cleanup(func() {
		e.db.Exec("DELETE FROM categories WHERE name = $1", name)
	})
}
