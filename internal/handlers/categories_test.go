package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"promptstash/internal/models"
)

func TestCategoryCRUD(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t)

	name := "handlertest-" + uuid.NewString()[:8]
	env.cleanCategory(t, name)
	env.cleanCategory(t, name+"-renamed")

	w := env.do(t, "POST", "/api/categories", token, map[string]any{
		"name": name, "description": "test category", "color": "#123456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d: %s", w.Code, w.Body.String())
	}
	var c models.Category
	decode(t, w, &c)

	// Duplicate name conflicts, case-sensitively.
	w = env.do(t, "POST", "/api/categories", token, map[string]any{
		"name": name, "color": "#000000",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate: got %d, want 409", w.Code)
	}

	// Update renames.
	w = env.do(t, "PUT", "/api/categories/"+c.ID.String(), token, map[string]any{
		"name": name + "-renamed", "description": "renamed", "color": "#654321",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: got %d: %s", w.Code, w.Body.String())
	}

	// List includes it with a zero prompt count.
	w = env.do(t, "GET", "/api/categories", "", nil)
	var list []models.Category
	decode(t, w, &list)
	found := false
	for _, item := range list {
		if item.ID == c.ID {
			found = true
			if item.PromptCount != 0 {
				t.Errorf("prompt count: got %d, want 0", item.PromptCount)
			}
		}
	}
	if !found {
		t.Error("category missing from list")
	}

	// Empty category deletes cleanly.
	w = env.do(t, "DELETE", "/api/categories/"+c.ID.String(), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d: %s", w.Code, w.Body.String())
	}
	w = env.do(t, "DELETE", "/api/categories/"+c.ID.String(), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete again: got %d, want 404", w.Code)
	}
}

func TestCategoryUpdateMergesFields(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t)

	name := "handlertest-" + uuid.NewString()[:8]
	env.cleanCategory(t, name)

	w := env.do(t, "POST", "/api/categories", token, map[string]any{
		"name": name, "description": "original description", "color": "#abcdef",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d: %s", w.Code, w.Body.String())
	}
	var c models.Category
	decode(t, w, &c)

	// A PUT carrying only the color leaves name and description alone.
	w = env.do(t, "PUT", "/api/categories/"+c.ID.String(), token, map[string]any{
		"color": "#fedcba",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("partial update: got %d: %s", w.Code, w.Body.String())
	}
	var updated models.Category
	decode(t, w, &updated)
	if updated.Color != "#fedcba" {
		t.Errorf("color: got %q", updated.Color)
	}
	if updated.Name != name {
		t.Errorf("name wiped by partial update: got %q", updated.Name)
	}
	if updated.Description != "original description" {
		t.Errorf("description wiped by partial update: got %q", updated.Description)
	}

	// A blank name is still rejected when supplied.
	w = env.do(t, "PUT", "/api/categories/"+c.ID.String(), token, map[string]any{
		"name": "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name: got %d, want 400", w.Code)
	}

	env.cleanCategory(t, name)
}

func TestCategoryDeleteBlockedWhileReferenced(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t)

	name := "handlertest-" + uuid.NewString()[:8]
	env.cleanCategory(t, name)

	w := env.do(t, "POST", "/api/categories", token, map[string]any{
		"name": name, "color": "#ffffff",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: got %d", w.Code)
	}
	var c models.Category
	decode(t, w, &c)

	env.createPrompt(t, token, map[string]any{
		"title": "Occupant", "prompt": "body", "category": name,
	})

	w = env.do(t, "DELETE", "/api/categories/"+c.ID.String(), token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("delete referenced: got %d, want 409", w.Code)
	}

	// Category and prompt both survive.
	w = env.do(t, "GET", "/api/categories", "", nil)
	var list []models.Category
	decode(t, w, &list)
	stillThere := false
	for _, item := range list {
		if item.ID == c.ID && item.PromptCount == 1 {
			stillThere = true
		}
	}
	if !stillThere {
		t.Error("referenced category vanished or lost its prompt count")
	}
}
