package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"promptstash/internal/apperror"
	"promptstash/internal/models"
)

func TestCategoryStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	name := "CatTest-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, name) })

	created, err := s.Create(&models.Category{
		Name:        name,
		Description: "test category",
		Color:       "#ff0000",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}

	byID, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Name != name {
		t.Errorf("FindByID: got %+v", byID)
	}

	byName, err := s.FindByName(name)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Errorf("FindByName: got %+v", byName)
	}
}

func TestCategoryStoreDuplicateNameConflicts(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	name := "CatDup-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, name) })

	original, err := s.Create(&models.Category{Name: name, Description: "original"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = s.Create(&models.Category{Name: name, Description: "imposter"})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate create: got %v, want conflict", err)
	}

	// The original must be unmodified.
	got, err := s.FindByID(original.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Description != "original" {
		t.Errorf("description: got %q, want %q", got.Description, "original")
	}
}

func TestCategoryStoreListWithPromptCounts(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	s := NewCategoryStore(db)
	ps := NewPromptStore(db)

	name := "CatCount-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, name) })

	if _, err := s.Create(&models.Category{Name: name}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := ps.Create(&models.Prompt{
			Title: "Counted", Prompt: "body", Category: name, AuthorID: user.ID,
		}); err != nil {
			t.Fatalf("create prompt: %v", err)
		}
	}

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var found *models.Category
	for i := range items {
		if items[i].Name == name {
			found = &items[i]
		}
	}
	if found == nil {
		t.Fatal("created category missing from List")
	}
	if found.PromptCount != 2 {
		t.Errorf("prompt count: got %d, want 2", found.PromptCount)
	}

	// Ordered by name ascending.
	for i := 1; i < len(items); i++ {
		if items[i-1].Name > items[i].Name {
			t.Errorf("ordering violated: %q before %q", items[i-1].Name, items[i].Name)
			break
		}
	}
}

func TestCategoryStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	name := "CatUpd-" + uuid.NewString()[:8]
	renamed := name + "-renamed"
	t.Cleanup(func() { cleanCategories(t, db, name, renamed) })

	c, err := s.Create(&models.Category{Name: name})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	c.Name = renamed
	c.Description = "updated"
	if err := s.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.FindByID(c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != renamed || got.Description != "updated" {
		t.Errorf("after update: got %+v", got)
	}
}

func TestCategoryStoreDeleteAndCounts(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	s := NewCategoryStore(db)
	ps := NewPromptStore(db)

	name := "CatDel-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, name) })

	c, err := s.Create(&models.Category{Name: name})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := ps.Create(&models.Prompt{
		Title: "Occupant", Prompt: "body", Category: name, AuthorID: user.ID,
	}); err != nil {
		t.Fatalf("create prompt: %v", err)
	}

	count, err := s.PromptCount(name)
	if err != nil {
		t.Fatalf("PromptCount: %v", err)
	}
	if count != 1 {
		t.Errorf("prompt count: got %d, want 1", count)
	}

	// With the referencing prompt removed, deletion succeeds.
	db.Exec("DELETE FROM prompts WHERE category = $1", name)
	if err := s.Delete(c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := s.FindByID(c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
