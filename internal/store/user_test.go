package store

import (
	"errors"
	"testing"

	"promptstash/internal/apperror"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	u := testUser(t, db)

	if u.ID.String() == "" {
		t.Fatal("expected generated user ID")
	}
	if u.PasswordHash == "password123" {
		t.Fatal("password stored in plaintext")
	}

	byEmail, err := s.FindByEmail(u.Email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Errorf("FindByEmail: got %+v", byEmail)
	}

	byID, err := s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Email != u.Email {
		t.Errorf("FindByID: got %+v", byID)
	}
}

func TestUserStoreFindMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	u, err := s.FindByEmail("nobody-here@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	u := testUser(t, db)

	_, err := s.Create(u.Email, "different-password", "Impostor")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	u := testUser(t, db)

	if !s.CheckPassword(u, "password123") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(u, "wrong-password") {
		t.Error("wrong password accepted")
	}
}

func TestUserPublicProjection(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db)

	pub := u.Public()
	if pub.ID != u.ID || pub.Name != u.Name {
		t.Errorf("Public: got %+v", pub)
	}
}
