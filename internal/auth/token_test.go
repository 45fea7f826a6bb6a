package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

const testSecret = "test-secret-0123456789abcdef"

func TestNewTokenServiceRejectsShortSecret(t *testing.T) {
	if _, err := NewTokenService("short"); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc, err := NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	userID := uuid.New()
	token, err := svc.Generate(userID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("expected three-part JWT, got %q", token)
	}

	got, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got != userID {
		t.Errorf("user ID: got %s, want %s", got, userID)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc, _ := NewTokenService(testSecret)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Validate(token); err == nil {
			t.Errorf("Validate(%q): expected error", token)
		}
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc1, _ := NewTokenService(testSecret)
	svc2, _ := NewTokenService("another-secret-0123456789abcdef")

	token, err := svc1.Generate(uuid.New())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc2.Validate(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}
