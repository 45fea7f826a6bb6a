package handlers

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"promptstash/internal/apperror"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user@example.com", "first.last@sub.domain.org"}
	for _, e := range valid {
		if !validEmail(e) {
			t.Errorf("validEmail(%q) = false, want true", e)
		}
	}

	invalid := []string{"", "plain", "@example.com", "user@", "user@nodot", "user@.com"}
	for _, e := range invalid {
		if validEmail(e) {
			t.Errorf("validEmail(%q) = true, want false", e)
		}
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"urgent", []string{"urgent"}},
		{"urgent,review", []string{"urgent", "review"}},
		{" urgent , review ,", []string{"urgent", "review"}},
		{",,", nil},
	}
	for _, tt := range tests {
		if got := splitTags(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTags(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestLimitOffset(t *testing.T) {
	q := url.Values{"limit": {"25"}, "offset": {"10"}}
	limit, offset := limitOffset(q)
	if limit != 25 || offset != 10 {
		t.Errorf("got (%d, %d), want (25, 10)", limit, offset)
	}

	// Garbage coerces to zero; the store applies defaults.
	q = url.Values{"limit": {"banana"}, "offset": {"-"}}
	limit, offset = limitOffset(q)
	if limit != 0 || offset != 0 {
		t.Errorf("garbage: got (%d, %d), want (0, 0)", limit, offset)
	}
}

func TestRequireText(t *testing.T) {
	if err := requireText("title", "hello", 10); err != nil {
		t.Errorf("valid text: %v", err)
	}

	err := requireText("title", "   ", 10)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("blank text: got %v", err)
	}

	err = requireText("title", strings.Repeat("x", 11), 10)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("over limit: got %v", err)
	}
}
