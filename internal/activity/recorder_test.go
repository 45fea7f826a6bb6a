package activity

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"promptstash/internal/models"
)

// captureSink records inserted events and optionally fails.
type captureSink struct {
	events []*models.ActivityEvent
	err    error
}

func (s *captureSink) Insert(e *models.ActivityEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func TestRecord(t *testing.T) {
	sink := &captureSink{}
	rec := NewRecorder(sink)

	userID := uuid.New()
	subjectID := uuid.New()
	rec.Record(models.ActionPromptCreate, &userID, &subjectID, "title=Test")

	if len(sink.events) != 1 {
		t.Fatalf("events: got %d, want 1", len(sink.events))
	}
	e := sink.events[0]
	if e.Action != models.ActionPromptCreate {
		t.Errorf("action: got %q", e.Action)
	}
	if e.UserID == nil || *e.UserID != userID {
		t.Errorf("user ID: got %v", e.UserID)
	}
	if e.SubjectID == nil || *e.SubjectID != subjectID {
		t.Errorf("subject ID: got %v", e.SubjectID)
	}
	if e.Metadata != "title=Test" {
		t.Errorf("metadata: got %q", e.Metadata)
	}
}

func TestRecordAnonymous(t *testing.T) {
	sink := &captureSink{}
	rec := NewRecorder(sink)

	rec.Record(models.ActionPromptView, nil, nil, "")

	if len(sink.events) != 1 {
		t.Fatalf("events: got %d, want 1", len(sink.events))
	}
	if sink.events[0].UserID != nil {
		t.Error("expected nil user ID for anonymous event")
	}
}

// TestRecordSwallowsErrors verifies the fire-and-forget contract:
// a failing sink must not panic or propagate.
func TestRecordSwallowsErrors(t *testing.T) {
	rec := NewRecorder(&captureSink{err: errors.New("sink down")})

	// Must not panic; Record has no error return.
	rec.Record(models.ActionSignin, nil, nil, "")
}
