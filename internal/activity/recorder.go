// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

// Package activity records append-only activity events. Recording is
// best-effort: a failed insert is logged and swallowed so it can never
// fail the request that triggered it.
package activity

import (
	"log/slog"

	"github.com/google/uuid"

	"promptstash/internal/models"
)

// Sink persists activity events. *store.ActivityStore satisfies it.
type Sink interface {
	Insert(event *models.ActivityEvent) error
}

// Recorder dispatches events to a Sink, discarding failures.
type Recorder struct {
	sink Sink
}

// NewRecorder creates a Recorder writing to the given sink.
func NewRecorder(sink Sink) *Recorder {
	return &Recorder{sink: sink}
}

// Record persists one event. Errors are logged, never returned: the
// activity log is an audit trail, not part of the request contract.
// UserID and subjectID may be nil (anonymous views and usage).
func (r *Recorder) Record(action models.Action, userID, subjectID *uuid.UUID, metadata string) {
	event := &models.ActivityEvent{
		UserID:    userID,
		Action:    action,
		SubjectID: subjectID,
		Metadata:  metadata,
	}
	if err := r.sink.Insert(event); err != nil {
		slog.Warn("activity record failed",
			"action", action,
			"error", err,
		)
	}
}

// UUIDPtr is a convenience for call sites passing optional IDs.
func UUIDPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
