package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"promptstash/internal/apperror"
)

// Input limits enforced at the request boundary.
const (
	maxBodyBytes  = 1 << 20 // 1 MiB request body cap
	maxTitleLen   = 300
	maxPromptLen  = 100_000
	maxNameLen    = 200
	maxContentLen = 10_000
)

// decodeJSON reads the request body into v, rejecting oversized or
// malformed payloads with a validation error.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperror.ValidationFailed("", "invalid JSON body: "+err.Error())
	}
	return nil
}

// uuidParam parses a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ValidationFailed(name, "invalid "+name+": "+raw)
	}
	return id, nil
}

// limitOffset reads pagination parameters. Missing or malformed values
// coerce to zero; the store applies its own defaults and caps.
func limitOffset(q url.Values) (limit, offset int) {
	limit, _ = strconv.Atoi(q.Get("limit"))
	offset, _ = strconv.Atoi(q.Get("offset"))
	return limit, offset
}

// splitTags parses a comma-separated tag filter, dropping empties.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// validEmail is a cheap shape check: something@something.something.
// Real verification happens through the emailed code.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	dot := strings.LastIndexByte(email[at:], '.')
	return dot > 1 && at+dot < len(email)-1
}

// requireText checks a required free-text field against a length cap.
func requireText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return apperror.ValidationFailed(field, field+" is required")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return apperror.ValidationFailed(field, field+" is too long (max "+strconv.Itoa(maxLen)+" characters)")
	}
	return nil
}
