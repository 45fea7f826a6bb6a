// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// codeTTL is how long a verification code stays valid in Redis.
	codeTTL = 10 * time.Minute

	// codePrefix namespaces verification-code keys in Redis.
	codePrefix = "verify:"

	codeDigits = 6
)

// CodeStore issues and checks single-use email verification codes.
// Codes are stored in Redis with automatic TTL expiry and deleted on
// successful verification.
type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeStore creates a verification-code store backed by the given
// Redis client.
func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client, ttl: codeTTL}
}

// Issue generates a fresh 6-digit code for the email, replacing any
// code issued earlier, and returns it for delivery.
func (s *CodeStore) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("verification code: %w", err)
	}

	if err := s.client.Set(ctx, codePrefix+email, code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("verification code store: %w", err)
	}
	return code, nil
}

// Verify checks the code for the email. A matching code is consumed so
// it cannot be replayed. Returns false for unknown, expired, or
// mismatched codes.
func (s *CodeStore) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, codePrefix+email).Result()
	if err == redis.Nil {
		return false, nil // Expired or never issued
	}
	if err != nil {
		return false, fmt.Errorf("verification code get: %w", err)
	}

	if stored != code {
		return false, nil
	}

	// Single use: best effort delete, a failure here only shortens the
	// replay window to the TTL.
	s.client.Del(ctx, codePrefix+email)
	return true, nil
}

// generateCode returns a random zero-padded 6-digit numeric code.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}
