package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/goplus/core"
	"github.com/layer-3/goplus/ports"
)

const revokedKeyPrefix = "revoked:"

// AuthService issues and validates gateway bearer tokens
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.ResultCache

	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates a new authentication service. store keeps revoked
// token IDs; without one revocation is unavailable.
func NewAuthService(tokenizer ports.Tokenizer, store ports.ResultCache) *AuthService {
	return &AuthService{
		tokenizer: tokenizer,
		store:     store,
		tokenTTL:  24 * time.Hour,
		now:       time.Now,
	}
}

// IssueToken creates a bearer token for subject. A non-positive ttl uses the default lifetime.
func (s *AuthService) IssueToken(subject string, ttl time.Duration) (string, *core.Caller, error) {
	if subject == "" {
		return "", nil, fmt.Errorf("%w: subject is required", core.ErrInvalidRequest)
	}
	if ttl <= 0 {
		ttl = s.tokenTTL
	}

	now := s.now()
	caller := &core.Caller{
		ID:        uuid.New().String(),
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := s.tokenizer.CallerToToken(caller)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create token: %w", err)
	}
	return token, caller, nil
}

// ValidateToken parses token and rejects it when it has been revoked
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*core.Caller, error) {
	caller, err := s.tokenizer.TokenToCaller(token)
	if err != nil {
		return nil, err
	}

	if s.store != nil && caller.ID != "" {
		_, err := s.store.Get(ctx, revokedKeyPrefix+caller.ID)
		switch {
		case err == nil:
			return nil, core.ErrTokenRevoked
		case !errors.Is(err, core.ErrCacheMiss):
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
	}

	return caller, nil
}

// Revoke invalidates token until it would have expired anyway
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	if s.store == nil {
		return core.ErrRevocationUnavailable
	}

	caller, err := s.tokenizer.TokenToCaller(token)
	if err != nil {
		return err
	}

	remaining := caller.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	if err := s.store.Set(ctx, revokedKeyPrefix+caller.ID, []byte(caller.Subject), remaining); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
