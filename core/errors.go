package core

import "errors"

var (
	ErrTokenExpired          = errors.New("token has expired")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrRevocationUnavailable = errors.New("token revocation requires a store")
	ErrCacheMiss             = errors.New("cache miss")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrNoKeys                = errors.New("no app key configured")
)
