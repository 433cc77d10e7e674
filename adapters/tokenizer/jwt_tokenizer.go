package tokenizer

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/layer-3/goplus/core"
	"github.com/layer-3/goplus/ports"
)

const AudienceGateway = "goplus:gateway"

// JWTTokenizer implements the Tokenizer interface using HS256 JWTs
type JWTTokenizer struct {
	secret []byte
}

// NewJWTTokenizer creates a new JWT tokenizer
func NewJWTTokenizer(secret []byte) ports.Tokenizer {
	return &JWTTokenizer{secret: secret}
}

// CallerToToken converts a Caller to a signed JWT
func (j *JWTTokenizer) CallerToToken(caller *core.Caller) (string, error) {
	claims := CallerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.Subject,
			ID:        caller.ID,
			ExpiresAt: jwt.NewNumericDate(caller.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(caller.IssuedAt),
			Audience:  jwt.ClaimStrings{AudienceGateway},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// TokenToCaller verifies a JWT and returns the caller it was issued to
func (j *JWTTokenizer) TokenToCaller(tokenStr string) (*core.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CallerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithAudience(AudienceGateway), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*CallerClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}

	caller := &core.Caller{
		ID:        claims.ID,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		caller.IssuedAt = claims.IssuedAt.Time
	}

	return caller, nil
}
