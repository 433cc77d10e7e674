package tokenizer

import "github.com/golang-jwt/jwt/v5"

// CallerClaims are the standard claims carried by gateway bearer tokens
type CallerClaims struct {
	jwt.RegisteredClaims
}
