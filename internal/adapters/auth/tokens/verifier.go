package tokens

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"mediassist/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrTokenInvalid  = errors.New("token is invalid")
	ErrNotConfigured = errors.New("token verifier not configured")
)

// Verifier implementa auth.AuthVerifier parseando JWT HS256 firmados
// con secret compartido (el mismo esquema que usa el backend de auth).
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret))}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrTokenInvalid
	}

	// El emisor firma {id}; aceptamos también "sub" estándar.
	userID := stringClaim(mc, "id")
	if userID == "" {
		userID = stringClaim(mc, "sub")
	}
	if userID == "" {
		return auth.Claims{}, errors.New("token claims missing user id")
	}

	return auth.Claims{
		UserID: userID,
		Email:  stringClaim(mc, "email"),
		Name:   stringClaim(mc, "name"),
	}, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	if v, ok := mc[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
