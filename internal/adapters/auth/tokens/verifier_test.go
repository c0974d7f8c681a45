package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerify_IDClaim(t *testing.T) {
	v := NewVerifier(testSecret)

	// El emisor firma {id}, no "sub"
	token := signToken(t, testSecret, jwt.MapClaims{
		"id":    "user-1",
		"email": "asha@example.com",
		"name":  "Asha",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "asha@example.com" || claims.Name != "Asha" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerify_SubFallback(t *testing.T) {
	v := NewVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-2" {
		t.Fatalf("expected sub fallback, got %q", claims.UserID)
	}
}

func TestVerify_Rejections(t *testing.T) {
	v := NewVerifier(testSecret)
	ctx := context.Background()

	if _, err := v.Verify(ctx, ""); err != ErrTokenEmpty {
		t.Fatalf("empty token: expected ErrTokenEmpty, got %v", err)
	}

	wrongSecret := signToken(t, "other-secret", jwt.MapClaims{"id": "user-1"})
	if _, err := v.Verify(ctx, wrongSecret); err != ErrTokenInvalid {
		t.Fatalf("wrong secret: expected ErrTokenInvalid, got %v", err)
	}

	expired := signToken(t, testSecret, jwt.MapClaims{
		"id":  "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if _, err := v.Verify(ctx, expired); err != ErrTokenInvalid {
		t.Fatalf("expired: expected ErrTokenInvalid, got %v", err)
	}

	noID := signToken(t, testSecret, jwt.MapClaims{"email": "x@example.com"})
	if _, err := v.Verify(ctx, noID); err == nil {
		t.Fatal("expected error for token without user id")
	}

	var nilVerifier *Verifier
	if _, err := nilVerifier.Verify(ctx, "whatever"); err != ErrNotConfigured {
		t.Fatalf("nil verifier: expected ErrNotConfigured, got %v", err)
	}
}

func TestVerify_RejectsUnexpectedAlg(t *testing.T) {
	v := NewVerifier(testSecret)

	// alg=none no pasa el filtro de métodos válidos
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "user-1"})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := v.Verify(context.Background(), signed); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for alg=none, got %v", err)
	}
}
