package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", "user-1", "manager", 24)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if until := time.Until(tok.Exp); until < 23*time.Hour || until > 25*time.Hour {
		t.Fatalf("expected ~24h expiry, got %v", until)
	}

	claims, err := VerifyAccessToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "manager" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret", "user-1", "manager", 24)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := VerifyAccessToken("other", tok.Token); err != ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "user-1",
		"role": "manager",
		"exp":  time.Now().UTC().Add(-time.Hour).Unix(),
		"iat":  time.Now().UTC().Add(-2 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyAccessToken("secret", signed); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	if _, err := VerifyAccessToken("secret", "not.a.token"); err != ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestDocNumberShape(t *testing.T) {
	n := DocNumber("GA")
	parts := strings.Split(n, "-")
	if len(parts) != 3 {
		t.Fatalf("expected PREFIX-DATE-SUFFIX, got %s", n)
	}
	if parts[0] != "GA" {
		t.Fatalf("expected GA prefix, got %s", parts[0])
	}
	if len(parts[1]) != 8 {
		t.Fatalf("expected YYYYMMDD date, got %s", parts[1])
	}
	if len(parts[2]) != 4 || parts[2] != strings.ToUpper(parts[2]) {
		t.Fatalf("expected 4-char uppercase suffix, got %s", parts[2])
	}
	if DocNumber("GA") == n && DocNumber("GA") == n {
		t.Fatal("expected distinct suffixes across calls")
	}
}
