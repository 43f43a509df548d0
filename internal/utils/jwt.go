package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel errors distinguishing expiry from malformed tokens
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrTokenExpired is returned by VerifyAccessToken when the token's exp claim
// lies in the past.  Handlers translate it into HTTP 401.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenMalformed is returned when the token cannot be parsed, carries an
// unexpected signing method, or is missing required claims.
var ErrTokenMalformed = errors.New("token malformed")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are encoded in the Authorization
// header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenClaims carries the identity claims extracted from a verified access
// token: the subject user ID and the role captured at issue time.  The role
// is advisory only; the authorization middleware re-reads the current role
// and status from the users table on every request.
type TokenClaims struct {
	UserID string // the "sub" claim
	Role   string // the "role" claim
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's role, and a TTL in hours.  It
// returns an AccessToken structure containing the signed token and its
// expiration time.  The JWT includes standard claims: subject (sub), role,
// expiration (exp) and issued at (iat).
func NewAccessToken(secret, userID, role string, ttlHours int) (AccessToken, error) {
	// Calculate the expiration time by adding the TTL to the current UTC time.
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a raw token string.  Only HMAC
// signatures are accepted; any other signing method is rejected as
// malformed.  Expired tokens yield ErrTokenExpired, every other validation
// failure yields ErrTokenMalformed.
func VerifyAccessToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrTokenExpired
		}
		return TokenClaims{}, ErrTokenMalformed
	}
	if !tok.Valid {
		return TokenClaims{}, ErrTokenMalformed
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrTokenMalformed
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return TokenClaims{}, ErrTokenMalformed
	}
	return TokenClaims{UserID: sub, Role: role}, nil
}
