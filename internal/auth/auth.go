package auth

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently ignores everything past 72 bytes, so the truncation is made
// explicit here and applied identically on hash and verify.
const maxPasswordBytes = 72

const bcryptCost = 12

// DefaultTokenTTL is used when no expiration is configured.
const DefaultTokenTTL = 15 * time.Minute

var ErrInvalidToken = errors.New("invalid or expired token")

// JWTClaims defines the payload for the JWT. Subject carries the user email.
type JWTClaims struct {
	jwt.RegisteredClaims
}

// truncatePassword cuts the password to the first 72 bytes of its UTF-8
// encoding. A multi-byte rune straddling the boundary is discarded entirely;
// at most utf8.UTFMax-1 trailing bytes come off, everything before the cut is
// kept byte for byte.
func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) <= maxPasswordBytes {
		return b
	}
	b = b[:maxPasswordBytes]
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}
		if !utf8.Valid(b[len(b)-i:]) {
			b = b[:len(b)-i]
		}
		break
	}
	return b
}

// Hashing
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password))
	return err == nil
}

// TokenIssuer signs and validates the bearer tokens used by both the cookie
// flow and the JSON API. The secret comes from configuration at startup.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Generate issues a token for the given subject with the configured TTL.
func (t *TokenIssuer) Generate(email string) (string, error) {
	return t.GenerateWithTTL(email, t.ttl)
}

func (t *TokenIssuer) GenerateWithTTL(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse validates signature and expiry and returns the subject email.
// Any failure collapses into ErrInvalidToken; a token is never partially
// trusted.
func (t *TokenIssuer) Parse(tokenString string) (string, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
