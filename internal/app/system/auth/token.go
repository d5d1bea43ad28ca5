// Package auth issues the token returned to clients after a successful login.
//
// Two issuers exist:
//   - DemoIssuer: the legacy "demo-token-<id>" format. Deterministic, unsigned,
//     never expires. Kept for clients that still parse it.
//   - JWTIssuer: an HS256 JWT carrying the user id, a unique token id and an
//     expiry.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Token modes.
const (
	ModeDemo = "demo"
	ModeJWT  = "jwt"
)

// DefaultDemoPrefix is prepended to the user id by DemoIssuer.
const DefaultDemoPrefix = "demo-token-"

// minSecretLen is the shortest signing secret accepted in production.
const minSecretLen = 32

// Issuer turns a directory user id into a client token.
type Issuer interface {
	Issue(userID string) (string, error)
}

// ValidMode reports whether mode names a supported issuer.
func ValidMode(mode string) bool {
	return mode == ModeDemo || mode == ModeJWT
}

/*─────────────────────────────────────────────────────────────────────────────*
| Demo tokens                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// DemoIssuer derives the token from the user id alone, so the same user
// always gets the same token.
type DemoIssuer struct {
	Prefix string
}

// NewDemoIssuer returns a DemoIssuer; an empty prefix means DefaultDemoPrefix.
func NewDemoIssuer(prefix string) *DemoIssuer {
	if prefix == "" {
		prefix = DefaultDemoPrefix
	}
	return &DemoIssuer{Prefix: prefix}
}

// Issue implements Issuer.
func (d *DemoIssuer) Issue(userID string) (string, error) {
	return d.Prefix + userID, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| JWT tokens                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Claims are the JWT claims issued after login. The user id is the subject.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// ConfigError is returned when token configuration is invalid.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewJWTIssuer validates the signing secret and returns an issuer.
//
// In production (strict) a weak secret aborts startup; otherwise it is
// only logged.
func NewJWTIssuer(secret string, ttl time.Duration, strict bool, logger *zap.Logger) (*JWTIssuer, error) {
	if secret == "" {
		return nil, &ConfigError{Message: "token secret is empty; provide ≥32 random chars"}
	}
	if ttl <= 0 {
		return nil, &ConfigError{Message: "token ttl must be positive"}
	}

	isWeak := len(secret) < minSecretLen || isDefaultKey(secret)
	if isWeak {
		if strict {
			return nil, &ConfigError{Message: "token secret is too weak for production; provide ≥32 random chars"}
		}
		logger.Warn("token secret is weak; 32+ random chars required in production",
			zap.Int("length", len(secret)),
			zap.Bool("is_default", isDefaultKey(secret)))
	}

	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "stratahr",
		now:    time.Now,
	}, nil
}

// Issue implements Issuer.
func (j *JWTIssuer) Issue(userID string) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	})
	return token.SignedString(j.secret)
}

// isDefaultKey checks if the secret appears to be a default/placeholder value.
func isDefaultKey(key string) bool {
	lower := strings.ToLower(key)
	patterns := []string{
		"dev-only",
		"change-me",
		"placeholder",
		"default",
		"example",
		"insecure",
		"test-key",
		"secret123",
		"password",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
