package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultTTL is the validity window of an issued token. Expiry is the only
// termination mechanism: there is no server-side revocation list, so a
// stolen token stays usable until this window closes.
const defaultTTL = time.Hour

// Sentinel errors returned by Validate. Callers distinguish an expired
// token (re-login fixes it) from a malformed or tampered one.
var (
	ErrTokenExpired = errors.New("auth: token expired")
	ErrTokenInvalid = errors.New("auth: invalid token")
)

// TokenService issues and validates signed, time-bound identity assertions.
//
// It holds the HMAC secret used for both signing and verification. The
// secret is injected at construction and read-only afterwards; the service
// keeps no other state, so issuance and validation are safe to call from
// any number of concurrent requests.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret and the
// default one-hour validity window. The secret should be at least 32 bytes
// of random data in production; anything under 16 is rejected outright.
func NewTokenService(secret string) (*TokenService, error) {
	return NewTokenServiceWithTTL(secret, defaultTTL)
}

// NewTokenServiceWithTTL creates a TokenService with a custom validity
// window, for deployments that want shorter- or longer-lived sessions.
func NewTokenServiceWithTTL(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload. The user's internal ID travels in the
// standard "sub" (Subject) claim.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a token asserting the given userID until the
// service's validity window elapses. Stateless: nothing is persisted.
func (s *TokenService) Issue(userID string) (string, error) {
	return s.IssueWithDuration(userID, s.ttl)
}

// IssueWithDuration creates a token with a custom expiry. Used by tests to
// mint already-expired tokens without sleeping through the real window.
func (s *TokenService) IssueWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    "bloglist",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the userID it
// asserts. Nothing from the payload is trusted until the signature checks
// out: the signing method is pinned to HS256 and the issuer must match, so
// an attacker cannot downgrade the algorithm or replay a token minted by
// another application sharing the library.
//
// Returns ErrTokenExpired when the clock has passed the embedded expiry and
// ErrTokenInvalid for every other failure (bad signature, wrong structure,
// missing subject).
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer("bloglist"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	userID := c.Subject
	if userID == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrTokenInvalid)
	}

	return userID, nil
}
