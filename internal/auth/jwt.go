// Package auth provides JWT token handling, password hashing, and the
// middleware that turns a bearer token into an authenticated actor.
//
// The flow:
//  1. POST /api/auth/register or /login verifies credentials and issues a JWT
//  2. The client sends it back as "Authorization: Bearer <token>"
//  3. RequireAuth validates the token and puts the actor (userID + role)
//     in the request context
//  4. Handlers read the actor and pass it to the services, which never
//     touch credentials themselves
//
// The token is stateless: userID lives in the standard "sub" claim and the
// role in a custom "role" claim, both covered by the HMAC signature. The
// role is baked in at issue time; roles are immutable after registration,
// so a token can never outlive its role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/policy"
)

const issuer = "intern-match"

// TokenService handles JWT creation and validation. It holds the HMAC
// secret used to sign and verify tokens; the same secret for both.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: standard registered claims (Subject carries
// the user ID) plus the account role.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generate creates and signs a 24-hour access token for the given actor.
func (s *TokenService) Generate(userID string, role model.Role) (string, error) {
	return s.GenerateWithDuration(userID, role, 24*time.Hour)
}

// GenerateWithDuration creates a token with a custom expiry. Used by tests
// to produce already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID string, role model.Role, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the actor it
// encodes. The library checks signature, expiry, and issuer; restricting
// valid methods to HS256 prevents algorithm-confusion attacks.
func (s *TokenService) Validate(tokenStr string) (policy.Actor, error) {
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
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return policy.Actor{}, fmt.Errorf("auth: token expired")
		}
		return policy.Actor{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return policy.Actor{}, fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject == "" {
		return policy.Actor{}, fmt.Errorf("auth: token has no subject")
	}

	role := model.Role(c.Role)
	if !role.Valid() {
		return policy.Actor{}, fmt.Errorf("auth: token has unknown role %q", c.Role)
	}

	return policy.Actor{UserID: c.Subject, Role: role}, nil
}
