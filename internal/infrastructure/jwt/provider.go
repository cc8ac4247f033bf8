package jwtinfra

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/go-contacts-api/internal/config"
	"github.com/go-contacts-api/internal/pkg/id"
)

// Token scopes. Access and refresh tokens authenticate API calls; the
// verification scope is only valid for the email-confirmation link.
const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
	ScopeVerify  = "verify"
)

// Claims holds the JWT payload. Subject is the user email; ID is a unique
// token identifier used for single-use enforcement.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a server-held secret.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	verifyTTL  time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &Provider{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		verifyTTL:  cfg.VerifyTokenTTL,
	}, nil
}

// Access issues a short-lived bearer token for the given user email.
func (p *Provider) Access(email string) (string, error) {
	return p.sign(email, ScopeAccess, p.accessTTL)
}

// Refresh issues a longer-lived token used only to obtain new token pairs.
func (p *Provider) Refresh(email string) (string, error) {
	return p.sign(email, ScopeRefresh, p.refreshTTL)
}

// Verification issues the single-use email-confirmation link token.
func (p *Provider) Verification(email string) (string, error) {
	return p.sign(email, ScopeVerify, p.verifyTTL)
}

func (p *Provider) sign(email, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        id.New(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks signature, expiry, and that the token carries the expected
// scope. Returns the claims on success.
func (p *Provider) Verify(tokenStr, scope string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Scope != scope {
		return nil, errors.New("token scope mismatch")
	}
	return claims, nil
}
