package jwtinfra

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/carzilla/auth-api/internal/config"
	"github.com/carzilla/auth-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields. Name is only populated on access
// tokens; refresh tokens assert identity alone.
type Claims struct {
	UserID string  `json:"user_id"`
	Email  string  `json:"email"`
	Name   *string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Provider signs and verifies RS256 JWTs. Tokens are self-contained: the
// server never stores sessions, it trusts the signature and embedded expiry.
type Provider struct {
	privateKey    *rsa.PrivateKey
	publicKey     *rsa.PublicKey
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewProvider loads the RS256 key pair. A missing or unparsable key is a
// fatal configuration error; callers should refuse to start without one.
func NewProvider(cfg *config.Config) (*Provider, error) {
	privBytes, err := os.ReadFile(cfg.JWTPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubBytes, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &Provider{
		privateKey:    privKey,
		publicKey:     pubKey,
		accessExpiry:  time.Duration(cfg.JWTExpiryDays) * 24 * time.Hour,
		refreshExpiry: time.Duration(cfg.RefreshTokenExpiryDays) * 24 * time.Hour,
	}, nil
}

// AccessExpiry is the validity window of access tokens.
func (p *Provider) AccessExpiry() time.Duration { return p.accessExpiry }

// SignAccess mints the short-lived access token asserting id, email and name.
func (p *Provider) SignAccess(u *domain.User) (string, error) {
	return p.sign(Claims{
		UserID: u.UserID,
		Email:  u.Email,
		Name:   u.Name,
	}, p.accessExpiry)
}

// SignRefresh mints the longer-lived refresh token asserting identity only.
func (p *Provider) SignRefresh(u *domain.User) (string, error) {
	return p.sign(Claims{
		UserID: u.UserID,
		Email:  u.Email,
	}, p.refreshExpiry)
}

func (p *Provider) sign(claims Claims, expiry time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(p.privateKey)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.publicKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
