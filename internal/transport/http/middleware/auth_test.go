package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/carzilla/auth-api/internal/config"
	"github.com/carzilla/auth-api/internal/domain"
	jwtinfra "github.com/carzilla/auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private_key.pem")
	pubPath := filepath.Join(dir, "public_key.pem")
	require.NoError(t, os.WriteFile(privPath, pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), 0o600))
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(pubPath, pem.EncodeToMemory(&pem.Block{
		Type: "PUBLIC KEY", Bytes: pubBytes,
	}), 0o600))

	p, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath:      privPath,
		JWTPublicKeyPath:       pubPath,
		JWTExpiryDays:          7,
		RefreshTokenExpiryDays: 30,
	})
	require.NoError(t, err)
	return p
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(claims.UserID))
	})
}

func TestAuth_MissingTokenIs401(t *testing.T) {
	p := testProvider(t)
	h := Auth(p)(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access token required")
}

func TestAuth_InvalidTokenIs403(t *testing.T) {
	p := testProvider(t)
	h := Auth(p)(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	p := testProvider(t)
	h := Auth(p)(protectedEcho(t))

	token, err := p.SignAccess(&domain.User{UserID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}
