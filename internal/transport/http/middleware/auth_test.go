package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-contacts-api/internal/config"
	"github.com/go-contacts-api/internal/domain"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
)

type stubUserLoader struct {
	users map[string]*domain.User
}

func (s *stubUserLoader) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func testProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		VerifyTokenTTL:  time.Minute,
	})
	require.NoError(t, err)
	return p
}

func authTestHandler(t *testing.T, provider *jwtinfra.Provider, users userLoader) http.Handler {
	t.Helper()
	return Auth(provider, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(u.Email))
	}))
}

func TestAuth_ValidToken(t *testing.T) {
	provider := testProvider(t)
	loader := &stubUserLoader{users: map[string]*domain.User{
		"a@b.com": {ID: 1, Email: "a@b.com"},
	}}

	token, err := provider.Access("a@b.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	authTestHandler(t, provider, loader).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.com", rec.Body.String())
}

func TestAuth_MissingHeader(t *testing.T) {
	provider := testProvider(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	authTestHandler(t, provider, &stubUserLoader{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	provider := testProvider(t)
	loader := &stubUserLoader{users: map[string]*domain.User{
		"a@b.com": {ID: 1, Email: "a@b.com"},
	}}

	token, err := provider.Refresh("a@b.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	authTestHandler(t, provider, loader).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_SubjectGone(t *testing.T) {
	provider := testProvider(t)

	token, err := provider.Access("deleted@b.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	authTestHandler(t, provider, &stubUserLoader{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_GarbageToken(t *testing.T) {
	provider := testProvider(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	authTestHandler(t, provider, &stubUserLoader{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
