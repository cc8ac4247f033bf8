package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-contacts-api/internal/application/auth"
	"github.com/go-contacts-api/internal/domain"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (*auth.TokenPair, error) {
	args := m.Called(ctx, req)
	if p, _ := args.Get(0).(*auth.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if p, _ := args.Get(0).(*auth.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// --- Register ---

func TestRegister_Created(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, domain.RegisterRequest{Email: "a@b.com", Password: "password1"}).
		Return(&domain.User{ID: 1, Email: "a@b.com"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/register/",
		jsonBody(t, map[string]string{"email": "a@b.com", "password": "password1"}))
	rec := httptest.NewRecorder()
	NewAuthHandler(svc).Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var view UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "a@b.com", view.Email)
	assert.False(t, view.IsVerified)
}

func TestRegister_DuplicateEmail_Conflict(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrConflict)

	req := httptest.NewRequest(http.MethodPost, "/register/",
		jsonBody(t, map[string]string{"email": "a@b.com", "password": "password1"}))
	rec := httptest.NewRecorder()
	NewAuthHandler(svc).Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/register/", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	NewAuthHandler(&mockAuthSvc{}).Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ValidationFailure(t *testing.T) {
	svc := &mockAuthSvc{}
	req := httptest.NewRequest(http.MethodPost, "/register/",
		jsonBody(t, map[string]string{"email": "not-an-email", "password": "short"}))
	rec := httptest.NewRecorder()
	NewAuthHandler(svc).Register(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

// --- Login ---

func TestLogin_ReturnsTokenPair(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, domain.LoginRequest{Email: "a@b.com", Password: "password1"}).
		Return(&auth.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login/",
		jsonBody(t, map[string]string{"email": "a@b.com", "password": "password1"}))
	rec := httptest.NewRecorder()
	NewAuthHandler(svc).Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var env TokenEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "acc", env.AccessToken)
	assert.Equal(t, "ref", env.RefreshToken)
	assert.Equal(t, "bearer", env.TokenType)
}

func TestLogin_BadCredentials_Unauthorized(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)

	req := httptest.NewRequest(http.MethodPost, "/login/",
		jsonBody(t, map[string]string{"email": "a@b.com", "password": "wrongpass"}))
	rec := httptest.NewRecorder()
	NewAuthHandler(svc).Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// --- Refresh ---

func TestRefresh_ReturnsNewPair(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Refresh", mock.Anything, "old-refresh").
		Return(&auth.TokenPair{AccessToken: "new-acc", RefreshToken: "new-ref"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/token/refresh/",
		jsonBody(t, map[string]string{"refresh_token": "old-refresh"}))
	rec := httptest.NewRecorder()
	NewAuthHandler(svc).Refresh(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var env TokenEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "new-acc", env.AccessToken)
}

func TestRefresh_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/token/refresh/",
		jsonBody(t, map[string]string{}))
	rec := httptest.NewRecorder()
	NewAuthHandler(&mockAuthSvc{}).Refresh(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// --- VerifyEmail ---

func TestVerifyEmail_Success(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyEmail", mock.Anything, "tok123").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/verify-email/?token=tok123", nil)
	rec := httptest.NewRecorder()
	NewAuthHandler(svc).VerifyEmail(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg": "Email verified successfully"}`, rec.Body.String())
}

func TestVerifyEmail_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/verify-email/", nil)
	rec := httptest.NewRecorder()
	NewAuthHandler(&mockAuthSvc{}).VerifyEmail(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyEmail", mock.Anything, "bad").Return(domain.ErrBadRequest)

	req := httptest.NewRequest(http.MethodGet, "/verify-email/?token=bad", nil)
	rec := httptest.NewRecorder()
	NewAuthHandler(svc).VerifyEmail(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
