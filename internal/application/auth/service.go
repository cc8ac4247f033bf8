package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-contacts-api/internal/application/outbox"
	"github.com/go-contacts-api/internal/domain"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
	"github.com/go-contacts-api/internal/pkg/password"
)

// TokenPair is an access/refresh token pair issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	VerifyEmail(ctx context.Context, token string) error
}

type userStore interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkVerified(ctx context.Context, email string) (*domain.User, error)
}

type tokenProvider interface {
	Access(email string) (string, error)
	Refresh(email string) (string, error)
	Verification(email string) (string, error)
	Verify(tokenStr, scope string) (*jwtinfra.Claims, error)
}

type consumedTokenStore interface {
	Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

type mailQueue interface {
	Enqueue(msg outbox.Message)
}

type service struct {
	repo          userStore
	tokens        tokenProvider
	consumed      consumedTokenStore
	mail          mailQueue
	publicBaseURL string
}

type ServiceDeps struct {
	UserRepo      userStore
	Tokens        tokenProvider
	Consumed      consumedTokenStore
	Mail          mailQueue
	PublicBaseURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:          deps.UserRepo,
		tokens:        deps.Tokens,
		consumed:      deps.Consumed,
		mail:          deps.Mail,
		publicBaseURL: deps.PublicBaseURL,
	}
}

// Register creates an unverified user and queues the verification email.
// Uniqueness is enforced by the store's single atomic insert; there is no
// check-then-insert read.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, req.Email, hash)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Verification(u.Email)
	if err != nil {
		// The account exists either way; the user can ask for a fresh link.
		slog.Warn("could not issue verification token", "email", u.Email, "err", err)
		return u, nil
	}
	s.mail.Enqueue(outbox.Message{
		To:      u.Email,
		Subject: "Verify your email",
		Body:    verificationBody(s.publicBaseURL, token),
	})
	return u, nil
}

// Login exchanges credentials for a token pair. A missing user and a wrong
// password produce the same error so callers cannot enumerate accounts.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*TokenPair, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.issuePair(u.Email)
}

// Refresh rotates a refresh token: the presented token's jti is consumed so a
// replay after rotation is rejected.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, jwtinfra.ScopeRefresh)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	ok, err := s.consumed.Consume(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("refresh token already used: %w", domain.ErrUnauthorized)
	}
	if _, err := s.repo.GetByEmail(ctx, claims.Subject); err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	return s.issuePair(claims.Subject)
}

// VerifyEmail redeems a single-use verification token and marks the subject
// user verified. Invalid, expired, reused, and unknown-subject tokens all
// surface as bad requests.
func (s *service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token, jwtinfra.ScopeVerify)
	if err != nil {
		return fmt.Errorf("invalid token: %w", domain.ErrBadRequest)
	}
	ok, err := s.consumed.Consume(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("token already used: %w", domain.ErrBadRequest)
	}
	if _, err := s.repo.MarkVerified(ctx, claims.Subject); err != nil {
		return fmt.Errorf("invalid token: %w", domain.ErrBadRequest)
	}
	return nil
}

func (s *service) issuePair(email string) (*TokenPair, error) {
	access, err := s.tokens.Access(email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Refresh(email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func verificationBody(baseURL, token string) string {
	link := fmt.Sprintf("%s/verify-email/?token=%s", baseURL, url.QueryEscape(token))
	return fmt.Sprintf(`<p>Please verify your email by clicking this link: <a href="%s">%s</a></p>`, link, link)
}
