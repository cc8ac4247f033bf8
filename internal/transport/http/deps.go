package http

import (
	"context"
	"io"
	"time"

	"github.com/go-contacts-api/internal/domain"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkVerified(ctx context.Context, email string) (*domain.User, error)
	SetAvatar(ctx context.Context, userID int64, url string) error
}

// ContactRepository is the minimal interface the router requires from a contact store.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Get(ctx context.Context, contactID, ownerID int64) (*domain.Contact, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Contact, int, error)
	Update(ctx context.Context, contactID, ownerID int64, updates map[string]interface{}) (*domain.Contact, error)
	Delete(ctx context.Context, contactID, ownerID int64) error
}

// ConsumedTokenStore is the minimal interface the router requires for
// single-use token tracking.
type ConsumedTokenStore interface {
	Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}
