package avatar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/id"
)

// UploadInput carries one uploaded file.
type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type Service interface {
	Upload(ctx context.Context, user *domain.User, in UploadInput) (string, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

type userStore interface {
	SetAvatar(ctx context.Context, userID int64, url string) error
}

type service struct {
	store objectStore
	repo  userStore
}

type ServiceDeps struct {
	Store    objectStore
	UserRepo userStore
}

func NewService(deps ServiceDeps) Service {
	return &service{store: deps.Store, repo: deps.UserRepo}
}

// Upload stores the file, points the user's avatar URL at it, and removes the
// previously stored object once the new one is in place.
func (s *service) Upload(ctx context.Context, user *domain.User, in UploadInput) (string, error) {
	if !strings.HasPrefix(in.ContentType, "image/") {
		return "", fmt.Errorf("avatar must be an image, got %q: %w", in.ContentType, domain.ErrBadRequest)
	}

	key := avatarKey(user.ID, in.Filename)
	url, err := s.store.Upload(ctx, key, in.Reader, in.ContentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetAvatar(ctx, user.ID, url); err != nil {
		// The user row is gone or unreachable; don't leave the object behind.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			slog.Warn("could not clean up orphaned avatar object", "key", key, "err", delErr)
		}
		return "", err
	}

	if user.AvatarURL != nil && *user.AvatarURL != url {
		if oldKey, ok := s.store.KeyFromURL(*user.AvatarURL); ok {
			if err := s.store.Delete(ctx, oldKey); err != nil {
				slog.Warn("could not delete previous avatar object", "key", oldKey, "err", err)
			}
		}
	}

	return url, nil
}

func avatarKey(userID int64, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("avatars/%d/%s%s", userID, id.New(), ext)
}
