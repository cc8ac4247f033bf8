package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/go-contacts-api/internal/domain"
)

const birthdayLayout = "2006-01-02"

// Column names accepted by the store's partial update.
const (
	fieldFirstName      = "first_name"
	fieldLastName       = "last_name"
	fieldEmail          = "email"
	fieldPhone          = "phone"
	fieldBirthday       = "birthday"
	fieldAdditionalInfo = "additional_info"
)

type Service interface {
	Create(ctx context.Context, ownerID int64, req domain.CreateContactRequest) (*domain.Contact, error)
	Get(ctx context.Context, contactID, ownerID int64) (*domain.Contact, error)
	List(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Contact, int, error)
	Update(ctx context.Context, contactID, ownerID int64, req domain.UpdateContactRequest) (*domain.Contact, error)
	Delete(ctx context.Context, contactID, ownerID int64) error
}

type contactStore interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Get(ctx context.Context, contactID, ownerID int64) (*domain.Contact, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Contact, int, error)
	Update(ctx context.Context, contactID, ownerID int64, updates map[string]interface{}) (*domain.Contact, error)
	Delete(ctx context.Context, contactID, ownerID int64) error
}

type service struct {
	repo contactStore
}

func NewService(repo contactStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID int64, req domain.CreateContactRequest) (*domain.Contact, error) {
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &domain.Contact{
		OwnerID:        ownerID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Birthday:       birthday,
		AdditionalInfo: req.AdditionalInfo,
	})
}

func (s *service) Get(ctx context.Context, contactID, ownerID int64) (*domain.Contact, error) {
	return s.repo.Get(ctx, contactID, ownerID)
}

func (s *service) List(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Contact, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Update applies the non-nil fields of req. An empty request is a no-op that
// returns the current contact.
func (s *service) Update(ctx context.Context, contactID, ownerID int64, req domain.UpdateContactRequest) (*domain.Contact, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates[fieldFirstName] = *req.FirstName
	}
	if req.LastName != nil {
		updates[fieldLastName] = *req.LastName
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Birthday != nil {
		birthday, err := parseBirthday(*req.Birthday)
		if err != nil {
			return nil, err
		}
		updates[fieldBirthday] = birthday
	}
	if req.AdditionalInfo != nil {
		updates[fieldAdditionalInfo] = *req.AdditionalInfo
	}

	if len(updates) == 0 {
		return s.repo.Get(ctx, contactID, ownerID)
	}
	return s.repo.Update(ctx, contactID, ownerID, updates)
}

func (s *service) Delete(ctx context.Context, contactID, ownerID int64) error {
	return s.repo.Delete(ctx, contactID, ownerID)
}

func parseBirthday(value string) (time.Time, error) {
	t, err := time.Parse(birthdayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("birthday must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}
	return t, nil
}
