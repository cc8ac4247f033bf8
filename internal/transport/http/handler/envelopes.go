package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-contacts-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TokenEnvelope wraps login and refresh responses.
type TokenEnvelope struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserView is the public shape of a user.
type UserView struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	IsVerified bool    `json:"is_verified"`
	AvatarURL  *string `json:"avatar_url"`
}

// ContactView is the public shape of a contact; the birthday is rendered as a
// plain date.
type ContactView struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Birthday       string  `json:"birthday"`
	AdditionalInfo *string `json:"additional_info,omitempty"`
}

// PaginatedContactsEnvelope wraps paginated contact list responses.
type PaginatedContactsEnvelope struct {
	MaxPage    int           `json:"max_page"`
	ActualPage int           `json:"actual_page"`
	PerPage    int           `json:"per_page"`
	Data       []ContactView `json:"data"`
}

func toUserView(u *domain.User) *UserView {
	return &UserView{ID: u.ID, Email: u.Email, IsVerified: u.IsVerified, AvatarURL: u.AvatarURL}
}

func toContactView(c *domain.Contact) *ContactView {
	return &ContactView{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Birthday:       c.Birthday.Format("2006-01-02"),
		AdditionalInfo: c.AdditionalInfo,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeDomainError maps the domain sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
