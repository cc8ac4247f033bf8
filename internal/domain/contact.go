package domain

import "time"

type Contact struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Birthday       time.Time `json:"-"`
	AdditionalInfo *string   `json:"additional_info,omitempty"`
	CreatedAt      time.Time `json:"created"`
	UpdatedAt      time.Time `json:"updated"`
}

type CreateContactRequest struct {
	FirstName      string  `json:"first_name" validate:"required"`
	LastName       string  `json:"last_name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required"`
	Birthday       string  `json:"birthday" validate:"required"` // expected format: YYYY-MM-DD
	AdditionalInfo *string `json:"additional_info"`
}

type UpdateContactRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone"`
	Birthday       *string `json:"birthday"` // expected format: YYYY-MM-DD
	AdditionalInfo *string `json:"additional_info"`
}
