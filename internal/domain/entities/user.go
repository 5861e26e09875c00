package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user in the system. Accounts are
// provisioned automatically on the first request carrying a valid token
// from the identity provider.
type User struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AuthUID string    `json:"-" gorm:"column:auth_uid;type:varchar(128);uniqueIndex;not null"`
	Email   string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name    string    `json:"name" gorm:"type:varchar(255)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewUser creates a new user from identity-provider claims
func NewUser(authUID, email, name string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		AuthUID:   authUID,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates user data
func (u *User) Validate() error {
	if u.AuthUID == "" {
		return ErrInvalidAuthUID
	}
	if u.Email == "" {
		return ErrInvalidEmail
	}
	return nil
}
