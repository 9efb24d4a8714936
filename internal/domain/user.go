package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identity. The password is stored only as a bcrypt hash.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
