package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain model for an account. The JSON field names follow the
// original front end's wire contract, including the Mongo-style "_id".
type User struct {
	ID            uuid.UUID `json:"_id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	PasswordHash  string    `json:"-"` // Never expose password hash in JSON
	ProfilePicURL string    `json:"profilePic"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"-"`
}
