package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aguayodev/charla-api/internal/user"
)

// TokenService defines the interface for session token creation and
// validation. The production implementation is PasetoService (v4.local).
type TokenService interface {
	CreateToken(userID uuid.UUID, email string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore is the credential store consumed by the auth service. The
// production implementation is user.Repository on Postgres.
type UserStore interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfilePic(ctx context.Context, userID uuid.UUID, url string) (*user.User, error)
}

// Uploader forwards a client-supplied image payload to the external hosting
// service and returns the hosted URL.
type Uploader interface {
	Upload(ctx context.Context, userID uuid.UUID, dataURL string) (string, error)
}

// RateLimiter gates the credential endpoints by client IP.
type RateLimiter interface {
	Allow(ctx context.Context, ip, purpose string) (bool, error)
	Record(ctx context.Context, ip, purpose string) error
}
