package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/aguayodev/charla-api/internal/logging"
	"github.com/aguayodev/charla-api/internal/user"
)

var (
	ErrMissingFields      = errors.New("full name, email and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProfilePicRequired = errors.New("profile picture payload is required")
)

const minPasswordLen = 8

// Argon2id parameters - tuned for security vs performance balance
// Time: 3, Memory: 64MB, Threads: 4, KeyLen: 32 bytes
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// Service handles authentication business logic. All collaborators are
// injected; the service holds no ambient state of its own.
type Service struct {
	store           UserStore
	uploader        Uploader
	tokens          TokenService
	logger          *logging.Logger
	sessionDuration time.Duration
}

func NewService(
	store UserStore,
	uploader Uploader,
	tokens TokenService,
	logger *logging.Logger,
	sessionDuration time.Duration,
) *Service {
	return &Service{
		store:           store,
		uploader:        uploader,
		tokens:          tokens,
		logger:          logger,
		sessionDuration: sessionDuration,
	}
}

// Signup validates the registration input, hashes the password and creates
// the account. Email uniqueness is left to the store's atomic insert; a
// duplicate surfaces as user.ErrDuplicateEmail.
func (s *Service) Signup(ctx context.Context, fullName, email, password string) (*user.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalizeEmail(email)

	if fullName == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(email) > 254 {
		return nil, ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmailFormat
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.store.Create(ctx, fullName, email, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login authenticates a user by email and password. Unknown email and wrong
// password both return ErrInvalidCredentials so callers cannot probe which
// accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, error) {
	email = normalizeEmail(email)

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.verifyPassword(existing.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return existing, nil
}

// IssueSession creates the self-contained session token for a user.
func (s *Service) IssueSession(userID uuid.UUID, email string) (string, error) {
	token, err := s.tokens.CreateToken(userID, email, s.sessionDuration)
	if err != nil {
		return "", fmt.Errorf("failed to create session token: %w", err)
	}
	return token, nil
}

// SessionDuration returns the configured session lifetime, which is also
// the cookie max-age.
func (s *Service) SessionDuration() time.Duration {
	return s.sessionDuration
}

// GetUser loads a user by id for the check-auth probe.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateProfilePic forwards the image payload to the external uploader and
// records the hosted URL on the user. Upload faults are terminal for the
// request; nothing is retried.
func (s *Service) UpdateProfilePic(ctx context.Context, userID uuid.UUID, payload string) (*user.User, error) {
	if payload == "" {
		return nil, ErrProfilePicRequired
	}

	url, err := s.uploader.Upload(ctx, userID, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	updated, err := s.store.UpdateProfilePic(ctx, userID, url)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile picture url: %w", err)
	}

	return updated, nil
}

// normalizeEmail lowercases and trims an address; the store's unique index
// is on the normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword creates an argon2id hash of the password
func (s *Service) hashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		argon2Time,
		argon2Memory,
		argon2Threads,
		argon2KeyLen,
	)

	// Encode as: $argon2id$v=19$m=65536,t=3,p=4$salt$hash
	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		encodedSalt,
		encodedHash,
	), nil
}

// verifyPassword checks if a password matches the stored hash
func (s *Service) verifyPassword(encodedHash, password string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	var memory, time uint32
	var threads uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads)
	if err != nil {
		return false
	}
	_, err = fmt.Sscanf(parts[2], "v=%d", &version)
	if err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	inputHash := argon2.IDKey(
		[]byte(password),
		salt,
		time,
		memory,
		threads,
		uint32(len(decodedHash)),
	)

	// Compare hashes using constant-time comparison
	return subtle.ConstantTimeCompare(decodedHash, inputHash) == 1
}
