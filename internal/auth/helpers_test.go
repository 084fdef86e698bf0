package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aguayodev/charla-api/internal/i18n"
	"github.com/aguayodev/charla-api/internal/logging"
	"github.com/aguayodev/charla-api/internal/user"
)

var testTokenKey = []byte("0123456789abcdef0123456789abcdef")

// memoryStore is an in-memory UserStore for tests. Email uniqueness is
// enforced on insert, mirroring the database's unique index.
type memoryStore struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
}

func (s *memoryStore) Create(ctx context.Context, fullName, email, passwordHash string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, user.ErrDuplicateEmail
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.byEmail[email] = u
	s.byID[u.ID] = u
	return u, nil
}

func (s *memoryStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *memoryStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *memoryStore) UpdateProfilePic(ctx context.Context, userID uuid.UUID, url string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.ProfilePicURL = url
	u.UpdatedAt = time.Now()
	return u, nil
}

// stubUploader returns a fixed URL or a fixed error.
type stubUploader struct {
	url string
	err error
}

func (u *stubUploader) Upload(ctx context.Context, userID uuid.UUID, dataURL string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

// allowAllLimiter never limits.
type allowAllLimiter struct{}

func (allowAllLimiter) Allow(ctx context.Context, ip, purpose string) (bool, error) { return true, nil }
func (allowAllLimiter) Record(ctx context.Context, ip, purpose string) error        { return nil }

// denyAllLimiter always limits.
type denyAllLimiter struct{}

func (denyAllLimiter) Allow(ctx context.Context, ip, purpose string) (bool, error) { return false, nil }
func (denyAllLimiter) Record(ctx context.Context, ip, purpose string) error        { return nil }

// brokenLimiter fails; handlers must treat that as allowed.
type brokenLimiter struct{}

func (brokenLimiter) Allow(ctx context.Context, ip, purpose string) (bool, error) {
	return false, errors.New("redis down")
}
func (brokenLimiter) Record(ctx context.Context, ip, purpose string) error {
	return errors.New("redis down")
}

func newTestService(store UserStore, uploader Uploader) (*Service, *PasetoService) {
	tokens, err := NewPasetoService(testTokenKey)
	if err != nil {
		panic(err)
	}
	logger := logging.NewLogger(true)
	return NewService(store, uploader, tokens, logger, time.Hour), tokens
}

func newTestHandler(store UserStore, uploader Uploader, limiter RateLimiter) (*Handler, *Middleware) {
	service, tokens := newTestService(store, uploader)
	logger := logging.NewLogger(true)
	handler := NewHandler(service, limiter, i18n.NewCatalog("es"), logger, false)
	return handler, NewMiddleware(tokens)
}
