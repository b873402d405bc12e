// AngelaMos | 2026
// fakes_test.go

package auth_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/auth"
	"github.com/fitsyy/gym-backend/internal/config"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/mailer"
)

type fakeRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]*auth.RefreshToken
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: make(map[string]*auth.RefreshToken)}
}

func (r *fakeRefreshRepo) Create(_ context.Context, t *auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.CreatedAt = time.Now()
	cp := *t
	r.tokens[t.ID] = &cp
	return nil
}

func (r *fakeRefreshRepo) FindByHash(_ context.Context, hash string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("find refresh token: %w", core.ErrNotFound)
}

func (r *fakeRefreshRepo) FindByID(_ context.Context, id string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return nil, fmt.Errorf("find refresh token: %w", core.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRefreshRepo) MarkAsUsed(_ context.Context, id, replacedByID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.IsUsed {
		return fmt.Errorf("mark refresh token as used: %w", core.ErrNotFound)
	}
	now := time.Now()
	t.IsUsed = true
	t.UsedAt = &now
	t.ReplacedByID = &replacedByID
	return nil
}

func (r *fakeRefreshRepo) RevokeByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.RevokedAt != nil {
		return fmt.Errorf("revoke refresh token: %w", core.ErrNotFound)
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (r *fakeRefreshRepo) RevokeByFamilyID(_ context.Context, familyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, t := range r.tokens {
		if t.FamilyID == familyID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshRepo) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshRepo) GetActiveSessionsForUser(_ context.Context, userID string) ([]auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []auth.RefreshToken
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsValid() {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeRefreshRepo) DeleteExpired(_ context.Context, grace time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-grace)
	var n int64
	for id, t := range r.tokens {
		if t.ExpiresAt.Before(cutoff) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*auth.UserInfo
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*auth.UserInfo)}
}

func (u *fakeUsers) GetByID(_ context.Context, id string) (*auth.UserInfo, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *user
	return &cp, nil
}

func (u *fakeUsers) FindOrCreateByEmail(_ context.Context, email string) (*auth.UserInfo, bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.users {
		if user.Email == email {
			cp := *user
			return &cp, false, nil
		}
	}
	user := &auth.UserInfo{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      strings.Split(email, "@")[0],
		CreatedAt: time.Now(),
	}
	u.users[user.ID] = user
	cp := *user
	return &cp, true, nil
}

func (u *fakeUsers) IncrementTokenVersion(_ context.Context, userID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.users[userID]
	if !ok {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	user.TokenVersion++
	return nil
}

type memTokenStore struct {
	mu        sync.Mutex
	links     map[string]string
	blacklist map[string]time.Time
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{
		links:     make(map[string]string),
		blacklist: make(map[string]time.Time),
	}
}

func (s *memTokenStore) SaveMagicLink(_ context.Context, hash, email string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[hash] = email
	return nil
}

func (s *memTokenStore) ConsumeMagicLink(_ context.Context, hash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.links[hash]
	if !ok {
		return "", fmt.Errorf("consume magic link: %w", core.ErrTokenInvalid)
	}
	delete(s.links, hash)
	return email, nil
}

func (s *memTokenStore) Blacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[jti] = time.Now().Add(ttl)
	return nil
}

func (s *memTokenStore) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blacklist[jti]
	return ok, nil
}

type fixture struct {
	svc      *auth.Service
	jwt      *auth.JWTManager
	verifier *auth.Verifier
	repo     *fakeRefreshRepo
	users    *fakeUsers
	tokens   *memTokenStore
	mail     *mailer.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	jwtManager, err := auth.NewJWTManagerFromKey(config.JWTConfig{
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 24 * time.Hour,
		Issuer:             "fitsyy",
		Audience:           "fitsyy-api",
	}, key)
	require.NoError(t, err)

	f := &fixture{
		jwt:    jwtManager,
		repo:   newFakeRefreshRepo(),
		users:  newFakeUsers(),
		tokens: newMemTokenStore(),
		mail:   &mailer.Recorder{},
	}
	f.svc = auth.NewService(f.repo, jwtManager, f.users, f.tokens, f.mail, auth.ServiceConfig{
		MagicLinkTTL:  15 * time.Minute,
		PublicURL:     "https://app.fitsyy.test",
		MagicLinkPath: "/auth/callback",
	})
	f.verifier = auth.NewVerifier(jwtManager, f.svc)

	return f
}
