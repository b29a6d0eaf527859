package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/models"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

const sessionKeyPrefix = "console:session:"

// RedisSessionStore keeps console sessions in Redis as JSON with a TTL.
type RedisSessionStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSessionStore constructs a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, logger *zap.Logger) *RedisSessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionStore{client: client, logger: logger}
}

// Get loads a session. A missing key yields appErrors.ErrSessionMiss.
func (r *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrSessionMiss
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		r.logger.Warn("discarding unreadable session", zap.Error(err))
		_ = r.client.Del(ctx, sessionKeyPrefix+id).Err()
		return nil, appErrors.ErrSessionMiss
	}
	return &session, nil
}

// Set stores the session for ttl.
func (r *RedisSessionStore) Set(ctx context.Context, session *models.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Ping reports whether Redis answers.
func (r *RedisSessionStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}

type memoryEntry struct {
	session   models.Session
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory. Suitable for a single instance.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionStore constructs an in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get loads a session, evicting it when expired.
func (m *MemorySessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, appErrors.ErrSessionMiss
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, id)
		return nil, appErrors.ErrSessionMiss
	}
	session := entry.session
	if entry.session.Flash != nil {
		flash := *entry.session.Flash
		session.Flash = &flash
	}
	return &session, nil
}

// Set stores a copy of the session for ttl.
func (m *MemorySessionStore) Set(_ context.Context, session *models.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *session
	if session.Flash != nil {
		flash := *session.Flash
		stored.Flash = &flash
	}
	m.entries[session.ID] = memoryEntry{session: stored, expiresAt: m.now().Add(ttl)}
	m.sweepLocked()
	return nil
}

// Delete removes a session.
func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Ping always succeeds.
func (m *MemorySessionStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *MemorySessionStore) Close() error { return nil }

func (m *MemorySessionStore) sweepLocked() {
	now := m.now()
	for id, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, id)
		}
	}
}
