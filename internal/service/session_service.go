package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/models"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

// SessionStore persists console sessions.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Set(ctx context.Context, session *models.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type sessionMetrics interface {
	RecordSessionLookup(result string)
}

// SessionService manages the lifecycle of operator sessions: created at login, read once per
// request, destroyed at logout or when the token expires.
type SessionService struct {
	store   SessionStore
	maxTTL  time.Duration
	metrics sessionMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(store SessionStore, maxTTL time.Duration, metrics sessionMetrics, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxTTL <= 0 {
		maxTTL = 8 * time.Hour
	}
	return &SessionService{store: store, maxTTL: maxTTL, metrics: metrics, logger: logger, now: time.Now}
}

// Create stores a new session for token. The session lives until the token expires,
// capped by the configured maximum.
func (s *SessionService) Create(ctx context.Context, token, username string, tokenExpiry time.Time) (*models.Session, error) {
	now := s.now()
	expiresAt := now.Add(s.maxTTL)
	if !tokenExpiry.IsZero() && tokenExpiry.Before(expiresAt) {
		expiresAt = tokenExpiry
	}
	if !expiresAt.After(now) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "La sesión ha expirado")
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Username:  username,
		ExpiresAt: expiresAt,
	}
	if err := s.store.Set(ctx, session, expiresAt.Sub(now)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo guardar la sesión")
	}
	return session, nil
}

// Load returns the session for id or ErrSessionMiss.
func (s *SessionService) Load(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		s.record("miss")
		return nil, appErrors.ErrSessionMiss
	}
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrSessionMiss) {
			s.record("miss")
			return nil, err
		}
		s.record("error")
		s.logger.Warn("session lookup failed", zap.Error(err))
		return nil, err
	}
	if !session.ExpiresAt.IsZero() && !s.now().Before(session.ExpiresAt) {
		s.record("expired")
		_ = s.store.Delete(ctx, id)
		return nil, appErrors.ErrSessionMiss
	}
	s.record("hit")
	return session, nil
}

// SetFlash attaches a one-shot message shown on the next rendered page.
func (s *SessionService) SetFlash(ctx context.Context, session *models.Session, flash models.Flash) error {
	if session == nil {
		return nil
	}
	session.Flash = &flash
	return s.save(ctx, session)
}

// ConsumeFlash returns the pending flash, clearing it from the store.
func (s *SessionService) ConsumeFlash(ctx context.Context, session *models.Session) *models.Flash {
	if session == nil || session.Flash == nil {
		return nil
	}
	flash := session.Flash
	session.Flash = nil
	if err := s.save(ctx, session); err != nil {
		s.logger.Warn("clear flash failed", zap.Error(err))
	}
	return flash
}

// Destroy removes a session.
func (s *SessionService) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.store.Delete(ctx, id)
}

func (s *SessionService) save(ctx context.Context, session *models.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if session.ExpiresAt.IsZero() {
		ttl = s.maxTTL
	}
	if ttl <= 0 {
		return appErrors.ErrSessionMiss
	}
	return s.store.Set(ctx, session, ttl)
}

func (s *SessionService) record(result string) {
	if s.metrics != nil {
		s.metrics.RecordSessionLookup(result)
	}
}
