// Package session owns the session lifecycle: creation on login,
// expiry-checked validation with a sliding refresh, and revocation on
// sign-out. It is deliberately decoupled from the credential core; the
// transport layer composes the two.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blogware/auth-service/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
)

// Store defines persistence for session rows. Lookups return (nil, nil)
// when no row matches.
type Store interface {
	CreateSession(ctx context.Context, session *model.Session) error
	FindSession(ctx context.Context, token string) (*model.Session, error)
	ExtendSession(ctx context.Context, token string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, token string) error
	DeleteSessionsByUserID(ctx context.Context, userID uint) error
}

type Service struct {
	store    Store
	logger   *zap.Logger
	ttl      time.Duration
	newToken func() string
}

func NewService(store Store, logger *zap.Logger, ttl time.Duration) *Service {
	return &Service{
		store:    store,
		logger:   logger,
		ttl:      ttl,
		newToken: uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, userID uint) (*model.Session, error) {
	sess := &model.Session{
		Token:     s.newToken(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		s.logger.Error("failed to create session", zap.Error(err))
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Validate checks the session behind token and slides its expiry
// forward. A failed refresh is logged but does not invalidate an
// otherwise live session.
func (s *Service) Validate(ctx context.Context, token string) (*model.Session, error) {
	sess, err := s.store.FindSession(ctx, token)
	if err != nil {
		s.logger.Error("failed to look up session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sess == nil {
		return nil, ErrInvalidSession
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, ErrExpiredSession
	}

	sess.ExpiresAt = time.Now().Add(s.ttl)
	if err := s.store.ExtendSession(ctx, token, sess.ExpiresAt); err != nil {
		s.logger.Warn("failed to refresh session expiry", zap.Error(err))
	}

	return sess, nil
}

// Refresh slides the expiry of a live session without returning it.
func (s *Service) Refresh(ctx context.Context, token string) error {
	_, err := s.Validate(ctx, token)
	return err
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	if err := s.store.DeleteSession(ctx, token); err != nil {
		s.logger.Error("failed to revoke session", zap.Error(err))
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// RevokeAll removes every session of the user, the sign-out-everywhere
// semantics the transport layer exposes.
func (s *Service) RevokeAll(ctx context.Context, userID uint) error {
	if err := s.store.DeleteSessionsByUserID(ctx, userID); err != nil {
		s.logger.Error("failed to revoke user sessions", zap.Error(err))
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
