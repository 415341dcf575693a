package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"library-seats/internal/data/entity"
	"library-seats/pkg/database"

	"go.uber.org/zap"
)

const SessionsKey = "auth_session"

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
}

type sessionRepository struct {
	kv  database.KVStore
	log *zap.Logger
}

func NewSessionRepository(kv database.KVStore, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		kv:  kv,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessions, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	sessions[session.Token] = *session
	return r.writeAll(ctx, sessions)
}

func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	sessions, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	session, ok := sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	sessions, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	if _, ok := sessions[token]; !ok {
		return nil
	}
	delete(sessions, token)
	return r.writeAll(ctx, sessions)
}

// readAll treats an unreadable record as "no sessions".
func (r *sessionRepository) readAll(ctx context.Context) (map[string]entity.Session, error) {
	raw, err := r.kv.Get(ctx, SessionsKey)
	if errors.Is(err, database.ErrNotFound) {
		return map[string]entity.Session{}, nil
	}
	if err != nil {
		r.log.Error("Failed to read sessions", zap.Error(err))
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	var sessions map[string]entity.Session
	if err := json.Unmarshal(raw, &sessions); err != nil || sessions == nil {
		r.log.Warn("Sessions record unreadable, treating as empty", zap.Error(err))
		return map[string]entity.Session{}, nil
	}

	return sessions, nil
}

func (r *sessionRepository) writeAll(ctx context.Context, sessions map[string]entity.Session) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}

	if err := r.kv.Set(ctx, SessionsKey, raw); err != nil {
		r.log.Error("Failed to write sessions", zap.Error(err))
		return fmt.Errorf("failed to write sessions: %w", err)
	}

	return nil
}
