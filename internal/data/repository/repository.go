package repository

import (
	"library-seats/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	State   StateRepository
	User    UserRepository
	Session SessionRepository
}

func NewRepository(kv database.KVStore, log *zap.Logger) *Repository {
	return &Repository{
		State:   NewStateRepository(kv, log),
		User:    NewUserRepository(kv, log),
		Session: NewSessionRepository(kv, log),
	}
}
