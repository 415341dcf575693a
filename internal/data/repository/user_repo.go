package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"library-seats/internal/data/entity"
	"library-seats/pkg/database"

	"go.uber.org/zap"
)

const UsersKey = "auth_users"

type UserRepository interface {
	FindAll(ctx context.Context) ([]entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// Upsert replaces the user with the same email, or appends it.
	Upsert(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	kv  database.KVStore
	log *zap.Logger
}

func NewUserRepository(kv database.KVStore, log *zap.Logger) UserRepository {
	return &userRepository{
		kv:  kv,
		log: log.With(zap.String("repository", "user")),
	}
}

// FindAll reads the user list; an unreadable record counts as empty.
func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	raw, err := r.kv.Get(ctx, UsersKey)
	if errors.Is(err, database.ErrNotFound) {
		return []entity.User{}, nil
	}
	if err != nil {
		r.log.Error("Failed to read users", zap.Error(err))
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	var users []entity.User
	if err := json.Unmarshal(raw, &users); err != nil || users == nil {
		r.log.Warn("Users record unreadable, treating as empty", zap.Error(err))
		return []entity.User{}, nil
	}

	return users, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}

	return nil, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	users, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	return r.write(ctx, append(users, *user))
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	users, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, user.Email) {
			users[i] = *user
			return r.write(ctx, users)
		}
	}

	return r.write(ctx, append(users, *user))
}

func (r *userRepository) write(ctx context.Context, users []entity.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}

	if err := r.kv.Set(ctx, UsersKey, raw); err != nil {
		r.log.Error("Failed to write users", zap.Error(err), zap.Int("count", len(users)))
		return fmt.Errorf("failed to write users: %w", err)
	}

	return nil
}
