package database

import (
	"context"
	"errors"
	"fmt"

	"library-seats/pkg/utils"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("key not found")

// KVStore persists opaque documents under string keys. Each Set overwrites
// the whole value; there are no partial updates.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// OpenStore picks the backend named by config.Store.Driver.
func OpenStore(ctx context.Context, config *utils.Config) (KVStore, error) {
	switch config.Store.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, "":
		return asStore(OpenSQLite(ctx, config.Store.Path))
	case DriverPostgres:
		return asStore(InitDB(ctx, config.Database))
	case DriverRedis:
		return asStore(NewRedisStore(ctx, config.Redis))
	default:
		return nil, fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}
}

// asStore keeps a failed open from leaking a typed nil into the interface.
func asStore(store KVStore, err error) (KVStore, error) {
	if err != nil {
		return nil, err
	}
	return store, nil
}
