package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"library-seats/internal/catalog"
	"library-seats/internal/data/entity"
	"library-seats/pkg/database"

	"go.uber.org/zap"
)

// StateKey is where the seat/reservation aggregate lives.
const StateKey = "library_state_v1"

// StateRepository loads and saves the whole aggregate at once. There are no
// partial updates, no versioning and no locking.
type StateRepository interface {
	// Load never fails because of a missing or corrupt record: the store is
	// reseeded from the catalog instead. Backend errors are returned.
	Load(ctx context.Context) (*entity.Aggregate, error)
	Save(ctx context.Context, agg *entity.Aggregate) error
}

type stateRepository struct {
	kv  database.KVStore
	log *zap.Logger
}

func NewStateRepository(kv database.KVStore, log *zap.Logger) StateRepository {
	return &stateRepository{
		kv:  kv,
		log: log.With(zap.String("repository", "state")),
	}
}

func (r *stateRepository) Load(ctx context.Context) (*entity.Aggregate, error) {
	raw, err := r.kv.Get(ctx, StateKey)
	if errors.Is(err, database.ErrNotFound) {
		return r.reseed(ctx, "missing"), nil
	}
	if err != nil {
		r.log.Error("Failed to read state", zap.Error(err))
		return nil, fmt.Errorf("load state: %w", err)
	}

	var agg entity.Aggregate
	if err := json.Unmarshal(raw, &agg); err != nil {
		r.log.Warn("State record is not valid JSON", zap.Error(err))
		return r.reseed(ctx, "corrupt"), nil
	}
	if agg.Seats == nil {
		return r.reseed(ctx, "no seats"), nil
	}
	if agg.Reservations == nil {
		agg.Reservations = []entity.Reservation{}
	}

	return &agg, nil
}

func (r *stateRepository) Save(ctx context.Context, agg *entity.Aggregate) error {
	raw, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := r.kv.Set(ctx, StateKey, raw); err != nil {
		r.log.Error("Failed to write state", zap.Error(err), zap.Int("bytes", len(raw)))
		return fmt.Errorf("save state: %w", err)
	}

	return nil
}

func (r *stateRepository) reseed(ctx context.Context, cause string) *entity.Aggregate {
	seeded := catalog.Seed()
	if err := r.Save(ctx, seeded); err != nil {
		// the caller still gets a usable aggregate; the next write retries
		r.log.Error("Failed to persist reseeded state", zap.Error(err), zap.String("cause", cause))
	} else {
		r.log.Warn("State reseeded from catalog",
			zap.String("cause", cause),
			zap.Int("seats", len(seeded.Seats)),
		)
	}
	return seeded
}
