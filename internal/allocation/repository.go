package allocation

import (
	"context"
	"errors"
	"fmt"

	"seatly/pkg/cache"
)

// Key prefixes for the per-leg durable records. Assignment and privacy
// live in separate records keyed by the stable leg id, so switching legs
// and returning preserves state exactly.
const (
	assignmentKeyPrefix = "seatmap:assignment:"
	privacyKeyPrefix    = "seatmap:privacy:"
)

// StateRepository persists per-leg seat state. Load returns
// ErrStateNotFound when no record exists yet for the leg.
type StateRepository interface {
	Load(ctx context.Context, legID string) (LegSnapshot, error)
	Save(ctx context.Context, snap LegSnapshot) error
	Delete(ctx context.Context, legID string) error
}

type redisStateRepository struct {
	store cache.Service
}

// NewStateRepository builds a repository on top of the keyed cache store.
func NewStateRepository(store cache.Service) StateRepository {
	return &redisStateRepository{store: store}
}

func assignmentKey(legID string) string {
	return assignmentKeyPrefix + legID
}

func privacyKey(legID string) string {
	return privacyKeyPrefix + legID
}

func (r *redisStateRepository) Load(ctx context.Context, legID string) (LegSnapshot, error) {
	snap := LegSnapshot{LegID: legID}

	var assignments map[string]string
	if err := r.store.Get(ctx, assignmentKey(legID), &assignments); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return snap, ErrStateNotFound
		}
		return snap, fmt.Errorf("load assignments for leg %s: %w", legID, err)
	}
	snap.Assignments = assignments

	var privacy map[string]string
	if err := r.store.Get(ctx, privacyKey(legID), &privacy); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			// assignment record without privacy record: treat as empty
			snap.Privacy = map[string]string{}
			return snap, nil
		}
		return snap, fmt.Errorf("load privacy for leg %s: %w", legID, err)
	}
	snap.Privacy = privacy
	return snap, nil
}

func (r *redisStateRepository) Save(ctx context.Context, snap LegSnapshot) error {
	if err := r.store.Set(ctx, assignmentKey(snap.LegID), snap.Assignments, 0); err != nil {
		return fmt.Errorf("save assignments for leg %s: %w", snap.LegID, err)
	}
	if err := r.store.Set(ctx, privacyKey(snap.LegID), snap.Privacy, 0); err != nil {
		return fmt.Errorf("save privacy for leg %s: %w", snap.LegID, err)
	}
	return nil
}

func (r *redisStateRepository) Delete(ctx context.Context, legID string) error {
	if err := r.store.Delete(ctx, assignmentKey(legID)); err != nil {
		return fmt.Errorf("delete assignments for leg %s: %w", legID, err)
	}
	if err := r.store.Delete(ctx, privacyKey(legID)); err != nil {
		return fmt.Errorf("delete privacy for leg %s: %w", legID, err)
	}
	return nil
}

// memoryStateRepository keeps records in process. Used in tests and when
// the service runs without Redis.
type memoryStateRepository struct {
	records map[string]LegSnapshot
}

// NewMemoryStateRepository returns an in-process StateRepository.
func NewMemoryStateRepository() StateRepository {
	return &memoryStateRepository{records: make(map[string]LegSnapshot)}
}

func (r *memoryStateRepository) Load(_ context.Context, legID string) (LegSnapshot, error) {
	snap, ok := r.records[legID]
	if !ok {
		return LegSnapshot{LegID: legID}, ErrStateNotFound
	}
	return snap, nil
}

func (r *memoryStateRepository) Save(_ context.Context, snap LegSnapshot) error {
	r.records[snap.LegID] = snap
	return nil
}

func (r *memoryStateRepository) Delete(_ context.Context, legID string) error {
	delete(r.records, legID)
	return nil
}
