package domain

import (
	"context"
	"encoding/json"

	"mochini/internal/core/apperror"
	"mochini/internal/core/id"
	"mochini/internal/storage/sqlite"
)

// Record is implemented by every persisted entity (via entity.Base).
type Record interface {
	GetID() id.ID
	SetID(id.ID)
	GetVersion() int
	SetVersion(int)
	Touch()
}

// Repository provides typed access to one named collection.
//
// Every read and write goes through the store directly; there is no separate
// cached view to go stale. Mutations are compare-and-swap against the
// collection's write version, so a racing writer surfaces as
// CONCURRENT_MODIFICATION instead of a silent lost update.
type Repository[T Record] struct {
	store *sqlite.Store
	name  string
}

// NewRepository binds a repository to a collection name.
func NewRepository[T Record](store *sqlite.Store, name string) *Repository[T] {
	return &Repository[T]{store: store, name: name}
}

// Name returns the collection name.
func (r *Repository[T]) Name() string {
	return r.name
}

func (r *Repository[T]) load(ctx context.Context) ([]T, int64, error) {
	raw, version, err := r.store.Get(ctx, r.name)
	if err != nil {
		return nil, 0, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, apperror.NewStorage("decode "+r.name, err)
	}
	return items, version, nil
}

func (r *Repository[T]) save(ctx context.Context, items []T, version int64) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return apperror.NewStorage("encode "+r.name, err)
	}
	return r.store.PutVersioned(ctx, r.name, raw, version)
}

// List returns the collection snapshot in insertion order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	items, _, err := r.load(ctx)
	return items, err
}

// GetByID returns the record with the given id, or NOT_FOUND.
func (r *Repository[T]) GetByID(ctx context.Context, recordID id.ID) (T, error) {
	var zero T
	items, _, err := r.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.GetID() == recordID {
			return item, nil
		}
	}
	return zero, apperror.NewNotFound(r.name, recordID)
}

// Add assigns a fresh id (unless one is already set) and appends the record.
// Returns the stored record.
func (r *Repository[T]) Add(ctx context.Context, record T) (T, error) {
	var zero T
	items, version, err := r.load(ctx)
	if err != nil {
		return zero, err
	}

	if id.IsNil(record.GetID()) {
		record.SetID(id.New())
	}
	if record.GetVersion() == 0 {
		record.SetVersion(1)
	}

	items = append(items, record)
	if err := r.save(ctx, items, version); err != nil {
		return zero, err
	}
	return record, nil
}

// Update replaces the record whose id matches. Returns NOT_FOUND when the id
// is absent and CONCURRENT_MODIFICATION when the stored record has moved past
// the version the caller read.
func (r *Repository[T]) Update(ctx context.Context, record T) (T, error) {
	var zero T
	items, version, err := r.load(ctx)
	if err != nil {
		return zero, err
	}

	for i, item := range items {
		if item.GetID() != record.GetID() {
			continue
		}
		if item.GetVersion() != record.GetVersion() {
			return zero, apperror.NewConcurrentModification(r.name).
				WithDetail("id", record.GetID())
		}
		record.Touch()
		items[i] = record
		if err := r.save(ctx, items, version); err != nil {
			return zero, err
		}
		return record, nil
	}
	return zero, apperror.NewNotFound(r.name, record.GetID())
}

// Remove filters the id out of the collection. Removing an absent id is a
// silent no-op, matching the historical delete behavior.
func (r *Repository[T]) Remove(ctx context.Context, recordID id.ID) error {
	items, version, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	removed := false
	for _, item := range items {
		if item.GetID() == recordID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil
	}
	return r.save(ctx, kept, version)
}

// Replace writes the whole collection at once (CSV import, seeding).
// Records without an id get one assigned.
func (r *Repository[T]) Replace(ctx context.Context, items []T) error {
	_, version, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if id.IsNil(item.GetID()) {
			item.SetID(id.New())
		}
		if item.GetVersion() == 0 {
			item.SetVersion(1)
		}
	}
	return r.save(ctx, items, version)
}
