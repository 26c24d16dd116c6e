package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/pedash/kpi-engine/internal/domain"
)

// PositionRepository implements domain.PositionRepository over the arena
type PositionRepository struct {
	store *Store
}

// NewPositionRepository creates a new PositionRepository instance
func NewPositionRepository(store *Store) *PositionRepository {
	return &PositionRepository{store: store}
}

// GetByID retrieves a position by its ID
func (r *PositionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	position, ok := r.store.positions[id]
	if !ok {
		return nil, domain.ErrPositionNotFound
	}
	copied := clonePosition(position)
	return &copied, nil
}

// Update replaces the stored position with the given one
func (r *PositionRepository) Update(ctx context.Context, position *domain.Position) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.positions[position.ID]; !ok {
		return domain.ErrPositionNotFound
	}
	r.store.positions[position.ID] = clonePosition(*position)
	return nil
}

// ListByStatus retrieves all positions with the given status, ordered by ID
// so repeated calls iterate deterministically
func (r *PositionRepository) ListByStatus(ctx context.Context, status domain.PositionStatus) ([]*domain.Position, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*domain.Position
	for _, position := range r.store.positions {
		if position.Status == status {
			copied := clonePosition(position)
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

// CountByStatus returns the number of positions with the given status
func (r *PositionRepository) CountByStatus(ctx context.Context, status domain.PositionStatus) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, position := range r.store.positions {
		if position.Status == status {
			count++
		}
	}
	return count, nil
}
