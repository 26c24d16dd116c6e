package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pedash/kpi-engine/internal/domain"
)

// CashflowRepository implements domain.CashflowRepository over the arena
type CashflowRepository struct {
	store *Store
}

// NewCashflowRepository creates a new CashflowRepository instance
func NewCashflowRepository(store *Store) *CashflowRepository {
	return &CashflowRepository{store: store}
}

// Add records a new cashflow against its position
// The cashflow must pass domain validation and reference a known position
func (r *CashflowRepository) Add(ctx context.Context, cashflow *domain.Cashflow) error {
	if err := cashflow.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.positions[cashflow.PositionID]; !ok {
		return domain.ErrPositionNotFound
	}
	r.store.cashflows[cashflow.PositionID] = append(r.store.cashflows[cashflow.PositionID], *cashflow)
	return nil
}

// ListByPosition retrieves a position's cashflows with date <= asOf, sorted
// ascending by date. The sort is stable, so cashflows sharing a date keep
// their insertion order.
func (r *CashflowRepository) ListByPosition(ctx context.Context, positionID uuid.UUID, asOf time.Time) ([]*domain.Cashflow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if _, ok := r.store.positions[positionID]; !ok {
		return nil, domain.ErrPositionNotFound
	}

	var result []*domain.Cashflow
	for _, cf := range r.store.cashflows[positionID] {
		if cf.Date.After(asOf) {
			continue
		}
		copied := cf
		result = append(result, &copied)
	}
	domain.SortCashflows(result)
	return result, nil
}
