package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/pedash/kpi-engine/internal/domain"
)

// CompanyRepository implements domain.CompanyRepository over the arena
type CompanyRepository struct {
	store *Store
}

// NewCompanyRepository creates a new CompanyRepository instance
func NewCompanyRepository(store *Store) *CompanyRepository {
	return &CompanyRepository{store: store}
}

// GetByID retrieves a company by its ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	company, ok := r.store.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	copied := company
	return &copied, nil
}
