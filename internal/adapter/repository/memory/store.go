// Package memory provides an in-memory entity arena implementing the domain
// repository interfaces. Entities are addressed by opaque UUIDs; grouping
// (position -> company -> sector) goes through lookups instead of owning
// back-references.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pedash/kpi-engine/internal/domain"
)

// Store is the arena shared by the per-entity repositories. All reads hand
// out copies, so callers can never mutate stored state through a returned
// entity.
type Store struct {
	mu        sync.RWMutex
	companies map[uuid.UUID]domain.Company
	positions map[uuid.UUID]domain.Position
	cashflows map[uuid.UUID][]domain.Cashflow // keyed by position ID
}

// NewStore creates an empty arena
func NewStore() *Store {
	return &Store{
		companies: make(map[uuid.UUID]domain.Company),
		positions: make(map[uuid.UUID]domain.Position),
		cashflows: make(map[uuid.UUID][]domain.Cashflow),
	}
}

// PutCompany inserts or replaces a company
func (s *Store) PutCompany(company domain.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[company.ID] = company
}

// PutPosition inserts or replaces a position
func (s *Store) PutPosition(position domain.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[position.ID] = clonePosition(position)
}

// clonePosition deep-copies the NAV pointer so arena state and caller state
// stay independent
func clonePosition(p domain.Position) domain.Position {
	if p.NAVLatest != nil {
		nav := *p.NAVLatest
		p.NAVLatest = &nav
	}
	return p
}
