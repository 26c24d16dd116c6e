package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PositionRepository defines the interface for position persistence operations
type PositionRepository interface {
	// GetByID retrieves a position by its ID
	// Returns ErrPositionNotFound if no record exists
	GetByID(ctx context.Context, id uuid.UUID) (*Position, error)

	// Update replaces the stored position with the given one
	Update(ctx context.Context, position *Position) error

	// ListByStatus retrieves all positions with the given status
	ListByStatus(ctx context.Context, status PositionStatus) ([]*Position, error)

	// CountByStatus returns the number of positions with the given status
	CountByStatus(ctx context.Context, status PositionStatus) (int, error)
}

// CashflowRepository defines the interface for cashflow persistence operations
type CashflowRepository interface {
	// Add records a new cashflow
	Add(ctx context.Context, cashflow *Cashflow) error

	// ListByPosition retrieves the cashflows of a position with date <= asOf,
	// sorted ascending by date
	ListByPosition(ctx context.Context, positionID uuid.UUID, asOf time.Time) ([]*Cashflow, error)
}

// CompanyRepository defines the interface for company persistence operations
type CompanyRepository interface {
	// GetByID retrieves a company by its ID
	// Returns ErrCompanyNotFound if no record exists
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
}
