package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PositionStatus represents the lifecycle status of a position
type PositionStatus string

const (
	PositionStatusActive     PositionStatus = "ACTIVE"
	PositionStatusRealized   PositionStatus = "REALIZED"
	PositionStatusWrittenOff PositionStatus = "WRITTEN_OFF"
)

// Position represents a single deal: an investment into a company
// NAVLatest is the current per-share value; nil until the first NAV update
type Position struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	InvestDate   time.Time
	InvestAmount decimal.Decimal
	Shares       decimal.Decimal
	NAVLatest    *decimal.Decimal
	Status       PositionStatus
}

// Validate ensures the position adheres to domain rules
// Returns an error if validation fails
func (p *Position) Validate() error {
	if p.InvestAmount.Sign() <= 0 {
		return errors.New("invest amount must be positive")
	}
	if p.Shares.Sign() <= 0 {
		return errors.New("shares must be positive")
	}
	if p.Status != PositionStatusActive && p.Status != PositionStatusRealized && p.Status != PositionStatusWrittenOff {
		return errors.New("status must be ACTIVE, REALIZED or WRITTEN_OFF")
	}

	return nil
}

// CurrentValue returns shares times the latest per-share NAV
// A position with no NAV mark yet is worth zero
func (p *Position) CurrentValue() decimal.Decimal {
	if p.NAVLatest == nil {
		return decimal.Zero
	}
	return p.Shares.Mul(*p.NAVLatest)
}
