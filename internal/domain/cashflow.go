package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FlowType represents the type of a cashflow
type FlowType string

const (
	FlowTypeContribution FlowType = "CONTRIBUTION"
	FlowTypeDistribution FlowType = "DISTRIBUTION"
	FlowTypeNAV          FlowType = "NAV"
)

// Cashflow represents a single dated cashflow attached to a position
// Sign convention is from the capital holder's perspective:
// contributions are negative (money out), distributions and NAV marks are non-negative
type Cashflow struct {
	ID          uuid.UUID
	PositionID  uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	FlowType    FlowType
	Description string
}

// Validate ensures the cashflow adheres to the sign convention
// Returns an error if validation fails
func (c *Cashflow) Validate() error {
	switch c.FlowType {
	case FlowTypeContribution:
		if c.Amount.Sign() >= 0 {
			return errors.New("contribution amount must be negative")
		}
	case FlowTypeDistribution, FlowTypeNAV:
		if c.Amount.Sign() < 0 {
			return errors.New(string(c.FlowType) + " amount must be non-negative")
		}
	default:
		return errors.New("flow type must be CONTRIBUTION, DISTRIBUTION or NAV")
	}

	return nil
}

// SortCashflows sorts cashflows ascending by date, in place
// The sort is stable so cashflows sharing a date keep their relative order
func SortCashflows(cashflows []*Cashflow) {
	sort.SliceStable(cashflows, func(i, j int) bool {
		return cashflows[i].Date.Before(cashflows[j].Date)
	})
}
