package dealkpi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedash/kpi-engine/internal/calc"
	"github.com/pedash/kpi-engine/internal/domain"
)

// Service computes deal-level KPI snapshots and records the cashflow events
// that feed them
type Service struct {
	Positions domain.PositionRepository
	Cashflows domain.CashflowRepository
	Companies domain.CompanyRepository
	Calc      *calc.Dispatcher
}

// NewService creates a new deal KPI Service instance
func NewService(
	positions domain.PositionRepository,
	cashflows domain.CashflowRepository,
	companies domain.CompanyRepository,
	dispatcher *calc.Dispatcher,
) *Service {
	return &Service{
		Positions: positions,
		Cashflows: cashflows,
		Companies: companies,
		Calc:      dispatcher,
	}
}

// DealKPIs computes the KPI snapshot for one position as of the given date.
// The cashflow view is already cut off at asOf by the repository; the
// snapshot is built fresh on every call and never stored.
//
// A missing position or company surfaces as an error; absent metrics inside
// the snapshot (nil IRR and ratios) are a normal numeric outcome.
func (s *Service) DealKPIs(ctx context.Context, positionID uuid.UUID, asOf time.Time) (*domain.DealKPI, error) {
	position, err := s.Positions.GetByID(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load position %s: %w", positionID, err)
	}

	company, err := s.Companies.GetByID(ctx, position.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company for position %s: %w", positionID, err)
	}

	cashflows, err := s.Cashflows.ListByPosition(ctx, positionID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashflows for position %s: %w", positionID, err)
	}

	currentValue := position.CurrentValue()

	distributions := decimal.Zero
	for _, cf := range cashflows {
		if cf.FlowType == domain.FlowTypeDistribution {
			distributions = distributions.Add(cf.Amount)
		}
	}

	// Solver input: contributions and distributions verbatim. Stored NAV
	// marks are excluded; the open position is instead modeled as a single
	// hypothetical full liquidation at asOf, only when a NAV exists.
	points := make([]calc.Point, 0, len(cashflows)+1)
	for _, cf := range cashflows {
		if cf.FlowType == domain.FlowTypeContribution || cf.FlowType == domain.FlowTypeDistribution {
			points = append(points, calc.Point{Date: cf.Date, Amount: cf.Amount.InexactFloat64()})
		}
	}
	if position.NAVLatest != nil {
		points = append(points, calc.Point{Date: asOf, Amount: currentValue.InexactFloat64()})
	}

	distF := distributions.InexactFloat64()
	valueF := currentValue.InexactFloat64()
	investedF := position.InvestAmount.InexactFloat64()

	currentPrice := decimal.Zero
	if position.NAVLatest != nil {
		currentPrice = *position.NAVLatest
	}

	return &domain.DealKPI{
		PositionID:         position.ID,
		CompanyName:        company.Name,
		Ticker:             company.Ticker,
		InvestDate:         position.InvestDate,
		InvestAmount:       position.InvestAmount,
		Shares:             position.Shares,
		CurrentPrice:       currentPrice,
		CurrentValue:       currentValue,
		TotalDistributions: distributions,
		UnrealizedGain:     currentValue.Sub(position.InvestAmount),
		RealizedGain:       distributions,
		IRR:                optional(s.Calc.XIRR(points, calc.DefaultGuess)),
		MOIC:               optional(s.Calc.MOIC(distF, valueF, investedF)),
		DPI:                optional(s.Calc.DPI(distF, investedF)),
		TVPI:               optional(s.Calc.TVPI(distF, valueF, investedF)),
		RVPI:               optional(s.Calc.RVPI(valueF, investedF)),
		AsOf:               asOf,
	}, nil
}

// RecordDistribution records a per-share dividend distribution for a position
// Returns the created cashflow
func (s *Service) RecordDistribution(ctx context.Context, positionID uuid.UUID, date time.Time, perShare decimal.Decimal) (*domain.Cashflow, error) {
	if perShare.Sign() <= 0 {
		return nil, fmt.Errorf("distribution per share must be positive")
	}

	position, err := s.Positions.GetByID(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load position %s: %w", positionID, err)
	}

	cashflow := &domain.Cashflow{
		ID:          uuid.New(),
		PositionID:  position.ID,
		Date:        date,
		Amount:      position.Shares.Mul(perShare),
		FlowType:    domain.FlowTypeDistribution,
		Description: fmt.Sprintf("Dividend distribution: %s per share", perShare),
	}

	if err := s.Cashflows.Add(ctx, cashflow); err != nil {
		return nil, fmt.Errorf("failed to record distribution: %w", err)
	}

	return cashflow, nil
}

// UpdateNAV sets the latest per-share NAV of a position and records a NAV
// mark cashflow dated asOf
func (s *Service) UpdateNAV(ctx context.Context, positionID uuid.UUID, price decimal.Decimal, asOf time.Time) (*domain.Position, error) {
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("NAV per share must be positive")
	}

	position, err := s.Positions.GetByID(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load position %s: %w", positionID, err)
	}

	position.NAVLatest = &price
	if err := s.Positions.Update(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to update position %s: %w", positionID, err)
	}

	mark := &domain.Cashflow{
		ID:          uuid.New(),
		PositionID:  position.ID,
		Date:        asOf,
		Amount:      position.Shares.Mul(price),
		FlowType:    domain.FlowTypeNAV,
		Description: fmt.Sprintf("NAV update at %s per share", price),
	}
	if err := s.Cashflows.Add(ctx, mark); err != nil {
		return nil, fmt.Errorf("failed to record NAV mark: %w", err)
	}

	return position, nil
}

// optional converts a (value, ok) calculator result into the snapshot's
// pointer representation
func optional(value float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &value
}
