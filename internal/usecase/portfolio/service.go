package portfolio

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pedash/kpi-engine/internal/calc"
	"github.com/pedash/kpi-engine/internal/domain"
)

// Service computes portfolio-level and sector-level KPI snapshots by rolling
// up the cashflows of the active positions
type Service struct {
	Positions domain.PositionRepository
	Cashflows domain.CashflowRepository
	Companies domain.CompanyRepository
	Calc      *calc.Dispatcher
}

// NewService creates a new portfolio Service instance
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

// PortfolioKPIs computes the KPI snapshot across all active positions as of
// the given date. Zero active positions yields a zero-filled snapshot, not an
// error.
//
// RealizedDeals counts positions by current status regardless of asOf, while
// the monetary totals honor the cutoff; see domain.PortfolioKPI.
func (s *Service) PortfolioKPIs(ctx context.Context, asOf time.Time) (*domain.PortfolioKPI, error) {
	active, err := s.Positions.ListByStatus(ctx, domain.PositionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active positions: %w", err)
	}

	if len(active) == 0 {
		return &domain.PortfolioKPI{
			TotalInvested:       decimal.Zero,
			TotalCurrentValue:   decimal.Zero,
			TotalDistributions:  decimal.Zero,
			TotalUnrealizedGain: decimal.Zero,
			TotalRealizedGain:   decimal.Zero,
			AsOf:                asOf,
		}, nil
	}

	snapshot, err := s.aggregate(ctx, active, asOf)
	if err != nil {
		return nil, err
	}

	realized, err := s.Positions.CountByStatus(ctx, domain.PositionStatusRealized)
	if err != nil {
		return nil, fmt.Errorf("failed to count realized positions: %w", err)
	}
	snapshot.RealizedDeals = realized

	return snapshot, nil
}

// SectorKPIs partitions the active positions by company sector and applies
// the portfolio aggregation recipe per partition. The result is sorted by
// sector name so identical input yields identical output.
func (s *Service) SectorKPIs(ctx context.Context, asOf time.Time) ([]*domain.SectorKPI, error) {
	active, err := s.Positions.ListByStatus(ctx, domain.PositionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active positions: %w", err)
	}

	groups := make(map[string][]*domain.Position)
	for _, position := range active {
		company, err := s.Companies.GetByID(ctx, position.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load company for position %s: %w", position.ID, err)
		}
		groups[company.Sector] = append(groups[company.Sector], position)
	}

	sectors := make([]string, 0, len(groups))
	for sector := range groups {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	result := make([]*domain.SectorKPI, 0, len(sectors))
	for _, sector := range sectors {
		members := groups[sector]
		snapshot, err := s.aggregate(ctx, members, asOf)
		if err != nil {
			return nil, err
		}

		result = append(result, &domain.SectorKPI{
			Sector:       sector,
			DealCount:    len(members),
			PortfolioKPI: *snapshot,
		})
	}

	return result, nil
}

// aggregate applies the rollup recipe to a set of positions: decimal totals,
// the union of constituent contribution and distribution cashflows cut off at
// asOf, one synthetic terminal cashflow of the summed current value, then
// solver and ratios at group granularity.
func (s *Service) aggregate(ctx context.Context, positions []*domain.Position, asOf time.Time) (*domain.PortfolioKPI, error) {
	totalInvested := decimal.Zero
	totalValue := decimal.Zero
	totalDistributions := decimal.Zero

	var points []calc.Point
	for _, position := range positions {
		totalInvested = totalInvested.Add(position.InvestAmount)
		totalValue = totalValue.Add(position.CurrentValue())

		cashflows, err := s.Cashflows.ListByPosition(ctx, position.ID, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to list cashflows for position %s: %w", position.ID, err)
		}

		for _, cf := range cashflows {
			switch cf.FlowType {
			case domain.FlowTypeContribution:
				points = append(points, calc.Point{Date: cf.Date, Amount: cf.Amount.InexactFloat64()})
			case domain.FlowTypeDistribution:
				totalDistributions = totalDistributions.Add(cf.Amount)
				points = append(points, calc.Point{Date: cf.Date, Amount: cf.Amount.InexactFloat64()})
			}
		}
	}

	distF := totalDistributions.InexactFloat64()
	valueF := totalValue.InexactFloat64()
	investedF := totalInvested.InexactFloat64()

	var irr *float64
	if totalInvested.Sign() > 0 {
		points = append(points, calc.Point{Date: asOf, Amount: valueF})
		irr = optional(s.Calc.XIRR(points, calc.DefaultGuess))
	}

	activeCount := 0
	for _, position := range positions {
		if position.Status == domain.PositionStatusActive {
			activeCount++
		}
	}

	return &domain.PortfolioKPI{
		TotalInvested:       totalInvested,
		TotalCurrentValue:   totalValue,
		TotalDistributions:  totalDistributions,
		TotalUnrealizedGain: totalValue.Sub(totalInvested),
		TotalRealizedGain:   totalDistributions,
		IRR:                 irr,
		MOIC:                optional(s.Calc.MOIC(distF, valueF, investedF)),
		DPI:                 optional(s.Calc.DPI(distF, investedF)),
		TVPI:                optional(s.Calc.TVPI(distF, valueF, investedF)),
		RVPI:                optional(s.Calc.RVPI(valueF, investedF)),
		ActiveDeals:         activeCount,
		AsOf:                asOf,
	}, nil
}

func optional(value float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &value
}
