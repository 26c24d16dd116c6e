package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedash/kpi-engine/internal/domain"
)

// SampleData identifies the entities created by SeedSample
type SampleData struct {
	CompanyIDs  []uuid.UUID
	PositionIDs []uuid.UUID
}

// SeedSample populates the arena with a small three-deal portfolio across
// two sectors: two software deals (one with quarterly dividends) and one
// healthcare deal that is still unmarked. Used by the benchmark CLI and the
// integration tests.
func SeedSample(store *Store) (*SampleData, error) {
	ctx := context.Background()
	cashflows := NewCashflowRepository(store)

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	nav := func(v string) *decimal.Decimal {
		d := decimal.RequireFromString(v)
		return &d
	}

	companies := []domain.Company{
		{ID: uuid.New(), Name: "Nimbus Analytics", Ticker: "NMBA", Sector: "Software", Currency: "USD"},
		{ID: uuid.New(), Name: "Forge Systems", Ticker: "FRGS", Sector: "Software", Currency: "USD"},
		{ID: uuid.New(), Name: "Helix Therapeutics", Ticker: "HLXT", Sector: "Healthcare", Currency: "USD"},
	}

	positions := []domain.Position{
		{
			ID:           uuid.New(),
			CompanyID:    companies[0].ID,
			InvestDate:   day(2020, time.March, 1),
			InvestAmount: decimal.NewFromInt(2_000_000),
			Shares:       decimal.NewFromInt(400_000),
			NAVLatest:    nav("7.80"),
			Status:       domain.PositionStatusActive,
		},
		{
			ID:           uuid.New(),
			CompanyID:    companies[1].ID,
			InvestDate:   day(2021, time.June, 15),
			InvestAmount: decimal.NewFromInt(1_500_000),
			Shares:       decimal.NewFromInt(250_000),
			NAVLatest:    nav("5.40"),
			Status:       domain.PositionStatusActive,
		},
		{
			ID:           uuid.New(),
			CompanyID:    companies[2].ID,
			InvestDate:   day(2022, time.January, 10),
			InvestAmount: decimal.NewFromInt(3_000_000),
			Shares:       decimal.NewFromInt(600_000),
			Status:       domain.PositionStatusActive,
		},
	}

	sample := &SampleData{}
	for _, company := range companies {
		if err := company.Validate(); err != nil {
			return nil, fmt.Errorf("invalid sample company %s: %w", company.Name, err)
		}
		store.PutCompany(company)
		sample.CompanyIDs = append(sample.CompanyIDs, company.ID)
	}
	for _, position := range positions {
		if err := position.Validate(); err != nil {
			return nil, fmt.Errorf("invalid sample position %s: %w", position.ID, err)
		}
		store.PutPosition(position)
		sample.PositionIDs = append(sample.PositionIDs, position.ID)
	}

	flows := []domain.Cashflow{
		// Nimbus: initial contribution plus two annual dividends
		{PositionID: positions[0].ID, Date: positions[0].InvestDate, Amount: decimal.NewFromInt(-2_000_000), FlowType: domain.FlowTypeContribution, Description: "Initial investment in Nimbus Analytics"},
		{PositionID: positions[0].ID, Date: day(2021, time.March, 1), Amount: decimal.NewFromInt(120_000), FlowType: domain.FlowTypeDistribution, Description: "Annual dividend"},
		{PositionID: positions[0].ID, Date: day(2022, time.March, 1), Amount: decimal.NewFromInt(150_000), FlowType: domain.FlowTypeDistribution, Description: "Annual dividend"},
		// Forge: contribution plus a partial exit distribution
		{PositionID: positions[1].ID, Date: positions[1].InvestDate, Amount: decimal.NewFromInt(-1_500_000), FlowType: domain.FlowTypeContribution, Description: "Initial investment in Forge Systems"},
		{PositionID: positions[1].ID, Date: day(2023, time.February, 20), Amount: decimal.NewFromInt(400_000), FlowType: domain.FlowTypeDistribution, Description: "Partial exit"},
		// Helix: contribution only, no NAV mark yet
		{PositionID: positions[2].ID, Date: positions[2].InvestDate, Amount: decimal.NewFromInt(-3_000_000), FlowType: domain.FlowTypeContribution, Description: "Initial investment in Helix Therapeutics"},
	}

	for _, flow := range flows {
		flow.ID = uuid.New()
		cf := flow
		if err := cashflows.Add(ctx, &cf); err != nil {
			return nil, fmt.Errorf("failed to seed cashflow: %w", err)
		}
	}

	return sample, nil
}
