package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedash/kpi-engine/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newActivePosition() domain.Position {
	return domain.Position{
		ID:           uuid.New(),
		CompanyID:    uuid.New(),
		InvestDate:   day(2022, time.January, 1),
		InvestAmount: decimal.NewFromInt(100_000),
		Shares:       decimal.NewFromInt(10_000),
		Status:       domain.PositionStatusActive,
	}
}

func TestPositionRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewPositionRepository(store)

	position := newActivePosition()
	store.PutPosition(position)

	got, err := repo.GetByID(ctx, position.ID)
	require.NoError(t, err)
	assert.Equal(t, position.ID, got.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)
}

func TestPositionRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewPositionRepository(store)

	nav := decimal.NewFromInt(10)
	position := newActivePosition()
	position.NAVLatest = &nav
	store.PutPosition(position)

	first, err := repo.GetByID(ctx, position.ID)
	require.NoError(t, err)

	// mutating the returned copy must not leak into the arena
	mutated := decimal.NewFromInt(999)
	first.NAVLatest = &mutated
	first.Status = domain.PositionStatusWrittenOff

	second, err := repo.GetByID(ctx, position.ID)
	require.NoError(t, err)
	assert.True(t, nav.Equal(*second.NAVLatest))
	assert.Equal(t, domain.PositionStatusActive, second.Status)
}

func TestPositionRepository_Update(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewPositionRepository(store)

	position := newActivePosition()
	store.PutPosition(position)

	nav := decimal.RequireFromString("11.25")
	position.NAVLatest = &nav
	require.NoError(t, repo.Update(ctx, &position))

	got, err := repo.GetByID(ctx, position.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NAVLatest)
	assert.True(t, nav.Equal(*got.NAVLatest))

	unknown := newActivePosition()
	assert.ErrorIs(t, repo.Update(ctx, &unknown), domain.ErrPositionNotFound)
}

func TestPositionRepository_StatusFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewPositionRepository(store)

	for i := 0; i < 3; i++ {
		store.PutPosition(newActivePosition())
	}
	realized := newActivePosition()
	realized.Status = domain.PositionStatusRealized
	store.PutPosition(realized)

	active, err := repo.ListByStatus(ctx, domain.PositionStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	count, err := repo.CountByStatus(ctx, domain.PositionStatusRealized)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountByStatus(ctx, domain.PositionStatusWrittenOff)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCashflowRepository_AsOfCutoff(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	cashflows := NewCashflowRepository(store)

	position := newActivePosition()
	store.PutPosition(position)

	add := func(date time.Time, amount int64, flowType domain.FlowType, desc string) {
		require.NoError(t, cashflows.Add(ctx, &domain.Cashflow{
			ID:          uuid.New(),
			PositionID:  position.ID,
			Date:        date,
			Amount:      decimal.NewFromInt(amount),
			FlowType:    flowType,
			Description: desc,
		}))
	}

	asOf := day(2023, time.June, 1)
	add(day(2022, time.January, 1), -100_000, domain.FlowTypeContribution, "initial")
	add(asOf, 5_000, domain.FlowTypeDistribution, "on the boundary")
	add(day(2023, time.June, 2), 7_000, domain.FlowTypeDistribution, "after cutoff")

	listed, err := cashflows.ListByPosition(ctx, position.ID, asOf)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// the boundary date is inclusive, later flows are cut off
	assert.Equal(t, "initial", listed[0].Description)
	assert.Equal(t, "on the boundary", listed[1].Description)
}

func TestCashflowRepository_SortsStably(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	cashflows := NewCashflowRepository(store)

	position := newActivePosition()
	store.PutPosition(position)

	sameDay := day(2023, time.March, 1)
	flows := []*domain.Cashflow{
		{ID: uuid.New(), PositionID: position.ID, Date: day(2023, time.May, 1), Amount: decimal.NewFromInt(300), FlowType: domain.FlowTypeDistribution, Description: "late"},
		{ID: uuid.New(), PositionID: position.ID, Date: sameDay, Amount: decimal.NewFromInt(100), FlowType: domain.FlowTypeDistribution, Description: "dup-first"},
		{ID: uuid.New(), PositionID: position.ID, Date: sameDay, Amount: decimal.NewFromInt(200), FlowType: domain.FlowTypeDistribution, Description: "dup-second"},
	}
	for _, cf := range flows {
		require.NoError(t, cashflows.Add(ctx, cf))
	}

	listed, err := cashflows.ListByPosition(ctx, position.ID, day(2024, time.January, 1))
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "dup-first", listed[0].Description)
	assert.Equal(t, "dup-second", listed[1].Description)
	assert.Equal(t, "late", listed[2].Description)
}

func TestCashflowRepository_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	cashflows := NewCashflowRepository(store)

	position := newActivePosition()
	store.PutPosition(position)

	// contribution must be negative
	err := cashflows.Add(ctx, &domain.Cashflow{
		ID:         uuid.New(),
		PositionID: position.ID,
		Date:       day(2023, time.March, 1),
		Amount:     decimal.NewFromInt(100),
		FlowType:   domain.FlowTypeContribution,
	})
	assert.Error(t, err)

	// unknown position
	err = cashflows.Add(ctx, &domain.Cashflow{
		ID:         uuid.New(),
		PositionID: uuid.New(),
		Date:       day(2023, time.March, 1),
		Amount:     decimal.NewFromInt(-100),
		FlowType:   domain.FlowTypeContribution,
	})
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)
}

func TestCompanyRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewCompanyRepository(store)

	company := domain.Company{ID: uuid.New(), Name: "Nimbus", Ticker: "NMBA", Sector: "Software"}
	store.PutCompany(company)

	got, err := repo.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Software", got.Sector)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestSeedSample(t *testing.T) {
	store := NewStore()
	sample, err := SeedSample(store)
	require.NoError(t, err)
	assert.Len(t, sample.CompanyIDs, 3)
	assert.Len(t, sample.PositionIDs, 3)

	ctx := context.Background()
	active, err := NewPositionRepository(store).ListByStatus(ctx, domain.PositionStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}
