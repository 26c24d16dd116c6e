package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealKPI is the point-in-time KPI snapshot for a single position.
// Snapshots are recomputed on every call and never mutated or stored;
// a snapshot with a different AsOf supersedes this one entirely.
//
// The optional metrics (IRR, MOIC, DPI, TVPI, RVPI) are nil when the
// underlying computation has no defined answer (too few cashflows, no real
// root, zero invested capital). Absence is a normal result, not a fault.
type DealKPI struct {
	PositionID         uuid.UUID
	CompanyName        string
	Ticker             string
	InvestDate         time.Time
	InvestAmount       decimal.Decimal
	Shares             decimal.Decimal
	CurrentPrice       decimal.Decimal
	CurrentValue       decimal.Decimal
	TotalDistributions decimal.Decimal
	UnrealizedGain     decimal.Decimal
	RealizedGain       decimal.Decimal
	IRR                *float64
	MOIC               *float64
	DPI                *float64
	TVPI               *float64
	RVPI               *float64
	AsOf               time.Time
}

// PortfolioKPI is the KPI snapshot for a set of positions rolled up together.
//
// ActiveDeals and RealizedDeals count positions by their current status and
// deliberately ignore the AsOf cutoff that the monetary totals honor. The
// counts answer "how many deals are active now", the totals answer "what were
// the flows as of AsOf".
type PortfolioKPI struct {
	TotalInvested       decimal.Decimal
	TotalCurrentValue   decimal.Decimal
	TotalDistributions  decimal.Decimal
	TotalUnrealizedGain decimal.Decimal
	TotalRealizedGain   decimal.Decimal
	IRR                 *float64
	MOIC                *float64
	DPI                 *float64
	TVPI                *float64
	RVPI                *float64
	ActiveDeals         int
	RealizedDeals       int
	AsOf                time.Time
}

// SectorKPI is a portfolio-level snapshot computed over one sector partition
type SectorKPI struct {
	Sector    string
	DealCount int
	PortfolioKPI
}
