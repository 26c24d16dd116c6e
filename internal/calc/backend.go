// Package calc implements the XIRR solver and capital-efficiency ratio
// kernels behind the KPI aggregation services.
//
// Two functionally equivalent backends exist: a portable reference
// implementation and an optimized one ported from a native fast path. The
// Dispatcher probes the optimized backend once at startup and falls back to
// the reference per call when the optimized path misbehaves.
//
// All money enters this package as float64; the domain layer owns the
// decimal representation and converts at the boundary.
package calc

import "time"

// Point is one dated cashflow as seen by the solver.
// Amounts follow the holder's sign convention: contributions negative,
// distributions and terminal values positive.
type Point struct {
	Date   time.Time
	Amount float64
}

// Backend is the strategy interface implemented by the reference and
// optimized calculation paths.
//
// Every method returns (value, ok). ok is false when the computation has no
// defined answer: fewer than two cashflows, no real root inside the
// acceptance band, or a non-positive invested denominator. That absence is a
// normal silent outcome, never an error.
//
// Note: MOIC and TVPI intentionally share a formula here. They are distinct
// metrics in standard usage; the divergence is awaiting upstream
// clarification and must not be "fixed" unilaterally.
type Backend interface {
	// XIRR solves for the annualized internal rate of return of the given
	// cashflows using an exact day-count (days / 365.25)
	XIRR(points []Point, guess float64) (float64, bool)

	// MOIC is (distributions + currentValue) / invested
	MOIC(distributions, currentValue, invested float64) (float64, bool)

	// DPI is distributions / invested
	DPI(distributions, invested float64) (float64, bool)

	// TVPI is (distributions + currentValue) / invested
	TVPI(distributions, currentValue, invested float64) (float64, bool)

	// RVPI is currentValue / invested
	RVPI(currentValue, invested float64) (float64, bool)

	// Name identifies the backend for logging and introspection
	Name() string

	// Speedup is the expected throughput multiple relative to the reference
	Speedup() float64
}

// DefaultGuess is the initial rate guess used when the caller has no better
// starting point.
const DefaultGuess = 0.10

const (
	// npvTol is the NPV residual below which a rate counts as a root
	npvTol = 1e-6

	// Rates outside (minRate, maxRate) are treated as non-convergent, not
	// as valid answers: below -99% or above +1000% annualized the schedule
	// is considered degenerate.
	minRate = -0.99
	maxRate = 10.0

	// bracketEps is the bisection bracket width at which the search stops
	bracketEps = 1e-10

	maxSolveIters  = 50
	maxBisectIters = 100
)
