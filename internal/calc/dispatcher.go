package calc

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Mode selects which backend the dispatcher treats as primary
type Mode string

const (
	// ModeAuto probes the optimized backend once and demotes it if the
	// probe fails
	ModeAuto Mode = "auto"
	// ModeReference forces the portable reference backend
	ModeReference Mode = "reference"
	// ModeOptimized forces the optimized backend without probing
	ModeOptimized Mode = "optimized"
)

// BackendInfo is the read-only introspection pair exposed to operational
// tooling
type BackendInfo struct {
	Backend         string
	ExpectedSpeedup float64
}

// Dispatcher routes every calculation to the primary backend and re-issues
// the call against the fallback when the primary panics or produces a
// non-finite result. Failures are per call, never sticky: the primary stays
// primary for subsequent calls.
//
// The primary is chosen exactly once at construction and never changes, so a
// Dispatcher is safe for concurrent use without locking.
type Dispatcher struct {
	primary  Backend
	fallback Backend
	logger   *zap.Logger
}

// NewDispatcher builds a dispatcher for the given mode. In ModeAuto the
// optimized backend is verified against the reference over a fixed battery;
// it becomes primary only if every battery entry agrees.
func NewDispatcher(mode Mode, logger *zap.Logger) *Dispatcher {
	reference := NewReference()
	optimized := NewOptimized()

	var primary Backend
	switch mode {
	case ModeReference:
		primary = reference
	case ModeOptimized:
		primary = optimized
	default:
		if probe(optimized, reference) {
			primary = optimized
		} else {
			logger.Warn("optimized backend failed verification, using reference",
				zap.String("backend", optimized.Name()))
			primary = reference
		}
	}

	logger.Info("calculation backend selected",
		zap.String("backend", primary.Name()),
		zap.Float64("expected_speedup", primary.Speedup()))

	return &Dispatcher{primary: primary, fallback: reference, logger: logger}
}

// NewDispatcherWithBackends builds a dispatcher over explicit backends.
// Used by tests and benchmarks; production code goes through NewDispatcher.
func NewDispatcherWithBackends(primary, fallback Backend, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{primary: primary, fallback: fallback, logger: logger}
}

// Info implements the dispatcher introspection surface
func (d *Dispatcher) Info() BackendInfo {
	return BackendInfo{
		Backend:         d.primary.Name(),
		ExpectedSpeedup: d.primary.Speedup(),
	}
}

// XIRR routes to the primary backend with per-call fallback
func (d *Dispatcher) XIRR(points []Point, guess float64) (float64, bool) {
	return d.call("xirr", func(b Backend) (float64, bool) {
		return b.XIRR(points, guess)
	})
}

// MOIC routes to the primary backend with per-call fallback
func (d *Dispatcher) MOIC(distributions, currentValue, invested float64) (float64, bool) {
	return d.call("moic", func(b Backend) (float64, bool) {
		return b.MOIC(distributions, currentValue, invested)
	})
}

// DPI routes to the primary backend with per-call fallback
func (d *Dispatcher) DPI(distributions, invested float64) (float64, bool) {
	return d.call("dpi", func(b Backend) (float64, bool) {
		return b.DPI(distributions, invested)
	})
}

// TVPI routes to the primary backend with per-call fallback
func (d *Dispatcher) TVPI(distributions, currentValue, invested float64) (float64, bool) {
	return d.call("tvpi", func(b Backend) (float64, bool) {
		return b.TVPI(distributions, currentValue, invested)
	})
}

// RVPI routes to the primary backend with per-call fallback
func (d *Dispatcher) RVPI(currentValue, invested float64) (float64, bool) {
	return d.call("rvpi", func(b Backend) (float64, bool) {
		return b.RVPI(currentValue, invested)
	})
}

// call runs fn against the primary inside a guard. A panic or a non-finite
// result counts as a backend failure: it is logged and the same call is
// re-issued against the fallback. An absent result (ok == false) is a valid
// outcome and does not trigger fallback.
func (d *Dispatcher) call(op string, fn func(Backend) (float64, bool)) (float64, bool) {
	value, ok, reason := guard(func() (float64, bool) { return fn(d.primary) })
	if reason == "" {
		return value, ok
	}

	d.logger.Warn("backend call failed, falling back for this call",
		zap.String("backend", d.primary.Name()),
		zap.String("op", op),
		zap.String("reason", reason))

	if d.primary.Name() == d.fallback.Name() {
		return 0, false
	}

	return fn(d.fallback)
}

// guard invokes call, converting panics and non-finite results into a
// non-empty failure reason.
func guard(call func() (float64, bool)) (value float64, ok bool, reason string) {
	defer func() {
		if r := recover(); r != nil {
			value, ok = 0, false
			reason = fmt.Sprintf("panic: %v", r)
		}
	}()

	value, ok = call()
	if ok && (math.IsNaN(value) || math.IsInf(value, 0)) {
		reason = "non-finite result"
	}
	return value, ok, reason
}

// probe cross-validates candidate against reference over a fixed battery of
// schedules. Agreement means: same presence, and present values within 1e-6.
func probe(candidate, reference Backend) bool {
	for _, points := range verificationBattery() {
		refRate, refOK := reference.XIRR(points, DefaultGuess)

		candRate, candOK, reason := guard(func() (float64, bool) {
			return candidate.XIRR(points, DefaultGuess)
		})
		if reason != "" {
			return false
		}
		if candOK != refOK {
			return false
		}
		if candOK && math.Abs(candRate-refRate) > 1e-6 {
			return false
		}
	}

	return true
}

// verificationBattery returns the schedules the probe (and the
// cross-validation tests) exercise: a plain two-point deal, a quarterly
// distribution schedule, a loss-making exit and a same-sign set with no
// real root.
func verificationBattery() [][]Point {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	return [][]Point{
		{
			{Date: day(2021, time.January, 1), Amount: -100},
			{Date: day(2022, time.January, 1), Amount: 123},
		},
		{
			{Date: day(2020, time.March, 15), Amount: -1_000_000},
			{Date: day(2020, time.June, 15), Amount: 25_000},
			{Date: day(2020, time.September, 15), Amount: 25_000},
			{Date: day(2020, time.December, 15), Amount: 25_000},
			{Date: day(2021, time.March, 15), Amount: 25_000},
			{Date: day(2022, time.March, 15), Amount: 1_400_000},
		},
		{
			{Date: day(2019, time.July, 1), Amount: -500_000},
			{Date: day(2023, time.July, 1), Amount: 320_000},
		},
		{
			{Date: day(2021, time.January, 1), Amount: 100},
			{Date: day(2022, time.January, 1), Amount: 200},
		},
	}
}
