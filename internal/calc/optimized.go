package calc

import "math"

// Optimized is the accelerated backend, a port of the native fast path:
// Newton-Raphson with the analytic NPV derivative, year fractions computed
// once per solve, and discounting via exp/log1p instead of math.Pow.
//
// It is functionally equivalent to Reference; the Dispatcher cross-validates
// the two at startup and guards every call with a per-call fallback.
type Optimized struct{}

// NewOptimized creates the optimized backend
func NewOptimized() Optimized {
	return Optimized{}
}

// Name implements Backend
func (Optimized) Name() string {
	return "optimized"
}

// Speedup implements Backend
func (Optimized) Speedup() float64 {
	return 25.0
}

// XIRR implements Backend
func (Optimized) XIRR(points []Point, guess float64) (float64, bool) {
	if len(points) < 2 {
		return 0, false
	}

	s := newSchedule(points)

	if rate, ok := newton(s, guess); ok {
		return rate, true
	}

	return bisect(func(rate float64) float64 {
		return fastNPV(s, rate)
	})
}

// fastNPV computes the NPV using amount * exp(-t * log1p(rate)); valid for
// rate > -1, which the clamped iteration guarantees.
func fastNPV(s schedule, rate float64) float64 {
	lg := math.Log1p(rate)
	total := 0.0
	for i, amount := range s.amounts {
		total += amount * math.Exp(-s.years[i]*lg)
	}
	return total
}

// fastDerivative computes dNPV/drate = Σ -t_i * a_i / (1+rate)^(t_i+1)
func fastDerivative(s schedule, rate float64) float64 {
	lg := math.Log1p(rate)
	total := 0.0
	for i, amount := range s.amounts {
		total += -s.years[i] * amount * math.Exp(-(s.years[i]+1)*lg)
	}
	return total
}

// newton runs Newton-Raphson with steps clamped to the acceptance band
func newton(s schedule, guess float64) (float64, bool) {
	rate := guess

	for i := 0; i < maxSolveIters; i++ {
		residual := fastNPV(s, rate)
		if accept(rate, residual) {
			return rate, true
		}

		derivative := fastDerivative(s, rate)
		if math.Abs(derivative) < 1e-10 {
			return 0, false
		}

		next := rate - residual/derivative
		next = math.Max(minRate, math.Min(maxRate, next))

		// step below the bracket floor means the iteration has stalled
		if math.Abs(next-rate) < bracketEps {
			rate = next
			if accept(rate, fastNPV(s, rate)) {
				return rate, true
			}
			return 0, false
		}

		rate = next
	}

	return 0, false
}

// MOIC implements Backend
func (Optimized) MOIC(distributions, currentValue, invested float64) (float64, bool) {
	if invested <= 0 {
		return 0, false
	}
	return (distributions + currentValue) / invested, true
}

// DPI implements Backend
func (Optimized) DPI(distributions, invested float64) (float64, bool) {
	if invested <= 0 {
		return 0, false
	}
	return distributions / invested, true
}

// TVPI implements Backend
func (Optimized) TVPI(distributions, currentValue, invested float64) (float64, bool) {
	if invested <= 0 {
		return 0, false
	}
	return (distributions + currentValue) / invested, true
}

// RVPI implements Backend
func (Optimized) RVPI(currentValue, invested float64) (float64, bool) {
	if invested <= 0 {
		return 0, false
	}
	return currentValue / invested, true
}
