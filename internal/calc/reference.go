package calc

import "math"

// Reference is the portable reference backend. It is always available and
// serves as the fallback whenever the optimized backend fails a call.
//
// The primary solve is a derivative-free secant iteration from the caller's
// guess; when that fails to land inside the acceptance band the solver falls
// back to bounded bisection.
type Reference struct{}

// NewReference creates the reference backend
func NewReference() Reference {
	return Reference{}
}

// Name implements Backend
func (Reference) Name() string {
	return "reference"
}

// Speedup implements Backend
func (Reference) Speedup() float64 {
	return 1.0
}

// XIRR implements Backend
func (Reference) XIRR(points []Point, guess float64) (float64, bool) {
	if len(points) < 2 {
		return 0, false
	}

	s := newSchedule(points)

	if rate, ok := secant(s, guess); ok {
		return rate, true
	}

	return bisect(s.npv)
}

// secant runs a derivative-free secant iteration from the guess.
// The second seed is a fixed offset from the guess, so identical input
// always walks the identical path.
func secant(s schedule, guess float64) (float64, bool) {
	x0 := guess
	x1 := guess + 0.05
	f0 := s.npv(x0)
	f1 := s.npv(x1)

	if accept(x0, f0) {
		return x0, true
	}

	for i := 0; i < maxSolveIters; i++ {
		if accept(x1, f1) {
			return x1, true
		}

		denom := f1 - f0
		if math.Abs(denom) < 1e-14 {
			return 0, false
		}

		x2 := x1 - f1*(x1-x0)/denom
		// keep 1+rate positive so the NPV power stays real
		x2 = math.Max(minRate, math.Min(maxRate, x2))

		if math.Abs(x2-x1) < bracketEps {
			f2 := s.npv(x2)
			if accept(x2, f2) {
				return x2, true
			}
			return 0, false
		}

		x0, f0 = x1, f1
		x1 = x2
		f1 = s.npv(x1)
	}

	return 0, false
}

// MOIC implements Backend
func (Reference) MOIC(distributions, currentValue, invested float64) (float64, bool) {
	if invested <= 0 {
		return 0, false
	}
	return (distributions + currentValue) / invested, true
}

// DPI implements Backend
func (Reference) DPI(distributions, invested float64) (float64, bool) {
	if invested <= 0 {
		return 0, false
	}
	return distributions / invested, true
}

// TVPI implements Backend
func (Reference) TVPI(distributions, currentValue, invested float64) (float64, bool) {
	if invested <= 0 {
		return 0, false
	}
	return (distributions + currentValue) / invested, true
}

// RVPI implements Backend
func (Reference) RVPI(currentValue, invested float64) (float64, bool) {
	if invested <= 0 {
		return 0, false
	}
	return currentValue / invested, true
}
