package calc

import (
	"math"
	"sort"
)

const daysPerYear = 365.25

// schedule is a cashflow list reduced to year offsets from the earliest date
type schedule struct {
	years   []float64
	amounts []float64
}

// newSchedule sorts the points ascending by date (stable, without mutating
// the caller's slice) and converts dates to year fractions from the first
// cashflow.
func newSchedule(points []Point) schedule {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	s := schedule{
		years:   make([]float64, len(sorted)),
		amounts: make([]float64, len(sorted)),
	}
	t0 := sorted[0].Date
	for i, p := range sorted {
		days := p.Date.Sub(t0).Hours() / 24
		s.years[i] = days / daysPerYear
		s.amounts[i] = p.Amount
	}

	return s
}

// npv computes Σ amount_i / (1+rate)^year_i
func (s schedule) npv(rate float64) float64 {
	total := 0.0
	for i, amount := range s.amounts {
		total += amount / math.Pow(1+rate, s.years[i])
	}
	return total
}

// accept reports whether rate is a valid solution: the NPV residual is below
// tolerance and the rate sits inside the acceptance band.
func accept(rate, residual float64) bool {
	return math.Abs(residual) < npvTol && rate > minRate && rate < maxRate
}

// bisect runs a bounded sign-based bisection of f over [minRate, maxRate].
// It returns the first midpoint whose |f| drops below the NPV tolerance.
// When both bracket ends share a sign there is no real root in range and the
// result is absent; a bracket that collapses below bracketEps without meeting
// the tolerance is likewise absent.
func bisect(f func(float64) float64) (float64, bool) {
	low, high := minRate, maxRate
	fLow := f(low)
	fHigh := f(high)

	if fLow*fHigh > 0 {
		return 0, false
	}

	for i := 0; i < maxBisectIters; i++ {
		mid := (low + high) / 2
		fMid := f(mid)

		if math.Abs(fMid) < npvTol {
			return mid, true
		}

		if fMid*fLow < 0 {
			high = mid
		} else {
			low = mid
			fLow = fMid
		}

		if high-low < bracketEps {
			break
		}
	}

	return 0, false
}
