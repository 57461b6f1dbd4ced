package montecarlo

import "math"

// wilson95z is the z-score for a 95% two-sided confidence interval, the
// only level spec §6's pinned AggregateStats payload ever carries.
const wilson95z = 1.959963984540054

// wilson95 computes the Wilson score interval for a binomial proportion
// (spec §4.3), grounded on the same closed form as
// other_examples/.../Connerlevi-A-Swarm__intelligence-fitness-evaluator.go's
// Wilson function, fixed at the 95% z value this package always reports.
func wilson95(wins, n uint64) (lo, hi float64) {
	if n == 0 {
		return 0, 0
	}

	z := wilson95z
	p := float64(wins) / float64(n)
	nf := float64(n)

	denom := 1 + (z*z)/nf
	center := p + (z*z)/(2*nf)
	half := z * math.Sqrt((p*(1-p)+(z*z)/(4*nf))/nf)

	// The interval always contains p; clamping to it keeps rounding at
	// p = 0 or p = 1 from pushing a bound past the observed rate.
	return math.Max(0, math.Min(p, (center-half)/denom)), math.Min(1, math.Max(p, (center+half)/denom))
}
