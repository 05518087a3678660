package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// PoissonOverProbability is the chance a Poisson(lambda) count exceeds a
// prop line. Fractional lines resolve through the ceiling: over 22.5 means
// at least 23, so P(over) = 1 - CDF(ceil(L) - 1). A line whose ceiling is
// zero or negative is certain to go over.
func PoissonOverProbability(line, lambda float64) float64 {
	threshold := math.Ceil(line)
	if threshold <= 0 {
		return 1.0
	}

	dist := distuv.Poisson{Lambda: lambda}
	return 1.0 - dist.CDF(threshold-1)
}
