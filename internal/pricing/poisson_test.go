package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoissonOverProbability_HalfLine(t *testing.T) {
	// Over 24.5 means 25 or more; threshold is ceil(24.5) = 25.
	p := PoissonOverProbability(24.5, 25.0)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)

	// A rate far above the line makes the over near-certain.
	assert.Greater(t, PoissonOverProbability(10.5, 30.0), 0.99)

	// A rate far below makes it near-impossible.
	assert.Less(t, PoissonOverProbability(30.5, 10.0), 0.01)
}

func TestPoissonOverProbability_WholeLine(t *testing.T) {
	// Over 25.0 and over 24.5 share threshold ceil(L)=25: both price
	// P(X >= 25), so exactly 25 cashes either line.
	half := PoissonOverProbability(24.5, 25.0)
	whole := PoissonOverProbability(25.0, 25.0)
	assert.Equal(t, half, whole)

	above := PoissonOverProbability(25.5, 25.0)
	assert.Less(t, above, whole)
}

func TestPoissonOverProbability_NonPositiveThreshold(t *testing.T) {
	// Any non-negative count clears a line at or below zero.
	assert.Equal(t, 1.0, PoissonOverProbability(0, 5.0))
	assert.Equal(t, 1.0, PoissonOverProbability(-0.5, 5.0))
	assert.Equal(t, 1.0, PoissonOverProbability(-3, 5.0))
}

func TestPoissonOverProbability_MonotoneInRate(t *testing.T) {
	prev := 0.0
	for _, lambda := range []float64{5, 10, 15, 20, 25, 30} {
		p := PoissonOverProbability(19.5, lambda)
		assert.Greater(t, p, prev, "lambda %.0f", lambda)
		prev = p
	}
}
