// Package pricing turns model projections into probabilities, fair prices,
// and expected value against posted bookmaker odds. It carries two
// distributional models: Poisson for discrete player props and a Normal
// approximation for continuous game totals.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// AmericanToDecimal converts signed American odds to decimal (payout
// multiple) form: -110 -> 1.9091, +150 -> 2.5.
func AmericanToDecimal(american int) float64 {
	if american < 0 {
		return 1 + 100/math.Abs(float64(american))
	}
	return 1 + float64(american)/100.0
}

// ParseAmerican parses a user-supplied American odds string ("-110",
// "+150", "150"). The second return is false for anything that is not a
// legal signed integer; callers must treat that as "no market price", not
// as a zero.
func ParseAmerican(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	odds, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, false
	}
	return odds, true
}

// FairDecimal is the no-vig decimal price implied by a probability: 1/p,
// infinite when the outcome is impossible.
func FairDecimal(prob float64) float64 {
	if prob <= 0 {
		return math.Inf(1)
	}
	return 1 / prob
}

// EVPercent is the expected return per unit staked, as a percentage:
// (p*decimal - 1) * 100.
func EVPercent(prob, decimal float64) float64 {
	return (prob*decimal - 1) * 100
}
