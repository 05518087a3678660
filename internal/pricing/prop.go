package pricing

// Sides of an over/under market.
const (
	SideOver  = "OVER"
	SideUnder = "UNDER"
)

// SideQuote holds one side's model probability and, when the book posted a
// price for that side, the price and EV against it. Book fields stay nil
// when no market price exists; a missing price is never rendered as zero.
type SideQuote struct {
	Probability  float64  `json:"probability"`
	FairDecimal  float64  `json:"fair_decimal"`
	BookAmerican *int     `json:"book_american,omitempty"`
	BookDecimal  *float64 `json:"book_decimal,omitempty"`
	EVPercent    *float64 `json:"ev_percent,omitempty"`
}

// Recommendation names the side worth taking, if any. Positive is true
// only when the best side's EV is strictly greater than zero; otherwise
// the best side is still reported, with the caveat carried in Positive.
type Recommendation struct {
	Side      string  `json:"side"`
	EVPercent float64 `json:"ev_percent"`
	Positive  bool    `json:"positive"`
}

// PropEvaluation is the full pricing of one player prop under the Poisson
// model.
type PropEvaluation struct {
	Line           float64         `json:"line"`
	ExpectedRate   float64         `json:"expected_rate"`
	Over           SideQuote       `json:"over"`
	Under          SideQuote       `json:"under"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// EvaluateProp prices both sides of a prop line against an expected rate.
// overAmerican and underAmerican are the book's posted prices; either may
// be nil when the book has no price for that side. With no price on either
// side there is no recommendation at all.
func EvaluateProp(line, expectedRate float64, overAmerican, underAmerican *int) PropEvaluation {
	overProb := PoissonOverProbability(line, expectedRate)
	underProb := 1.0 - overProb

	eval := PropEvaluation{
		Line:         line,
		ExpectedRate: expectedRate,
		Over:         quoteSide(overProb, overAmerican),
		Under:        quoteSide(underProb, underAmerican),
	}
	eval.Recommendation = recommend(eval.Over, eval.Under)
	return eval
}

func quoteSide(prob float64, american *int) SideQuote {
	quote := SideQuote{
		Probability: prob,
		FairDecimal: FairDecimal(prob),
	}
	if american != nil {
		decimal := AmericanToDecimal(*american)
		ev := EVPercent(prob, decimal)
		quote.BookAmerican = american
		quote.BookDecimal = &decimal
		quote.EVPercent = &ev
	}
	return quote
}

// recommend picks the priced side with the higher EV. A side without a
// book price cannot be recommended.
func recommend(over, under SideQuote) *Recommendation {
	var best *Recommendation
	if over.EVPercent != nil {
		best = &Recommendation{Side: SideOver, EVPercent: *over.EVPercent}
	}
	if under.EVPercent != nil && (best == nil || *under.EVPercent > best.EVPercent) {
		best = &Recommendation{Side: SideUnder, EVPercent: *under.EVPercent}
	}
	if best == nil {
		return nil
	}
	best.Positive = best.EVPercent > 0
	return best
}
