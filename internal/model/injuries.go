package model

// ApplyInjuries adjusts projected minutes for the players referenced by the
// injury feed and passes everyone else through unchanged.
//
// OUT zeroes a player's minutes regardless of probability. QUESTIONABLE
// scales minutes by the feed's play probability. Any other status is left
// alone. Minutes removed from an injured player are deliberately not
// redistributed to teammates, and team totals are not renormalized to a
// 240-minute cap.
func ApplyInjuries(projections []MinutesProjection, feed []InjuryEntry) []MinutesProjection {
	byPlayer := make(map[int]InjuryEntry, len(feed))
	for _, entry := range feed {
		byPlayer[entry.PlayerID] = entry
	}

	adjusted := make([]MinutesProjection, len(projections))
	for i, p := range projections {
		entry, ok := byPlayer[p.PlayerID]
		if ok {
			switch entry.Status {
			case StatusOut:
				p.ProjMin = 0
			case StatusQuestionable:
				p.ProjMin *= entry.Probability
			}
		}
		adjusted[i] = p
	}
	return adjusted
}
