package market

import "github.com/fortuna/apollo/internal/store"

// LineDrift summarizes how a market line moved between its first and most
// recent snapshots. It is derived on demand and never stored.
type LineDrift struct {
	Open      float64 `json:"open"`
	Current   float64 `json:"current"`
	Drift     float64 `json:"drift"`
	PctChange float64 `json:"pct_change"`
}

// ComputeLineDrift summarizes a chronologically ordered snapshot sequence.
// It returns nil for an empty sequence: "no line history" is a distinct
// condition from "the line has not moved", and callers must not conflate
// them.
func ComputeLineDrift(snapshots []store.OddsSnapshot) *LineDrift {
	if len(snapshots) == 0 {
		return nil
	}

	open := snapshots[0].LineValue
	current := snapshots[len(snapshots)-1].LineValue
	drift := current - open

	pct := 0.0
	if open != 0 {
		pct = drift / open
	}

	return &LineDrift{
		Open:      open,
		Current:   current,
		Drift:     drift,
		PctChange: pct,
	}
}
