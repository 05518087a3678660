package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyInjuries_OutZeroesMinutes(t *testing.T) {
	projections := []MinutesProjection{{PlayerID: 1, ProjMin: 34.5}}
	feed := []InjuryEntry{{PlayerID: 1, Status: StatusOut}}

	adjusted := ApplyInjuries(projections, feed)
	require.Len(t, adjusted, 1)
	assert.Equal(t, 0.0, adjusted[0].ProjMin)
}

func TestApplyInjuries_QuestionableScalesByProbability(t *testing.T) {
	projections := []MinutesProjection{{PlayerID: 1, ProjMin: 30.0}}
	feed := []InjuryEntry{{PlayerID: 1, Status: StatusQuestionable, Probability: 0.7}}

	adjusted := ApplyInjuries(projections, feed)
	require.Len(t, adjusted, 1)
	assert.InDelta(t, 21.0, adjusted[0].ProjMin, 1e-9)
}

func TestApplyInjuries_UnknownStatusPassesThrough(t *testing.T) {
	projections := []MinutesProjection{{PlayerID: 1, ProjMin: 28.0}}
	feed := []InjuryEntry{{PlayerID: 1, Status: "DAY_TO_DAY", Probability: 0.5}}

	adjusted := ApplyInjuries(projections, feed)
	require.Len(t, adjusted, 1)
	assert.Equal(t, 28.0, adjusted[0].ProjMin)
}

func TestApplyInjuries_PlayerNotInFeedUnchanged(t *testing.T) {
	projections := []MinutesProjection{
		{PlayerID: 1, ProjMin: 30.0},
		{PlayerID: 2, ProjMin: 25.0},
	}
	feed := []InjuryEntry{{PlayerID: 1, Status: StatusOut}}

	adjusted := ApplyInjuries(projections, feed)
	require.Len(t, adjusted, 2)
	assert.Equal(t, 0.0, adjusted[0].ProjMin)
	assert.Equal(t, 25.0, adjusted[1].ProjMin)
}

func TestApplyInjuries_NoRenormalization(t *testing.T) {
	// Teammates do not absorb an injured player's minutes.
	projections := []MinutesProjection{
		{PlayerID: 1, Team: "LAL", ProjMin: 36.0},
		{PlayerID: 2, Team: "LAL", ProjMin: 20.0},
	}
	feed := []InjuryEntry{{PlayerID: 1, Status: StatusOut}}

	adjusted := ApplyInjuries(projections, feed)
	assert.Equal(t, 20.0, adjusted[1].ProjMin)
}

func TestApplyInjuries_EmptyFeed(t *testing.T) {
	projections := []MinutesProjection{{PlayerID: 1, ProjMin: 30.0}}

	adjusted := ApplyInjuries(projections, nil)
	require.Len(t, adjusted, 1)
	assert.Equal(t, 30.0, adjusted[0].ProjMin)
}
