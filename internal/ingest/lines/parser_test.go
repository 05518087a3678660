package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boardFixture = `
<html><body>
<table class="odds-board">
  <tbody>
    <tr data-game-id="401585601">
      <td class="bookmaker">demo_book</td>
      <td class="market">Total</td>
      <td class="line">229.5</td>
      <td class="odds">-110</td>
    </tr>
    <tr data-game-id="401585601">
      <td class="bookmaker">other_book</td>
      <td class="market">total</td>
      <td class="line">228.0</td>
      <td class="odds">+100</td>
    </tr>
    <tr data-game-id="">
      <td class="bookmaker">demo_book</td>
      <td class="market">total</td>
      <td class="line">230.0</td>
      <td class="odds">-110</td>
    </tr>
    <tr data-game-id="401585602">
      <td class="bookmaker">demo_book</td>
      <td class="market">total</td>
      <td class="line">off</td>
      <td class="odds">-110</td>
    </tr>
    <tr data-game-id="401585603">
      <td class="bookmaker">demo_book</td>
      <td class="market">total</td>
      <td class="line">215.5</td>
      <td class="odds">EVEN</td>
    </tr>
  </tbody>
</table>
</body></html>`

func TestParseOddsBoardHTML(t *testing.T) {
	snapshots, err := ParseOddsBoardHTML(boardFixture)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	first := snapshots[0]
	assert.Equal(t, "401585601", first.GameID)
	assert.Equal(t, "demo_book", first.Bookmaker)
	// Market names are normalized to lowercase.
	assert.Equal(t, "total", first.MarketType)
	assert.Equal(t, 229.5, first.LineValue)
	assert.Equal(t, -110, first.OddsAmerican)
	// The store assigns timestamps at insert time.
	assert.True(t, first.Timestamp.IsZero())

	second := snapshots[1]
	assert.Equal(t, "other_book", second.Bookmaker)
	assert.Equal(t, 100, second.OddsAmerican)
}

func TestParseOddsBoardHTML_NoBoard(t *testing.T) {
	snapshots, err := ParseOddsBoardHTML("<html><body><p>no lines today</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}
