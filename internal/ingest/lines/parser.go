package lines

import (
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/apollo/internal/store"
)

// ParseOddsBoard extracts one snapshot per odds-board row. Each row names
// a game, a bookmaker, a market, the posted line, and American odds; rows
// missing any of those are skipped. Timestamps are left zero for the
// store to assign at insert time.
func ParseOddsBoard(doc *goquery.Document) []store.OddsSnapshot {
	var snapshots []store.OddsSnapshot

	doc.Find("table.odds-board tbody tr").Each(func(i int, row *goquery.Selection) {
		gameID, _ := row.Attr("data-game-id")
		gameID = strings.TrimSpace(gameID)
		if gameID == "" {
			return
		}

		bookmaker := strings.TrimSpace(row.Find("td.bookmaker").First().Text())
		marketType := strings.ToLower(strings.TrimSpace(row.Find("td.market").First().Text()))
		if bookmaker == "" || marketType == "" {
			return
		}

		line, err := strconv.ParseFloat(strings.TrimSpace(row.Find("td.line").First().Text()), 64)
		if err != nil {
			return
		}

		oddsText := strings.TrimPrefix(strings.TrimSpace(row.Find("td.odds").First().Text()), "+")
		odds, err := strconv.Atoi(oddsText)
		if err != nil {
			return
		}

		snapshots = append(snapshots, store.OddsSnapshot{
			GameID:       gameID,
			Bookmaker:    bookmaker,
			MarketType:   marketType,
			LineValue:    line,
			OddsAmerican: odds,
		})
	})

	log.Printf("[lines] parsed %d snapshots from odds board", len(snapshots))
	return snapshots
}

// ParseOddsBoardHTML is a convenience wrapper over a raw HTML string.
func ParseOddsBoardHTML(html string) ([]store.OddsSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return ParseOddsBoard(doc), nil
}
