package injuries

import (
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/apollo/internal/model"
)

// Default play probabilities when the report lists a status but no
// explicit percentage.
var defaultProbability = map[string]float64{
	model.StatusOut:          0.0,
	model.StatusQuestionable: 0.7,
}

// ParseReport extracts injury entries from a report document. Rows carry
// the player ID in a data attribute, the status in a status cell, and an
// optional play percentage; rows without a usable player ID are skipped.
func ParseReport(doc *goquery.Document) []model.InjuryEntry {
	var entries []model.InjuryEntry

	doc.Find("table.injury-report tbody tr").Each(func(i int, row *goquery.Selection) {
		idAttr, ok := row.Attr("data-player-id")
		if !ok {
			idAttr, _ = row.Find("[data-player-id]").First().Attr("data-player-id")
		}
		playerID, err := strconv.Atoi(strings.TrimSpace(idAttr))
		if err != nil || playerID == 0 {
			return
		}

		status := strings.ToUpper(strings.TrimSpace(row.Find("td.status").First().Text()))
		if status == "" {
			return
		}

		entries = append(entries, model.InjuryEntry{
			PlayerID:    playerID,
			Status:      status,
			Probability: playProbability(row, status),
		})
	})

	log.Printf("[injuries] parsed %d entries from report", len(entries))
	return entries
}

// playProbability reads the report's play percentage cell ("70%" or
// "0.7"), falling back to the status default.
func playProbability(row *goquery.Selection, status string) float64 {
	text := strings.TrimSpace(row.Find("td.play-probability").First().Text())
	if text != "" {
		if p, ok := parseProbability(text); ok {
			return p
		}
	}
	return defaultProbability[status]
}

func parseProbability(text string) (float64, bool) {
	isPercent := strings.HasSuffix(text, "%")
	text = strings.TrimSuffix(text, "%")

	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	if isPercent || v > 1 {
		v /= 100
	}
	if v < 0 || v > 1 {
		return 0, false
	}
	return v, true
}
