package espn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fortuna/apollo/internal/model"
)

// ESPN stat labels for dynamic parsing. Label lookup is more robust than
// hardcoded column indices across API updates.
const (
	statLabelMinutes = "MIN"
	statLabelPoints  = "PTS"
)

// ParseScoreboardGameIDs extracts the event IDs from a scoreboard payload.
func ParseScoreboardGameIDs(scoreboardData map[string]interface{}) []string {
	events := extractArray(scoreboardData, "events")

	ids := make([]string, 0, len(events))
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}
		if id := extractString(event, "id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ParseSummaryBoxScore normalizes one game summary payload into the
// pipeline's box score rows. Team final scores come from the header
// competition; player minutes and points from the label-indexed stat
// arrays. Players marked did-not-play are skipped.
func ParseSummaryBoxScore(summaryData map[string]interface{}) ([]model.BoxScoreRow, error) {
	gameDate, teamScores, err := parseHeader(summaryData)
	if err != nil {
		return nil, err
	}

	boxscore := extractMap(summaryData, "boxscore")
	if len(boxscore) == 0 {
		return nil, fmt.Errorf("no boxscore data found")
	}

	playersData := extractArray(boxscore, "players")
	if len(playersData) == 0 {
		return nil, fmt.Errorf("no players data in boxscore")
	}

	var rows []model.BoxScoreRow
	for _, teamDataInterface := range playersData {
		teamData, ok := teamDataInterface.(map[string]interface{})
		if !ok {
			continue
		}
		team := extractMap(teamData, "team")
		teamAbbr := strings.ToUpper(extractString(team, "abbreviation"))

		statistics := extractArray(teamData, "statistics")
		if len(statistics) == 0 {
			continue
		}
		statGroup, ok := statistics[0].(map[string]interface{})
		if !ok {
			continue
		}

		// Build stat label -> index mapping for dynamic parsing
		statIndex := make(map[string]int)
		for i, nameInterface := range extractArray(statGroup, "names") {
			if name, ok := nameInterface.(string); ok {
				statIndex[name] = i
			}
		}

		for _, athleteInterface := range extractArray(statGroup, "athletes") {
			athleteData, ok := athleteInterface.(map[string]interface{})
			if !ok {
				continue
			}
			if didNotPlay, ok := athleteData["didNotPlay"].(bool); ok && didNotPlay {
				continue
			}

			row, err := parseAthleteRow(athleteData, statIndex)
			if err != nil {
				continue
			}
			row.GameDate = gameDate
			row.Team = teamAbbr
			row.TeamPoints = teamScores[teamAbbr]
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// parseHeader pulls the game date and final team scores from the summary
// header competition.
func parseHeader(summaryData map[string]interface{}) (time.Time, map[string]int, error) {
	header := extractMap(summaryData, "header")
	competitions := extractArray(header, "competitions")
	if len(competitions) == 0 {
		return time.Time{}, nil, fmt.Errorf("no competitions in summary header")
	}
	comp, ok := competitions[0].(map[string]interface{})
	if !ok {
		return time.Time{}, nil, fmt.Errorf("malformed competition in summary header")
	}

	gameDate := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr := extractString(comp, "date"); len(dateStr) >= 10 {
		if parsed, err := time.Parse("2006-01-02", dateStr[:10]); err == nil {
			gameDate = parsed
		}
	}

	scores := make(map[string]int)
	for _, competitorInterface := range extractArray(comp, "competitors") {
		competitor, ok := competitorInterface.(map[string]interface{})
		if !ok {
			continue
		}
		team := extractMap(competitor, "team")
		abbr := strings.ToUpper(extractString(team, "abbreviation"))
		if abbr == "" {
			continue
		}
		scores[abbr] = parseInt(competitor["score"])
	}

	return gameDate, scores, nil
}

func parseAthleteRow(athleteData map[string]interface{}, statIndex map[string]int) (model.BoxScoreRow, error) {
	athlete := extractMap(athleteData, "athlete")
	playerID, err := strconv.Atoi(extractString(athlete, "id"))
	if err != nil {
		return model.BoxScoreRow{}, fmt.Errorf("athlete id: %w", err)
	}

	pos := extractString(extractMap(athlete, "position"), "abbreviation")
	if pos == "" {
		pos = "?"
	}

	stats := extractArray(athleteData, "stats")
	statAt := func(label string) string {
		idx, ok := statIndex[label]
		if !ok || idx >= len(stats) {
			return ""
		}
		s, _ := stats[idx].(string)
		return s
	}

	return model.BoxScoreRow{
		PlayerID:   playerID,
		PlayerName: extractString(athlete, "displayName"),
		Pos:        pos,
		Minutes:    parseMinutes(statAt(statLabelMinutes)),
		Points:     float64(parseStatValue(statAt(statLabelPoints))),
	}, nil
}

// parseMinutes handles ESPN minute strings: "34", "34:21", or junk.
func parseMinutes(minutesStr string) float64 {
	minutesStr = strings.TrimSpace(minutesStr)
	if minutesStr == "" {
		return 0
	}

	if m, sec, ok := strings.Cut(minutesStr, ":"); ok {
		minutes, err1 := strconv.ParseFloat(m, 64)
		seconds, err2 := strconv.ParseFloat(sec, 64)
		if err1 != nil || err2 != nil {
			return 0
		}
		return minutes + seconds/60.0
	}

	minutes, err := strconv.ParseFloat(minutesStr, 64)
	if err != nil {
		return 0
	}
	return minutes
}

func parseStatValue(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func parseInt(v interface{}) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case string:
		n, _ := strconv.Atoi(value)
		return n
	case int:
		return value
	}
	return 0
}

func extractString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if value, ok := m[key].(string); ok {
		return value
	}
	return ""
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	if value, ok := m[key].(map[string]interface{}); ok {
		return value
	}
	return nil
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if m == nil {
		return nil
	}
	if value, ok := m[key].([]interface{}); ok {
		return value
	}
	return nil
}
