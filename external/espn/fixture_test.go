package espn

import (
	"strconv"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func teamNode(id, name, abbr string) map[string]any {
	return map[string]any{
		"id":           id,
		"displayName":  name,
		"abbreviation": abbr,
		"logo":         "https://a.espncdn.com/i/teamlogos/soccer/500/" + id + ".png",
	}
}

func rosterNode(teamID, name, homeAway string, firstPlayerID int) map[string]any {
	entries := make([]any, 0, 11)
	for i := 0; i < 11; i++ {
		id := strconv.Itoa(firstPlayerID + i)
		entries = append(entries, map[string]any{
			"jersey":    strconv.Itoa(i + 1),
			"starter":   i < 10,
			"active":    true,
			"subbedIn":  i == 10,
			"subbedOut": i == 9,
			"athlete": map[string]any{
				"id":       id,
				"fullName": "Player " + id,
				"headshot": map[string]any{"href": "https://img/" + id + ".png"},
			},
			"position": map[string]any{"displayName": "Forward", "abbreviation": "F"},
			"stats": []any{
				map[string]any{"name": "totalGoals", "value": 1, "displayValue": "1"},
				map[string]any{"name": "yellowCards", "displayValue": "0"},
			},
		})
	}
	return map[string]any{
		"homeAway": homeAway,
		"team":     map[string]any{"id": teamID, "displayName": name},
		"roster":   entries,
	}
}

// summaryDoc builds a summary payload with boxscore.form, header competitors, boxscore.teams
// and two eleven-player rosters. Tests delete parts to exercise fallbacks.
func summaryDoc() map[string]any {
	return map[string]any{
		"boxscore": map[string]any{
			"form": []any{
				map[string]any{"team": teamNode("83", "Barcelona", "BAR")},
				map[string]any{"team": teamNode("86", "Real Madrid", "RMA")},
			},
			"teams": []any{
				map[string]any{
					"homeAway": "home",
					"team":     teamNode("83", "Barcelona", "BAR"),
					"statistics": []any{
						map[string]any{"name": "possessionPct", "displayValue": "61.4%"},
						map[string]any{"name": "foulsCommitted", "value": 11, "displayValue": "11"},
						map[string]any{"name": "wonCorners", "displayValue": "7"},
					},
				},
				map[string]any{
					"homeAway": "away",
					"team":     teamNode("86", "Real Madrid", "RMA"),
					"statistics": []any{
						map[string]any{"name": "possessionPct", "value": 38.6, "displayValue": "38.6"},
						map[string]any{"name": "wonCorners", "value": 3, "displayValue": "3"},
					},
				},
			},
		},
		"rosters": []any{
			rosterNode("83", "Barcelona", "home", 1000),
			rosterNode("86", "Real Madrid", "away", 2000),
		},
		"header": map[string]any{
			"competitions": []any{
				map[string]any{
					"date":   "2025-06-14T19:00Z",
					"status": map[string]any{"type": map[string]any{"name": "STATUS_FULL_TIME"}},
					"competitors": []any{
						map[string]any{"homeAway": "home", "score": "2", "team": teamNode("83", "Barcelona", "BAR")},
						map[string]any{"homeAway": "away", "score": "1", "team": teamNode("86", "Real Madrid", "RMA")},
					},
					"details": []any{
						map[string]any{
							"clock":       map[string]any{"value": 1530.0, "displayValue": "26'"},
							"team":        map[string]any{"id": "83"},
							"type":        map[string]any{"text": "Goal"},
							"scoringPlay": true,
							"athletesInvolved": []any{
								map[string]any{"id": "1009", "displayName": "Player 1009"},
							},
						},
						map[string]any{
							"clock":       map[string]any{"value": 4020.0},
							"team":        map[string]any{"id": "86"},
							"type":        map[string]any{"text": "Yellow Card"},
							"yellowCard":  true,
							"athletesInvolved": []any{
								map[string]any{"id": "2003", "fullName": "Player 2003"},
							},
						},
					},
				},
			},
		},
		"gameInfo": map[string]any{"venue": map[string]any{"fullName": "Estadi Olimpic"}},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := jsoniter.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}
