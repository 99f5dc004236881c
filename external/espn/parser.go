package espn

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-etl/internal/domain/match"
	"github.com/riskibarqy/matchday-etl/internal/domain/matchevent"
	"github.com/riskibarqy/matchday-etl/internal/domain/playerstats"
	"github.com/riskibarqy/matchday-etl/internal/domain/statvalue"
	"github.com/riskibarqy/matchday-etl/internal/domain/teamstats"
	"github.com/riskibarqy/matchday-etl/internal/usecase"
)

type Parser struct {
	locators []TeamLocator
}

// NewParser uses DefaultLocators when none are given.
func NewParser(locators ...TeamLocator) *Parser {
	if len(locators) == 0 {
		locators = DefaultLocators()
	}
	return &Parser{locators: locators}
}

func (p *Parser) ParseScoreboard(raw []byte) ([]string, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return nil, crerr.Wrap(err, "decode scoreboard")
	}

	events := asObjects(doc["events"])
	ids := make([]string, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, event := range events {
		id := asString(event["id"])
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (p *Parser) ParseSummary(matchID string, raw []byte) (usecase.MatchRecord, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return usecase.MatchRecord{}, crerr.Wrapf(err, "decode summary match_id=%s", matchID)
	}

	home, away, locatedBy, ok := p.locate(doc)
	if !ok {
		return usecase.MatchRecord{}, fmt.Errorf("%w: match_id=%s tried=%s", usecase.ErrUnrecognizedSchema, matchID, p.locatorNames())
	}

	competition := asObject(dig(doc, "header", "competitions", 0))
	date := asString(dig(doc, "game", "date"))
	if date == "" {
		date = asString(competition["date"])
	}

	info := match.Info{
		MatchID:    matchID,
		Date:       parseDate(date),
		HomeTeam:   home.Name,
		AwayTeam:   away.Name,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		HomeScore:  home.Score,
		AwayScore:  away.Score,
		Status:     match.NormalizeStatus(asString(dig(competition, "status", "type", "name"))),
		Venue:      asString(dig(doc, "gameInfo", "venue", "fullName")),
	}
	if info.HomeScore == nil || info.AwayScore == nil {
		info.HomeScore, info.AwayScore = scoresFromHeader(competition, home.ID, away.ID)
	}

	sides := map[string]string{home.ID: "home", away.ID: "away"}
	return usecase.MatchRecord{
		Info:      info,
		Teams:     parseTeamStats(matchID, doc, sides),
		Players:   parsePlayerStats(matchID, doc, sides),
		Events:    parseEvents(matchID, competition),
		LocatedBy: locatedBy,
	}, nil
}

func (p *Parser) locate(doc object) (teamRef, teamRef, string, bool) {
	for _, locator := range p.locators {
		if home, away, ok := locator.Locate(doc); ok {
			return home, away, locator.Name(), true
		}
	}
	return teamRef{}, teamRef{}, "", false
}

func (p *Parser) locatorNames() string {
	names := make([]string, 0, len(p.locators))
	for _, locator := range p.locators {
		names = append(names, locator.Name())
	}
	return strings.Join(names, ",")
}

func scoresFromHeader(competition object, homeID, awayID string) (*int, *int) {
	var home, away *int
	for _, competitor := range asObjects(competition["competitors"]) {
		switch asString(dig(competitor, "team", "id")) {
		case homeID:
			home = asScore(competitor["score"])
		case awayID:
			away = asScore(competitor["score"])
		}
	}
	return home, away
}

func parseTeamStats(matchID string, doc object, sides map[string]string) []teamstats.TeamStat {
	blocks := asObjects(dig(doc, "boxscore", "teams"))
	out := make([]teamstats.TeamStat, 0, len(blocks))
	for _, block := range blocks {
		ref := teamFromNode(block["team"])
		if ref.ID == "" {
			continue
		}
		out = append(out, teamstats.TeamStat{
			MatchID:      matchID,
			TeamID:       ref.ID,
			TeamName:     ref.Name,
			Abbreviation: ref.Abbreviation,
			Logo:         ref.Logo,
			HomeAway:     homeAway(block, ref.ID, sides),
			Stats:        statMap(block["statistics"]),
		})
	}
	return out
}

func parsePlayerStats(matchID string, doc object, sides map[string]string) []playerstats.PlayerStat {
	rosters := asObjects(doc["rosters"])
	out := make([]playerstats.PlayerStat, 0, len(rosters)*20)
	for _, roster := range rosters {
		ref := teamFromNode(roster["team"])
		side := homeAway(roster, ref.ID, sides)
		for _, entry := range asObjects(roster["roster"]) {
			athlete := asObject(entry["athlete"])
			playerID := asString(athlete["id"])
			if playerID == "" {
				continue
			}
			out = append(out, playerstats.PlayerStat{
				MatchID:      matchID,
				PlayerID:     playerID,
				TeamID:       ref.ID,
				TeamName:     ref.Name,
				HomeAway:     side,
				FullName:     asString(athlete["fullName"]),
				Jersey:       asString(entry["jersey"]),
				Starter:      asBool(entry["starter"]),
				Active:       asBool(entry["active"]),
				SubbedIn:     asBool(entry["subbedIn"]),
				SubbedOut:    asBool(entry["subbedOut"]),
				Position:     asString(dig(entry, "position", "displayName")),
				PositionAbbr: asString(dig(entry, "position", "abbreviation")),
				Headshot:     asString(dig(athlete, "headshot", "href")),
				Stats:        statMap(entry["stats"]),
			})
		}
	}
	return out
}

// statMap keys stats by name, taking the numeric value when present and the display string otherwise.
func statMap(node any) map[string]any {
	stats := asObjects(node)
	out := make(map[string]any, len(stats))
	for _, stat := range stats {
		name := asString(stat["name"])
		if name == "" {
			continue
		}
		out[name] = statvalue.Pick(stat["value"], stat["displayValue"])
	}
	return out
}

func homeAway(block object, teamID string, sides map[string]string) string {
	if side := strings.ToLower(asString(block["homeAway"])); side != "" {
		return side
	}
	return sides[teamID]
}

func parseEvents(matchID string, competition object) []matchevent.Event {
	details := asObjects(competition["details"])
	out := make([]matchevent.Event, 0, len(details))
	for _, detail := range details {
		minute := int(statvalue.Float(dig(detail, "clock", "value")) / 60)
		teamID := asString(dig(detail, "team", "id"))
		for _, athlete := range asObjects(detail["athletesInvolved"]) {
			name := asString(athlete["fullName"])
			if name == "" {
				name = asString(athlete["displayName"])
			}
			out = append(out, matchevent.Event{
				MatchID:      matchID,
				Sequence:     len(out) + 1,
				TeamID:       teamID,
				PlayerID:     asString(athlete["id"]),
				PlayerName:   name,
				Type:         asString(dig(detail, "type", "text")),
				Minute:       minute,
				IsGoal:       asBool(detail["scoringPlay"]),
				IsYellowCard: asBool(detail["yellowCard"]),
				IsRedCard:    asBool(detail["redCard"]),
				IsPenalty:    asBool(detail["penaltyKick"]),
				IsOwnGoal:    asBool(detail["ownGoal"]),
				IsShootout:   asBool(detail["shootout"]),
			})
		}
	}
	return out
}
