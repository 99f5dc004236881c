package espn

import "strings"

type teamRef struct {
	ID           string
	Name         string
	Abbreviation string
	Logo         string
	Score        *int
}

// TeamLocator finds the home and away team of a summary payload. Locators are tried in order
// and the first one reporting ok wins.
type TeamLocator interface {
	Name() string
	Locate(doc map[string]any) (home, away teamRef, ok bool)
}

func DefaultLocators() []TeamLocator {
	return []TeamLocator{
		formLocator{},
		headerLocator{},
		boxscoreLocator{},
	}
}

// formLocator reads boxscore.form, where the first entry is the home side.
type formLocator struct{}

func (formLocator) Name() string { return "boxscore.form" }

func (formLocator) Locate(doc map[string]any) (teamRef, teamRef, bool) {
	form := asObjects(dig(doc, "boxscore", "form"))
	if len(form) < 2 {
		return teamRef{}, teamRef{}, false
	}
	home := teamFromNode(form[0]["team"])
	away := teamFromNode(form[1]["team"])
	return home, away, validPair(home, away)
}

// headerLocator reads header.competitions[0].competitors keyed by homeAway.
type headerLocator struct{}

func (headerLocator) Name() string { return "header.competitors" }

func (headerLocator) Locate(doc map[string]any) (teamRef, teamRef, bool) {
	var home, away teamRef
	for _, competitor := range asObjects(dig(doc, "header", "competitions", 0, "competitors")) {
		ref := teamFromNode(competitor["team"])
		ref.Score = asScore(competitor["score"])
		switch strings.ToLower(asString(competitor["homeAway"])) {
		case "home":
			home = ref
		case "away":
			away = ref
		}
	}
	return home, away, validPair(home, away)
}

// boxscoreLocator derives the pair from boxscore.teams, then rosters, using homeAway
// and finally list position.
type boxscoreLocator struct{}

func (boxscoreLocator) Name() string { return "boxscore.teams" }

func (boxscoreLocator) Locate(doc map[string]any) (teamRef, teamRef, bool) {
	for _, blocks := range [][]object{
		asObjects(dig(doc, "boxscore", "teams")),
		asObjects(doc["rosters"]),
	} {
		if home, away, ok := pairFromBlocks(blocks); ok {
			return home, away, true
		}
	}
	return teamRef{}, teamRef{}, false
}

func pairFromBlocks(blocks []object) (teamRef, teamRef, bool) {
	if len(blocks) < 2 {
		return teamRef{}, teamRef{}, false
	}
	var home, away teamRef
	for _, block := range blocks {
		switch strings.ToLower(asString(block["homeAway"])) {
		case "home":
			home = teamFromNode(block["team"])
		case "away":
			away = teamFromNode(block["team"])
		}
	}
	if validPair(home, away) {
		return home, away, true
	}
	home = teamFromNode(blocks[0]["team"])
	away = teamFromNode(blocks[1]["team"])
	return home, away, validPair(home, away)
}

func teamFromNode(node any) teamRef {
	team := asObject(node)
	if team == nil {
		return teamRef{}
	}
	logo := asString(team["logo"])
	if logo == "" {
		logo = asString(dig(team, "logos", 0, "href"))
	}
	name := asString(team["displayName"])
	if name == "" {
		name = asString(team["name"])
	}
	return teamRef{
		ID:           asString(team["id"]),
		Name:         name,
		Abbreviation: asString(team["abbreviation"]),
		Logo:         logo,
	}
}

func validPair(home, away teamRef) bool {
	return home.ID != "" && away.ID != "" && home.ID != away.ID
}
