package querybuilder

import "testing"

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("id", "name").
		Values("83", "Barcelona").
		Values("86", "Real Madrid").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "83" || args[3] != "Real Madrid" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("id", "name").Values("83").ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("match_events").
		Where(Eq("match_id", "401"), Eq("source", "espn")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM match_events WHERE match_id = $1 AND source = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "401" || args[1] != "espn" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder_RequiresCondition(t *testing.T) {
	if _, _, err := DeleteFrom("match_events").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditioned delete")
	}
}

type rowModel struct {
	ID      string  `db:"id"`
	Name    string  `db:"name,omitempty"`
	Score   *int    `db:"score"`
	Skipped string  `db:"-"`
	hidden  string
	Ratio   float64 `db:"ratio"`
}

func TestInsertModel(t *testing.T) {
	score := 2
	query, args, err := InsertModel("matches", rowModel{ID: "401", Name: "x", Score: &score, Ratio: 0.5}, "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO matches (id, name, score, ratio) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "401" || args[3] != 0.5 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	query, args, err := InsertModels("matches", []rowModel{{ID: "1"}, {ID: "2"}}, "")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO matches (id, name, score, ratio) VALUES ($1, $2, $3, $4), ($5, $6, $7, $8)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 8 || args[4] != "2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[rowModel]("matches", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
