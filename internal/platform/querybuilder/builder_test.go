package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "position").
		From("team_rosters").
		Where(Eq("team_id", int64(3)), IsNull("end_date")).
		OrderBy("position").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, position FROM team_rosters WHERE team_id = $1 AND end_date IS NULL ORDER BY position LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_JoinRangeAndLock(t *testing.T) {
	query, args, err := Select("r.id").
		From("team_rosters r").
		Join("JOIN teams t ON t.id = r.team_id").
		Where(
			Lte("r.effective_date", "2025-04-02"),
			Or(IsNull("r.end_date"), Gt("r.end_date", "2025-04-01")),
			InInt64("r.player_id", []int64{1, 2}),
		).
		ForUpdate(true).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT r.id FROM team_rosters r JOIN teams t ON t.id = r.team_id " +
		"WHERE r.effective_date <= $1 AND (r.end_date IS NULL OR r.end_date > $2) AND r.player_id IN ($3, $4) FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	wantArgs := []any{"2025-04-02", "2025-04-01", int64(1), int64(2)}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInCondition_EmptyMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("players").Where(InInt64("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("players").
		Columns("mlb_id", "name").
		Values(int64(660271), "Shohei Ohtani").
		Values(int64(592450), "Aaron Judge").
		Suffix("ON CONFLICT (mlb_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (mlb_id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (mlb_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != int64(592450) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("players").Columns("mlb_id", "name").Values(int64(1)).ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("team_rosters").
		Set("end_date", "2025-04-03").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(9)), IsNull("end_date")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE team_rosters SET end_date = $1, updated_at = NOW() WHERE id = $2 AND end_date IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "2025-04-03" || args[1] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("scores").
		Where(Between("date", "2025-04-01", "2025-04-07")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM scores WHERE date BETWEEN $1 AND $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("scores").ToSQL(); err == nil {
		t.Fatalf("expected unbounded delete to be rejected")
	}
}

func TestExprCondition_BindsQuestionMarks(t *testing.T) {
	query, args, err := Select("id").
		From("player_game_stats").
		Where(Eq("player_id", int64(4)), Expr("date >= ?::date - ?::int", "2025-04-10", 3)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	want := "SELECT id FROM player_game_stats WHERE player_id = $1 AND date >= $2::date - $3::int"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type scoreRow struct {
	ID       int64  `db:"id" insert:"-"`
	GameID   int64  `db:"game_id"`
	TeamID   int64  `db:"team_id"`
	Position string `db:"position"`
	internal string
}

func TestInsertModels(t *testing.T) {
	rows := []scoreRow{
		{ID: 1, GameID: 10, TeamID: 1, Position: "1B", internal: "x"},
		{GameID: 11, TeamID: 2, Position: "DH"},
	}
	query, args, err := InsertModels("scores", rows, "")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	want := "INSERT INTO scores (game_id, team_id, position) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 6 || args[5] != "DH" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[scoreRow]("scores", nil, ""); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("scores", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *scoreRow
	if _, _, err := InsertModel("scores", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
