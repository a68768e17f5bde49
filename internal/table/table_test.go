package table

import (
	"errors"
	"testing"

	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

func rows(ids ...league.TeamID) []league.Standing {
	out := make([]league.Standing, len(ids))
	for i, id := range ids {
		out[i] = league.NewStanding(league.Team{ID: id, Reputation: 70}, 60)
	}
	return out
}

func TestRecord(t *testing.T) {
	start := rows(1, 2, 3)
	got, err := Record(start, 1, 2, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err = Record(got, 3, 1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	one := got[0]
	if one.Played != 2 || one.Wins != 1 || one.Draws != 1 || one.Points != 4 || one.GoalsFor != 5 || one.GoalsAgainst != 3 || one.GoalDiff != 2 {
		t.Errorf("team 1 row = %+v", one)
	}
	two := got[1]
	if two.Losses != 1 || two.Points != 0 || two.GoalDiff != -2 {
		t.Errorf("team 2 row = %+v", two)
	}
	if !Consistent(got) {
		t.Error("record identities violated")
	}
	if start[0].Played != 0 {
		t.Error("input table mutated")
	}
}

func TestRecordUnknownTeam(t *testing.T) {
	_, err := Record(rows(1, 2), 1, 9, 1, 0)
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("err = %v, want ErrUnknownTeam", err)
	}
}

func TestSortStableOnFullTie(t *testing.T) {
	r := rows(1, 2, 3, 4)
	r[0].Points, r[0].GoalDiff = 3, 1
	r[1].Points, r[1].GoalDiff = 6, 0
	r[2].Points, r[2].GoalDiff = 3, 1
	r[3].Points, r[3].GoalDiff = 3, 4

	got := Sort(r)
	want := []league.TeamID{2, 4, 1, 3}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d = team %d, want %d (order %v)", i+1, got[i].ID, id, ids(got))
		}
	}
	if !Sorted(got) {
		t.Error("Sorted reports false for a sorted table")
	}
	if Position(got, 1) != 3 || Position(got, 99) != 0 {
		t.Errorf("positions = %d, %d", Position(got, 1), Position(got, 99))
	}
}

func TestResetKeepsIdentity(t *testing.T) {
	r, _ := Record(rows(1, 2), 1, 2, 2, 0)
	r[0].Name, r[0].Reputation = "Flamengo", 90

	got := Reset(r)
	for _, row := range got {
		if row.Played+row.Wins+row.Draws+row.Losses+row.GoalsFor+row.GoalsAgainst+row.GoalDiff+row.Points != 0 {
			t.Errorf("row %d not reset: %+v", row.ID, row)
		}
	}
	if got[0].Name != "Flamengo" || got[0].Reputation != 90 || got[0].Overall != 60 {
		t.Errorf("identity lost: %+v", got[0])
	}
	if r[0].Points != 3 {
		t.Error("input table mutated")
	}
}

func TestRefreshOverall(t *testing.T) {
	players := []league.Player{
		{ID: 1, TeamID: 1, Overall: 60},
		{ID: 2, TeamID: 1, Overall: 65},
		{ID: 3, TeamID: 2, Overall: 70},
	}
	got := RefreshOverall(rows(1, 2, 3), players)
	if got[0].Overall != 62.5 || got[1].Overall != 70 || got[2].Overall != 0 {
		t.Errorf("overalls = %v %v %v", got[0].Overall, got[1].Overall, got[2].Overall)
	}
}

func ids(r []league.Standing) []league.TeamID {
	out := make([]league.TeamID, len(r))
	for i, row := range r {
		out[i] = row.ID
	}
	return out
}
