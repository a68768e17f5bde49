package league

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
)

func TestGeneratorLeague(t *testing.T) {
	ids := &IDAllocator{}
	c := DefaultConstants()
	g := NewGenerator(entropy.NewSeeded(7), 7, ids, c, 2025)

	teams := DefaultTeams()[:4]
	players := g.League(teams)
	if len(players) != 4*11 {
		t.Fatalf("got %d players, want 44", len(players))
	}

	seen := make(map[PlayerID]bool)
	minValue := decimal.NewFromInt(100_000)
	for _, p := range players {
		if seen[p.ID] {
			t.Fatalf("duplicate player id %d", p.ID)
		}
		seen[p.ID] = true

		if p.Potential < p.Overall || p.Potential > MaxPotential {
			t.Errorf("%s: potential %d vs overall %d", p.Name, p.Potential, p.Overall)
		}
		if p.Overall < MinOverall {
			t.Errorf("%s: overall %d below floor", p.Name, p.Overall)
		}
		if p.Age < c.PlayerAgeMin || p.Age > c.PlayerAgeMax {
			t.Errorf("%s: age %d out of range", p.Name, p.Age)
		}
		if p.Value.LessThan(minValue) {
			t.Errorf("%s: value %s below minimum", p.Name, p.Value)
		}
		if p.Contract < 2025 || p.Contract > 2028 {
			t.Errorf("%s: contract %d", p.Name, p.Contract)
		}
	}

	for _, tm := range teams {
		squad := SquadOf(players, tm.ID)
		if len(squad) != 11 || squad[0].Position != Goalkeeper {
			t.Errorf("team %d: bad squad layout", tm.ID)
		}
	}
	if ids.Next != PlayerID(len(players)+1) {
		t.Errorf("allocator at %d, want %d", ids.Next, len(players)+1)
	}
}

func TestMarketPoolIsFreeAgents(t *testing.T) {
	g := NewGenerator(entropy.NewSeeded(1), 1, &IDAllocator{}, DefaultConstants(), 2025)
	for _, p := range g.MarketPool(20) {
		if p.TeamID != FreeAgents || p.TeamName != FreeAgentsName {
			t.Fatalf("market player %d attached to team %d", p.ID, p.TeamID)
		}
	}
}

func TestIDAllocatorObserve(t *testing.T) {
	a := &IDAllocator{}
	if id := a.Allocate(); id != 1 {
		t.Fatalf("first id %d", id)
	}
	a.Observe(40)
	if id := a.Allocate(); id != 41 {
		t.Fatalf("after observe got %d, want 41", id)
	}
	a.Observe(3)
	if a.Next != 42 {
		t.Fatalf("observe of a lower id moved the counter to %d", a.Next)
	}
}
