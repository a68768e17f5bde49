package engine

import (
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/game"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

func TestEngineAdvanceCommits(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testTime)
	e := New(newGame(t), entropy.NewSeeded(1), clock)

	weeks, seasons := 0, 0
	e.OnWeek = func(game.State, game.WeekResult) { weeks++ }
	e.OnSeason = func(game.State, game.WeekResult) { seasons++ }

	for i := 0; i < 6; i++ {
		if _, err := e.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	s := e.State()
	if s.Week != 1 || s.Season != game.DefaultSeason+1 {
		t.Errorf("week %d season %d after a full season", s.Week, s.Season)
	}
	if weeks != 6 || seasons != 1 {
		t.Errorf("callbacks: weeks=%d seasons=%d", weeks, seasons)
	}
	if got := s.Messages[0].CreatedAt; !got.Equal(testTime) {
		t.Errorf("message stamped %v, want fake clock time", got)
	}
	if e.Busy() {
		t.Error("engine still busy")
	}
}

func TestEngineRejectsReentrantCalls(t *testing.T) {
	e := New(newGame(t), entropy.NewSeeded(1), clockwork.NewFakeClock())
	e.busy.Store(true)

	if _, err := e.Advance(); !errors.Is(err, ErrSimulationInProgress) {
		t.Errorf("Advance err = %v", err)
	}
	err := e.Update(func(s game.State) (game.State, error) { return s.SetFormation(league.Formation433) })
	if !errors.Is(err, ErrSimulationInProgress) {
		t.Errorf("Update err = %v", err)
	}
	if e.State().Week != 1 || e.State().Club.Formation != league.Formation442 {
		t.Error("state changed while busy")
	}
}

func TestEngineUpdate(t *testing.T) {
	e := New(newGame(t), entropy.NewSeeded(1), nil)

	if err := e.Update(func(s game.State) (game.State, error) { return s.SetFormation(league.Formation532) }); err != nil {
		t.Fatal(err)
	}
	if e.State().Club.Formation != league.Formation532 {
		t.Error("update not applied")
	}

	err := e.Update(func(s game.State) (game.State, error) { return s.SetFormation("1-1-8") })
	if !errors.Is(err, game.ErrInvalidFormation) {
		t.Errorf("err = %v", err)
	}
	if e.State().Club.Formation != league.Formation532 {
		t.Error("failed update changed the state")
	}
}

func TestRunner(t *testing.T) {
	e := New(newGame(t), entropy.NewSeeded(1), nil)
	if _, err := NewRunner(e, "not a schedule"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}

	r, err := NewRunner(e, "@every 1h")
	if err != nil {
		t.Fatal(err)
	}
	r.tick()
	if e.State().Week != 2 {
		t.Errorf("week = %d after one tick", e.State().Week)
	}

	e.busy.Store(true)
	r.tick()
	if e.State().Week != 2 {
		t.Error("tick advanced a busy engine")
	}
}
