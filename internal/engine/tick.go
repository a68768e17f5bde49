// Package engine drives a save game forward one week at a time.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/game"
)

// ErrSimulationInProgress is returned when a step or a user action arrives
// while a weekly step is running.
var ErrSimulationInProgress = errors.New("simulation in progress")

// Engine owns the live state of one game. Weekly steps are serialized by a
// busy flag: a second Advance while one runs is refused, not queued.
type Engine struct {
	src   entropy.Source
	clock clockwork.Clock
	busy  atomic.Bool

	mu    sync.Mutex
	state game.State

	// Callbacks run after a step is committed, with the lock released.
	OnWeek   func(s game.State, r game.WeekResult) // Every step
	OnSeason func(s game.State, r game.WeekResult) // Steps that closed a season
}

// New creates an engine for s. A nil clock means the wall clock.
func New(s game.State, src entropy.Source, clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{src: src, clock: clock, state: s}
}

// State returns the current snapshot.
func (e *Engine) State() game.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Busy reports whether a weekly step is running.
func (e *Engine) Busy() bool {
	return e.busy.Load()
}

// Now is the engine's clock reading, used to stamp messages.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Advance runs one weekly step and commits its result.
func (e *Engine) Advance() (game.WeekResult, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return game.WeekResult{}, ErrSimulationInProgress
	}
	defer e.busy.Store(false)

	e.mu.Lock()
	r, err := AdvanceWeek(e.state, e.src, e.clock.Now())
	if err != nil {
		e.mu.Unlock()
		return game.WeekResult{}, fmt.Errorf("advance week: %w", err)
	}
	e.state = e.state.Commit(r)
	s := e.state
	e.mu.Unlock()

	if e.OnWeek != nil {
		e.OnWeek(s, r)
	}
	if r.Rollover && e.OnSeason != nil {
		e.OnSeason(s, r)
	}
	return r, nil
}

// Update applies a user action. Actions are refused while a step runs; an
// action that returns an error leaves the state as it was.
func (e *Engine) Update(action func(game.State) (game.State, error)) error {
	if e.busy.Load() {
		return ErrSimulationInProgress
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := action(e.state)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}
