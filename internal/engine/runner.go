package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Runner advances an engine on a cron schedule.
type Runner struct {
	Cron   *cron.Cron
	Engine *Engine
}

// NewRunner registers the weekly step under spec (standard five-field cron
// syntax or a descriptor such as "@every 30s").
func NewRunner(e *Engine, spec string) (*Runner, error) {
	r := &Runner{Cron: cron.New(), Engine: e}
	if _, err := r.Cron.AddFunc(spec, r.tick); err != nil {
		return nil, fmt.Errorf("register advance schedule %q: %w", spec, err)
	}
	return r, nil
}

// Start starts the schedule in its own goroutine.
func (r *Runner) Start() {
	r.Cron.Start()
	slog.Info("auto-advance started", "entries", len(r.Cron.Entries()))
}

// Stop halts the schedule and waits for a running step to finish.
func (r *Runner) Stop() {
	<-r.Cron.Stop().Done()
	slog.Info("auto-advance stopped")
}

func (r *Runner) tick() {
	_, err := r.Engine.Advance()
	switch {
	case errors.Is(err, ErrSimulationInProgress):
		slog.Warn("previous week still running, skipping")
	case err != nil:
		slog.Error("weekly step failed", "error", err)
	}
}
