// Package game holds the save-game aggregate and every transition a user can
// make on it outside the weekly step. State is a value: each method returns a
// new State and leaves its receiver, including the slices it shares, as it was.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/match"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
	"github.com/sevenx777-dev/sevenxfoot/internal/table"
)

// DefaultSeason is the first season of a new game.
const DefaultSeason = 2025

// Starting club settings.
const (
	startingMorale = 80
	defaultManager = "Treinador"
)

var (
	// ErrUnknownTeam is returned when a new game names a club outside the league.
	ErrUnknownTeam = errors.New("team not in league")
	// ErrTooFewTeams is returned when a league cannot produce a schedule.
	ErrTooFewTeams = errors.New("league needs at least two teams")
)

// State is one save game.
type State struct {
	ManagerName       string                 `json:"manager_name"`
	Season            int                    `json:"season"`
	Week              int                    `json:"week"`
	Club              league.Club            `json:"club"`
	ManagerReputation int                    `json:"manager_reputation"`
	ManagerOffers     []league.ManagerOffer  `json:"manager_offers"`
	Constants         league.Constants       `json:"constants"`
	Teams             []league.Team          `json:"teams"`
	Standings         []league.Standing      `json:"standings"`
	Players           []league.Player        `json:"players"`
	Market            []league.Player        `json:"market"`
	Schedule          []league.Fixture       `json:"schedule"`
	Offers            []league.TransferOffer `json:"offers"`
	Messages          []message.Message      `json:"messages"` // Newest first
	LastResult        *match.Result          `json:"last_result,omitempty"`
	IDs               league.IDAllocator     `json:"ids"`
}

// Options configure a new game. Zero values fall back to the stock league.
type Options struct {
	ManagerName string
	ClubID      league.TeamID
	Teams       []league.Team
	Constants   *league.Constants
	Season      int
	Seed        int64 // Squad quality field
}

// New generates a fresh game: squads for every club, the free-agent pool,
// an empty table, the season schedule and a welcome message.
func New(o Options, src entropy.Source, at time.Time) (State, error) {
	teams := o.Teams
	if len(teams) == 0 {
		teams = league.DefaultTeams()
	}
	if len(teams) < 2 {
		return State{}, ErrTooFewTeams
	}
	c := league.DefaultConstants()
	if o.Constants != nil {
		c = *o.Constants
	}
	season := o.Season
	if season == 0 {
		season = DefaultSeason
	}
	manager := o.ManagerName
	if manager == "" {
		manager = defaultManager
	}
	own, ok := league.FindTeam(teams, o.ClubID)
	if !ok {
		return State{}, fmt.Errorf("club %d: %w", o.ClubID, ErrUnknownTeam)
	}

	s := State{
		ManagerName:       manager,
		Season:            season,
		Week:              1,
		ManagerReputation: c.StartingManagerReputation,
		Constants:         c,
		Teams:             append([]league.Team(nil), teams...),
		Schedule:          league.GenerateSchedule(teams),
		Club: league.Club{
			ID:         own.ID,
			Name:       own.Name,
			Cash:       c.StartingCash,
			Reputation: own.Reputation,
			Morale:     startingMorale,
			Formation:  league.Formation442,
		},
	}

	gen := league.NewGenerator(src, o.Seed, &s.IDs, c, season)
	s.Players = gen.League(teams)
	s.Market = gen.MarketPool(c.MarketPoolSize)
	s.Standings = make([]league.Standing, 0, len(teams))
	for _, t := range teams {
		s.Standings = append(s.Standings, league.NewStanding(t, league.AverageOverall(league.SquadOf(s.Players, t.ID))))
	}

	s.Messages = []message.Message{message.New(1, message.Result,
		fmt.Sprintf("Bem-vindo ao %s!", own.Name),
		fmt.Sprintf("Olá, %s. A diretoria deseja-lhe sorte nesta nova temporada.", manager),
		at)}
	return s, nil
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.ManagerOffers = append([]league.ManagerOffer(nil), s.ManagerOffers...)
	s.Teams = append([]league.Team(nil), s.Teams...)
	s.Standings = append([]league.Standing(nil), s.Standings...)
	s.Players = append([]league.Player(nil), s.Players...)
	s.Market = append([]league.Player(nil), s.Market...)
	s.Schedule = append([]league.Fixture(nil), s.Schedule...)
	s.Offers = append([]league.TransferOffer(nil), s.Offers...)
	s.Messages = append([]message.Message(nil), s.Messages...)
	if s.LastResult != nil {
		r := *s.LastResult
		r.Goals = append([]match.Goal(nil), r.Goals...)
		s.LastResult = &r
	}
	return s
}

// SeasonWeeks is the number of match weeks in the current league.
func (s State) SeasonWeeks() int {
	return league.SeasonWeeks(len(s.Standings))
}

// Squad returns the players of the user's club.
func (s State) Squad() []league.Player {
	return league.SquadOf(s.Players, s.Club.ID)
}

// Position returns the user's club's table position, 0 if it has no row.
func (s State) Position() int {
	return table.Position(s.Standings, s.Club.ID)
}

// Unread counts unread messages.
func (s State) Unread() int {
	n := 0
	for _, m := range s.Messages {
		if !m.Read {
			n++
		}
	}
	return n
}
