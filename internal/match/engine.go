// Package match resolves a single fixture: lineups, fatigue, the banded score
// model, and the incidents (goals, cards, injuries) attached to the result.
package match

import (
	"math"

	"github.com/sevenx777-dev/sevenxfoot/internal/chance"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

// Score model thresholds on the home-adjusted rating difference.
const (
	strongEdge   = 10.0
	closeContest = 5.0
	// drawBias is the secondary draw a close contest must exceed to be forced level.
	drawBias = 0.6
	// emptyLineupRating stands in for a side with nobody available.
	emptyLineupRating = 1.0
)

// Fatigue bounds: each lineup player loses between these many energy points.
const (
	minFatigue = 15
	maxFatigue = 29
)

// Outcome is a result from one side's point of view.
type Outcome int

const (
	Loss Outcome = iota
	Draw
	Win
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "loss"
	}
}

// Result is the score of a played fixture.
type Result struct {
	Fixture   league.Fixture
	HomeScore int
	AwayScore int
	Goals     []Goal
}

// HomeOutcome returns the result for the home side.
func (r Result) HomeOutcome() Outcome {
	switch {
	case r.HomeScore > r.AwayScore:
		return Win
	case r.HomeScore < r.AwayScore:
		return Loss
	}
	return Draw
}

// OutcomeFor returns the result from the given team's side.
func (r Result) OutcomeFor(team league.TeamID) Outcome {
	o := r.HomeOutcome()
	if team == r.Fixture.Away {
		return Win - o
	}
	return o
}

// Lineup returns the players of a team available for selection.
func Lineup(players []league.Player, team league.TeamID) []league.Player {
	var out []league.Player
	for _, p := range players {
		if p.TeamID == team && p.Available() {
			out = append(out, p)
		}
	}
	return out
}

// Rating is the mean overall of a lineup.
func Rating(lineup []league.Player) float64 {
	if len(lineup) == 0 {
		return emptyLineupRating
	}
	total := 0
	for _, p := range lineup {
		total += p.Overall
	}
	return float64(total) / float64(len(lineup))
}

// Score draws a scoreline from the two lineups. homeAdvantage is added to the
// home side's rating before banding.
func Score(home, away []league.Player, homeAdvantage float64, src entropy.Source) (homeScore, awayScore int) {
	diff := Rating(home) - Rating(away) + homeAdvantage

	switch {
	case diff > strongEdge:
		homeScore = chance.Between(src, 2, 4)
		awayScore = chance.Between(src, 0, 1)
	case diff > 0:
		homeScore = chance.Between(src, 1, 2)
		awayScore = chance.Between(src, 0, 1)
	case diff > -strongEdge:
		homeScore = chance.Between(src, 0, 1)
		awayScore = chance.Between(src, 1, 2)
	default:
		homeScore = chance.Between(src, 0, 1)
		awayScore = chance.Between(src, 2, 4)
	}

	// Closely matched sides: the secondary roll may override the band with a draw.
	if math.Abs(diff) < closeContest && chance.Above(src, drawBias) {
		goals := chance.Between(src, 0, 2)
		homeScore, awayScore = goals, goals
	}
	return homeScore, awayScore
}

// Play resolves a fixture against the current roster. It returns the result
// and a new roster carrying fatigue, stats and incidents; the input roster is
// not modified.
func Play(f league.Fixture, players []league.Player, c league.Constants, src entropy.Source) (Result, []league.Player) {
	roster := append([]league.Player(nil), players...)
	idx := league.IndexPlayers(roster)

	home := Lineup(roster, f.Home)
	away := Lineup(roster, f.Away)

	for _, p := range append(append([]league.Player(nil), home...), away...) {
		ref := &roster[idx[p.ID]]
		ref.Energy = max(0, ref.Energy-chance.Between(src, minFatigue, maxFatigue))
	}

	homeScore, awayScore := Score(home, away, c.HomeAdvantage, src)
	result := Result{Fixture: f, HomeScore: homeScore, AwayScore: awayScore}

	result.Goals = append(result.Goals, creditGoals(roster, idx, home, f.Home, homeScore, src)...)
	result.Goals = append(result.Goals, creditGoals(roster, idx, away, f.Away, awayScore, src)...)
	applyDiscipline(roster, idx, home, c, src)
	applyDiscipline(roster, idx, away, c, src)

	return result, roster
}
