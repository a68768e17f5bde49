// Package table maintains the league standings: applying results, ordering
// rows, and the season reset. Every function returns a new slice.
package table

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

// ErrUnknownTeam is returned when a result names a team with no table row.
var ErrUnknownTeam = errors.New("team not in standings")

// Points awarded per outcome.
const (
	PointsWin  = 3
	PointsDraw = 1
)

// Record applies one match result to a copy of the table.
func Record(rows []league.Standing, home, away league.TeamID, homeScore, awayScore int) ([]league.Standing, error) {
	hi, ai := indexOf(rows, home), indexOf(rows, away)
	if hi < 0 {
		return nil, fmt.Errorf("home team %d: %w", home, ErrUnknownTeam)
	}
	if ai < 0 {
		return nil, fmt.Errorf("away team %d: %w", away, ErrUnknownTeam)
	}

	out := append([]league.Standing(nil), rows...)
	recordSide(&out[hi], homeScore, awayScore)
	recordSide(&out[ai], awayScore, homeScore)
	return out, nil
}

func recordSide(row *league.Standing, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDiff = row.GoalsFor - row.GoalsAgainst
	switch {
	case scored > conceded:
		row.Wins++
	case scored == conceded:
		row.Draws++
	default:
		row.Losses++
	}
	row.Points = PointsWin*row.Wins + PointsDraw*row.Draws
}

// Sort orders rows by points then goal difference, both descending. Rows
// tied on both keep their previous relative order.
func Sort(rows []league.Standing) []league.Standing {
	out := append([]league.Standing(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].GoalDiff > out[j].GoalDiff
	})
	return out
}

// Reset zeroes every row's season record, keeping identity and order.
func Reset(rows []league.Standing) []league.Standing {
	out := append([]league.Standing(nil), rows...)
	for i := range out {
		out[i].Reset()
	}
	return out
}

// Leader returns the top row.
func Leader(rows []league.Standing) (league.Standing, bool) {
	if len(rows) == 0 {
		return league.Standing{}, false
	}
	return rows[0], true
}

// Position returns a team's 1-based table position, 0 when absent.
func Position(rows []league.Standing, team league.TeamID) int {
	return indexOf(rows, team) + 1
}

// RefreshOverall recomputes each row's squad average from the roster.
func RefreshOverall(rows []league.Standing, players []league.Player) []league.Standing {
	out := append([]league.Standing(nil), rows...)
	for i := range out {
		out[i].Overall = league.AverageOverall(league.SquadOf(players, out[i].ID))
	}
	return out
}

// Consistent reports whether every row satisfies the record identities:
// played = W + D + L, points = 3W + D, gd = gf - ga.
func Consistent(rows []league.Standing) bool {
	for _, r := range rows {
		if r.Played != r.Wins+r.Draws+r.Losses ||
			r.Points != PointsWin*r.Wins+PointsDraw*r.Draws ||
			r.GoalDiff != r.GoalsFor-r.GoalsAgainst {
			return false
		}
	}
	return true
}

// Sorted reports whether rows are in table order.
func Sorted(rows []league.Standing) bool {
	for i := 1; i < len(rows); i++ {
		a, b := rows[i-1], rows[i]
		if a.Points < b.Points || (a.Points == b.Points && a.GoalDiff < b.GoalDiff) {
			return false
		}
	}
	return true
}

func indexOf(rows []league.Standing, team league.TeamID) int {
	for i, r := range rows {
		if r.ID == team {
			return i
		}
	}
	return -1
}
