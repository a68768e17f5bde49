// Package lifecycle ages and develops players: weekly growth and decline
// rolls, energy recovery, injury and suspension countdowns, and the
// season-boundary reset.
package lifecycle

import (
	"github.com/sevenx777-dev/sevenxfoot/internal/chance"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

// Age thresholds for development rolls.
const (
	YouthAge      = 23 // below: may grow toward potential
	VeteranAge    = 30 // above: may decline
	LateCareerAge = 34 // above: second decline chance
)

// Change records an overall rating movement.
type Change struct {
	PlayerID league.PlayerID
	Name     string
	TeamID   league.TeamID
	From     int
	To       int
}

// Weekly returns a new roster after one week of development and recovery,
// plus the rating changes it produced. The input slice is not modified.
func Weekly(players []league.Player, c league.Constants, src entropy.Source) ([]league.Player, []Change) {
	out := make([]league.Player, len(players))
	var changes []Change
	for i, p := range players {
		next := Develop(p, c, src)
		if next.Overall != p.Overall {
			changes = append(changes, Change{
				PlayerID: p.ID,
				Name:     p.Name,
				TeamID:   p.TeamID,
				From:     p.Overall,
				To:       next.Overall,
			})
		}
		out[i] = next
	}
	return out, changes
}

// Develop applies one week to a single player.
//
// The rolls form one chain: a young player with headroom rolls for growth;
// otherwise a veteran rolls for decline, and only when that roll fails does a
// late-career player get the second decline roll. At most one point moves.
func Develop(p league.Player, c league.Constants, src entropy.Source) league.Player {
	switch {
	case p.Age < YouthAge && p.Potential > p.Overall && chance.Roll(src, c.YouthGrowthChance):
		p.Overall++
	case p.Age > VeteranAge && chance.Roll(src, c.AgingDeclineChance):
		p.Overall--
	case p.Age > LateCareerAge && chance.Roll(src, c.LateAgingDeclineChance):
		p.Overall--
	}
	p.Overall = max(league.MinOverall, p.Overall)

	p.Energy = league.Clamp(p.Energy+c.WeeklyEnergyRecovery, 0, league.MaxEnergy)
	p.Morale = league.Clamp(p.Morale, 0, league.MaxMorale)
	p.InjuryWeeks = max(0, p.InjuryWeeks-1)
	p.SuspensionWeeks = max(0, p.SuspensionWeeks-1)
	return p
}

// NewSeason resets per-season stats, ages every player by one year and
// extends contracts that would expire before the new season ends.
func NewSeason(players []league.Player, season int) []league.Player {
	out := make([]league.Player, len(players))
	for i, p := range players {
		p.Goals, p.Assists = 0, 0
		p.YellowCards, p.RedCards = 0, 0
		p.Age++
		if p.Contract <= season {
			p.Contract = season + 1
		}
		out[i] = p
	}
	return out
}
