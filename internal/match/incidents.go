package match

import (
	"github.com/sevenx777-dev/sevenxfoot/internal/chance"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

// assistChance is the probability a goal has a credited assist.
const assistChance = 0.7

// Ban lengths are stored one week longer than the matches missed because the
// weekly countdown runs later in the same step as the match.
const (
	redCardBan   = 1
	injuryMinOut = 1
	injuryMaxOut = 4
)

var scorerWeight = map[league.Position]float64{
	league.Attacker:     5,
	league.Midfielder:   3,
	league.DefensiveMid: 2,
	league.FullBack:     1,
	league.CentreBack:   1,
}

var assistWeight = map[league.Position]float64{
	league.Midfielder:   4,
	league.Attacker:     3,
	league.DefensiveMid: 2,
	league.FullBack:     2,
	league.CentreBack:   1,
}

// Goal credits a goal to a scorer and, optionally, an assister.
type Goal struct {
	Team     league.TeamID
	Scorer   league.PlayerID
	Assister league.PlayerID // 0 when unassisted
}

func creditGoals(roster []league.Player, idx map[league.PlayerID]int, lineup []league.Player, team league.TeamID, goals int, src entropy.Source) []Goal {
	if len(lineup) == 0 {
		return nil
	}
	var out []Goal
	for g := 0; g < goals; g++ {
		scorer := pick(lineup, scorerWeight, 0, src)
		if scorer < 0 {
			break
		}
		goal := Goal{Team: team, Scorer: lineup[scorer].ID}
		roster[idx[goal.Scorer]].Goals++

		if chance.Roll(src, assistChance) {
			if a := pick(lineup, assistWeight, goal.Scorer, src); a >= 0 {
				goal.Assister = lineup[a].ID
				roster[idx[goal.Assister]].Assists++
			}
		}
		out = append(out, goal)
	}
	return out
}

// pick chooses a lineup index by position weight, skipping one player.
func pick(lineup []league.Player, weights map[league.Position]float64, skip league.PlayerID, src entropy.Source) int {
	w := make([]float64, len(lineup))
	for i, p := range lineup {
		if p.ID != skip {
			w[i] = weights[p.Position]
		}
	}
	return chance.Weighted(src, w)
}

func applyDiscipline(roster []league.Player, idx map[league.PlayerID]int, lineup []league.Player, c league.Constants, src entropy.Source) {
	for _, p := range lineup {
		ref := &roster[idx[p.ID]]
		if chance.Roll(src, c.YellowCardChance) {
			ref.YellowCards++
		}
		if chance.Roll(src, c.RedCardChance) {
			ref.RedCards++
			ref.SuspensionWeeks = max(ref.SuspensionWeeks, redCardBan+1)
		}
		if chance.Roll(src, c.InjuryChance) {
			ref.InjuryWeeks = max(ref.InjuryWeeks, chance.Between(src, injuryMinOut, injuryMaxOut)+1)
		}
	}
}
