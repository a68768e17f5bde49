// Player generation for a new league: squads for every club and a pool of
// free agents. Squad quality follows a simplex noise field so a club's lines
// vary coherently instead of being independent coin flips.
package league

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/chance"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
)

var (
	lastNames  = []string{"Silva", "Santos", "Costa", "Lima", "Oliveira", "Ferreira", "Alves", "Gomes", "Martins", "Souza", "Pereira", "Rodrigues"}
	firstNames = []string{"João", "Carlos", "Felipe", "Roberto", "André", "Lucas", "Ricardo", "Bruno", "Pedro", "Vinícius", "Eduardo", "Gabriel"}
)

// squadTemplate is the position layout of a generated 11-man squad.
var squadTemplate = []Position{
	Goalkeeper,
	CentreBack, CentreBack, FullBack, FullBack,
	DefensiveMid, DefensiveMid, Midfielder,
	Attacker, Attacker, Attacker,
}

// qualitySpread is the largest overall bonus or malus the noise field applies.
const qualitySpread = 3

// Generator creates players. It draws from the injected source and takes
// IDs from the session allocator.
type Generator struct {
	src       entropy.Source
	quality   opensimplex.Noise
	ids       *IDAllocator
	constants Constants
	season    int
}

// NewGenerator creates a generator. seed drives the quality field only;
// per-player rolls come from src.
func NewGenerator(src entropy.Source, seed int64, ids *IDAllocator, c Constants, season int) *Generator {
	return &Generator{
		src:       src,
		quality:   opensimplex.NewNormalized(seed),
		ids:       ids,
		constants: c,
		season:    season,
	}
}

// League generates full squads for every team, in team order.
func (g *Generator) League(teams []Team) []Player {
	players := make([]Player, 0, len(teams)*len(squadTemplate))
	for _, t := range teams {
		players = append(players, g.Squad(t)...)
	}
	return players
}

// Squad generates one club's squad.
func (g *Generator) Squad(t Team) []Player {
	squad := make([]Player, 0, len(squadTemplate))
	for i, pos := range squadTemplate {
		squad = append(squad, g.Player(t.ID, t.Name, pos, g.bias(t.ID, i)))
	}
	return squad
}

// MarketPool generates n free agents with random positions.
func (g *Generator) MarketPool(n int) []Player {
	pool := make([]Player, 0, n)
	for i := 0; i < n; i++ {
		pos, _ := chance.Pick(g.src, Positions)
		pool = append(pool, g.Player(FreeAgents, FreeAgentsName, pos, 0))
	}
	return pool
}

// bias samples the quality field for one squad slot.
func (g *Generator) bias(team TeamID, slot int) int {
	v := g.quality.Eval2(float64(team)*0.37, float64(slot)*0.53)
	return int((v - 0.5) * 2 * qualitySpread)
}

// Player generates a single player.
func (g *Generator) Player(team TeamID, teamName string, pos Position, bias int) Player {
	c := g.constants

	age := chance.Between(g.src, c.PlayerAgeMin, c.PlayerAgeMax)
	overall := Clamp(chance.Between(g.src, c.PlayerOverallMin, c.PlayerOverallMax)+bias, MinOverall, MaxPotential)
	potential := min(MaxPotential, overall+chance.Intn(g.src, c.PlayerPotentialMaxBonus))

	salary := int64(overall) * 500
	value := salary*10 + int64(potential-overall)*50_000 + int64(chance.Intn(g.src, 100_000))
	value = max(value, 100_000)

	first, _ := chance.Pick(g.src, firstNames)
	last, _ := chance.Pick(g.src, lastNames)

	return Player{
		ID:        g.ids.Allocate(),
		Name:      fmt.Sprintf("%s %s", first, last),
		TeamID:    team,
		TeamName:  teamName,
		Position:  pos,
		Age:       age,
		Overall:   overall,
		Potential: potential,
		Salary:    decimal.NewFromInt(salary),
		Contract:  g.season + chance.Intn(g.src, 4),
		Morale:    80,
		Energy:    MaxEnergy,
		Value:     decimal.NewFromInt(value),
	}
}
