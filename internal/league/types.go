// Package league holds the football data model shared by every engine
// component: players, clubs, standings rows, fixtures and offers.
package league

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlayerID identifies a player within one game session.
type PlayerID int64

// TeamID identifies a club. FreeAgents marks market-pool players.
type TeamID int64

// FreeAgents is the pseudo-club of unattached market players.
const FreeAgents TeamID = 0

// FreeAgentsName is the club name shown for market-pool players.
const FreeAgentsName = "Agente Livre"

// Position is a player's field role.
type Position string

const (
	Goalkeeper   Position = "GOL"
	CentreBack   Position = "ZAG"
	FullBack     Position = "LAT"
	DefensiveMid Position = "VOL"
	Midfielder   Position = "MEI"
	Attacker     Position = "ATA"
)

// Positions lists every position in squad order.
var Positions = []Position{Goalkeeper, CentreBack, FullBack, DefensiveMid, Midfielder, Attacker}

// Stat bounds.
const (
	MinOverall   = 40
	MaxPotential = 95
	MaxEnergy    = 100
	MaxMorale    = 100
)

// Player is one footballer, attached to a club or to the market pool.
type Player struct {
	ID              PlayerID        `json:"id" yaml:"id" db:"id"`
	Name            string          `json:"name" yaml:"name" db:"name"`
	TeamID          TeamID          `json:"team_id" yaml:"team_id" db:"team_id"`
	TeamName        string          `json:"team_name" yaml:"team_name" db:"team_name"`
	Position        Position        `json:"position" yaml:"position" db:"position"`
	Age             int             `json:"age" yaml:"age" db:"age"`
	Overall         int             `json:"overall" yaml:"overall" db:"overall"`
	Potential       int             `json:"potential" yaml:"potential" db:"potential"`
	Salary          decimal.Decimal `json:"salary" yaml:"salary" db:"salary"`
	Contract        int             `json:"contract" yaml:"contract" db:"contract"` // Expiry year
	Morale          int             `json:"morale" yaml:"morale" db:"morale"`
	Energy          int             `json:"energy" yaml:"energy" db:"energy"`
	Goals           int             `json:"goals" yaml:"goals" db:"goals"`
	Assists         int             `json:"assists" yaml:"assists" db:"assists"`
	YellowCards     int             `json:"yellow_cards" yaml:"yellow_cards" db:"yellow_cards"`
	RedCards        int             `json:"red_cards" yaml:"red_cards" db:"red_cards"`
	InjuryWeeks     int             `json:"injury_weeks" yaml:"injury_weeks" db:"injury_weeks"`
	SuspensionWeeks int             `json:"suspension_weeks" yaml:"suspension_weeks" db:"suspension_weeks"`
	Value           decimal.Decimal `json:"value" yaml:"value" db:"value"`
	ForSale         bool            `json:"for_sale" yaml:"for_sale" db:"for_sale"`
}

// Available reports whether the player can be picked for a match.
func (p Player) Available() bool {
	return p.InjuryWeeks == 0 && p.SuspensionWeeks == 0
}

// Team is a club as stored in the league database.
type Team struct {
	ID         TeamID `json:"id" yaml:"id" db:"id"`
	Name       string `json:"name" yaml:"name" db:"name"`
	LogoURL    string `json:"logo_url,omitempty" yaml:"logo_url,omitempty" db:"logo_url"`
	Reputation int    `json:"reputation" yaml:"reputation" db:"reputation"`
}

// Standing is a club's row in the league table for the current season.
type Standing struct {
	Team
	Played       int     `json:"played" db:"played"`
	Wins         int     `json:"wins" db:"wins"`
	Draws        int     `json:"draws" db:"draws"`
	Losses       int     `json:"losses" db:"losses"`
	GoalsFor     int     `json:"gf" db:"goals_for"`
	GoalsAgainst int     `json:"ga" db:"goals_against"`
	GoalDiff     int     `json:"gd" db:"goal_diff"`
	Points       int     `json:"points" db:"points"`
	Overall      float64 `json:"overall" db:"overall"` // Squad mean, unrounded
}

// NewStanding returns an empty table row for a team.
func NewStanding(t Team, overall float64) Standing {
	return Standing{Team: t, Overall: overall}
}

// Reset zeroes the season record, keeping identity and derived fields.
func (s *Standing) Reset() {
	s.Played, s.Wins, s.Draws, s.Losses = 0, 0, 0, 0
	s.GoalsFor, s.GoalsAgainst, s.GoalDiff, s.Points = 0, 0, 0, 0
}

// Fixture is one scheduled match.
type Fixture struct {
	Week int    `json:"week" db:"week"`
	Home TeamID `json:"home_team_id" db:"home_team_id"`
	Away TeamID `json:"away_team_id" db:"away_team_id"`
}

// Involves reports whether the team plays in this fixture.
func (f Fixture) Involves(id TeamID) bool {
	return f.Home == id || f.Away == id
}

// OfferStatus is the lifecycle state of a transfer offer.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// TransferOffer is a bid on a player. Incoming offers come from AI clubs for
// the user's listed players; outgoing offers are the user's bids on market players.
type TransferOffer struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	PlayerID   PlayerID        `json:"player_id" db:"player_id"`
	PlayerName string          `json:"player_name" db:"player_name"`
	TeamID     TeamID          `json:"offering_team_id" db:"offering_team_id"`
	TeamName   string          `json:"offering_team_name" db:"offering_team_name"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Status     OfferStatus     `json:"status" db:"status"`
	Incoming   bool            `json:"is_incoming" db:"is_incoming"`
	Week       int             `json:"week" db:"week"`
}

// ManagerOffer is a job offer from another club, generated at season end.
type ManagerOffer struct {
	TeamID           TeamID `json:"offering_team_id" db:"offering_team_id"`
	TeamName         string `json:"offering_team_name" db:"offering_team_name"`
	TeamReputation   int    `json:"offering_team_reputation" db:"offering_team_reputation"`
	SalaryIncrease   int    `json:"salary_increase" db:"salary_increase"` // Percent
	ReputationChange int    `json:"reputation_change" db:"reputation_change"`
}

// Formation is the user's tactical setup.
type Formation string

const (
	Formation442 Formation = "4-4-2"
	Formation433 Formation = "4-3-3"
	Formation532 Formation = "5-3-2"
)

// Valid reports whether f is a known formation.
func (f Formation) Valid() bool {
	switch f {
	case Formation442, Formation433, Formation532:
		return true
	}
	return false
}

// Club is the team the user manages.
type Club struct {
	ID         TeamID          `json:"id"`
	Name       string          `json:"name"`
	Cash       decimal.Decimal `json:"money"`
	Reputation int             `json:"reputation"`
	Morale     int             `json:"morale"`
	Formation  Formation       `json:"formation"`
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
