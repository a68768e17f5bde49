// Package career handles the manager's reputation and the job offers other
// clubs make at the end of a season.
package career

import (
	"errors"
	"fmt"
	"math"

	"github.com/sevenx777-dev/sevenxfoot/internal/chance"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/match"
)

var (
	// ErrNoSuchOffer is returned when an offer is not among the pending ones.
	ErrNoSuchOffer = errors.New("no such manager offer")
	// ErrUnknownTeam is returned when an offer names a club outside the league.
	ErrUnknownTeam = errors.New("offering club not in league")
)

// Reputation swings applied at the end of a season.
const (
	ChampionBonus = 5
	TopThreeBonus = 2
	BottomPenalty = 2
	topPlaces     = 3
)

// Reputation-gap bounds selecting the offer chance.
const (
	wideGap   = 10
	narrowGap = -5
)

const (
	minSalaryIncrease = 5
	maxSalaryIncrease = 24
	reputationStep    = 5
)

// MatchDelta is the reputation drift from one match of the manager's club.
func MatchDelta(o match.Outcome) int {
	switch o {
	case match.Win:
		return 1
	case match.Loss:
		return -1
	}
	return 0
}

// SeasonDelta is the reputation change for a 1-based final position in a
// league of n clubs. A title earns the champion bonus alone.
func SeasonDelta(position, n int, champion bool) int {
	switch {
	case champion:
		return ChampionBonus
	case 2*position > n:
		return -BottomPenalty
	case position >= 1 && position <= topPlaces:
		return TopThreeBonus
	}
	return 0
}

// OfferChance returns the chance that a club with the given reputation gap
// over the manager calls. Gaps above ten use the high-tier constant.
func OfferChance(gap int, c league.Constants) float64 {
	switch {
	case gap > wideGap:
		return c.ManagerOfferChanceHigh
	case gap >= narrowGap:
		return c.ManagerOfferChanceMedium
	}
	return c.ManagerOfferChanceLow
}

// GenerateOffers rolls once for every eligible club other than the manager's
// own, in league order.
func GenerateOffers(teams []league.Team, own league.TeamID, reputation int, c league.Constants, src entropy.Source) []league.ManagerOffer {
	var offers []league.ManagerOffer
	for _, t := range teams {
		if t.ID == own || t.Reputation < c.ManagerOfferMinReputation {
			continue
		}
		gap := t.Reputation - reputation
		if !chance.Roll(src, OfferChance(gap, c)) {
			continue
		}
		offers = append(offers, league.ManagerOffer{
			TeamID:           t.ID,
			TeamName:         t.Name,
			TeamReputation:   t.Reputation,
			SalaryIncrease:   chance.Between(src, minSalaryIncrease, maxSalaryIncrease),
			ReputationChange: int(math.Floor(float64(gap) / reputationStep)),
		})
	}
	return offers
}

// Accept moves the manager to the offering club. The club keeps its cash,
// morale and formation; identity and reputation come from the league entry.
func Accept(club league.Club, reputation int, offers []league.ManagerOffer, teamID league.TeamID, teams []league.Team) (league.Club, int, error) {
	i := indexOf(offers, teamID)
	if i < 0 {
		return club, reputation, fmt.Errorf("team %d: %w", teamID, ErrNoSuchOffer)
	}
	t, ok := league.FindTeam(teams, teamID)
	if !ok {
		return club, reputation, fmt.Errorf("team %d: %w", teamID, ErrUnknownTeam)
	}
	club.ID, club.Name, club.Reputation = t.ID, t.Name, t.Reputation
	return club, league.Clamp(reputation+offers[i].ReputationChange, 0, 100), nil
}

// Reject removes the offer from one club and keeps the rest.
func Reject(offers []league.ManagerOffer, teamID league.TeamID) []league.ManagerOffer {
	var out []league.ManagerOffer
	for _, o := range offers {
		if o.TeamID != teamID {
			out = append(out, o)
		}
	}
	return out
}

func indexOf(offers []league.ManagerOffer, teamID league.TeamID) int {
	for i, o := range offers {
		if o.TeamID == teamID {
			return i
		}
	}
	return -1
}
