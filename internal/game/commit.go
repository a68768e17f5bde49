package game

import (
	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/match"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
)

// WeekResult is everything one weekly step produces. It is applied to the
// state it was computed from with Commit, in one go.
type WeekResult struct {
	Week      int
	Season    int
	Standings []league.Standing
	Players   []league.Player
	Market    []league.Player
	Cash      decimal.Decimal
	Morale    int
	Offers    []league.TransferOffer
	Messages  []message.Message // In emission order
	Result    *match.Result     // User's match this week, nil if idle

	ManagerReputationDelta int

	// Rollover is set when the step closed a season. ManagerOffers and
	// Champion are only meaningful then.
	Rollover      bool
	ManagerOffers []league.ManagerOffer
	Champion      league.TeamID
}

// Commit returns the state with r applied. New messages go in front of the
// inbox; manager offers are replaced only when the season rolled over.
func (s State) Commit(r WeekResult) State {
	s.Week = r.Week
	s.Season = r.Season
	s.Standings = r.Standings
	s.Players = r.Players
	s.Market = r.Market
	s.Offers = r.Offers
	s.Club.Cash = r.Cash
	s.Club.Morale = r.Morale
	s.LastResult = r.Result
	s.ManagerReputation = league.Clamp(s.ManagerReputation+r.ManagerReputationDelta, 0, 100)
	if r.Rollover {
		s.ManagerOffers = r.ManagerOffers
	}

	msgs := make([]message.Message, 0, len(r.Messages)+len(s.Messages))
	msgs = append(msgs, r.Messages...)
	s.Messages = append(msgs, s.Messages...)
	return s
}
