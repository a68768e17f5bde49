package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/career"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
	"github.com/sevenx777-dev/sevenxfoot/internal/transfer"
)

// ErrInvalidFormation is returned for a formation the match screen cannot show.
var ErrInvalidFormation = errors.New("invalid formation")

// Books returns the market view of the state.
func (s State) Books() transfer.Books {
	return transfer.Books{
		ClubID:   s.Club.ID,
		ClubName: s.Club.Name,
		Cash:     s.Club.Cash,
		Players:  s.Players,
		Market:   s.Market,
		Offers:   s.Offers,
	}
}

func (s State) withBooks(b transfer.Books) State {
	s.Club.Cash = b.Cash
	s.Players = b.Players
	s.Market = b.Market
	s.Offers = b.Offers
	return s
}

// AcceptIncomingOffer sells a player to the club behind its pending incoming
// offer. Without such an offer the state is returned unchanged.
func (s State) AcceptIncomingOffer(id league.PlayerID) State {
	b, _, ok := transfer.AcceptIncoming(s.Books(), id)
	if !ok {
		return s
	}
	return s.withBooks(b)
}

// RejectIncomingOffer turns down every incoming offer on a player.
func (s State) RejectIncomingOffer(id league.PlayerID) State {
	return s.withBooks(transfer.RejectIncoming(s.Books(), id))
}

// MakeOutgoingOffer bids for a market-pool player. The bid is resolved in the
// next weekly step. On error the state is returned unchanged.
func (s State) MakeOutgoingOffer(id league.PlayerID, amount decimal.Decimal) (State, error) {
	b, err := transfer.MakeOutgoing(s.Books(), id, amount, s.Week)
	if err != nil {
		return s, err
	}
	return s.withBooks(b), nil
}

// SetForSale lists or unlists one of the club's players.
func (s State) SetForSale(id league.PlayerID, forSale bool) State {
	s.Players = transfer.SetForSale(s.Players, s.Club.ID, id, forSale)
	return s
}

// AcceptManagerOffer moves the manager to the offering club and clears every
// pending job offer.
func (s State) AcceptManagerOffer(teamID league.TeamID, at time.Time) (State, error) {
	club, rep, err := career.Accept(s.Club, s.ManagerReputation, s.ManagerOffers, teamID, s.Teams)
	if err != nil {
		return s, fmt.Errorf("accept manager offer: %w", err)
	}
	s.Club = club
	s.ManagerReputation = rep
	s.ManagerOffers = nil
	s.Players, s.Offers = leaveOldSquad(s.Players, s.Offers, club.ID)
	s.Messages = prepend(s.Messages, message.New(s.Week, message.Contract,
		"Nova Carreira!",
		fmt.Sprintf("Você aceitou a oferta do %s!", club.Name),
		at))
	return s, nil
}

// leaveOldSquad unlists players outside the new club and drops AI bids on
// them, which could no longer be settled.
func leaveOldSquad(players []league.Player, offers []league.TransferOffer, club league.TeamID) ([]league.Player, []league.TransferOffer) {
	kept := make([]league.Player, len(players))
	for i, p := range players {
		if p.TeamID != club {
			p.ForSale = false
		}
		kept[i] = p
	}
	idx := league.IndexPlayers(kept)
	var open []league.TransferOffer
	for _, o := range offers {
		if o.Incoming {
			if i, ok := idx[o.PlayerID]; !ok || kept[i].TeamID != club {
				continue
			}
		}
		open = append(open, o)
	}
	return kept, open
}

// RejectManagerOffer drops the offer from one club.
func (s State) RejectManagerOffer(teamID league.TeamID) State {
	s.ManagerOffers = career.Reject(s.ManagerOffers, teamID)
	return s
}

// SetFormation changes the club's tactical setup.
func (s State) SetFormation(f league.Formation) (State, error) {
	if !f.Valid() {
		return s, fmt.Errorf("%q: %w", f, ErrInvalidFormation)
	}
	s.Club.Formation = f
	return s, nil
}

// MarkMessageRead flags one inbox entry as read.
func (s State) MarkMessageRead(id uuid.UUID) State {
	msgs := append([]message.Message(nil), s.Messages...)
	for i := range msgs {
		if msgs[i].ID == id {
			msgs[i].Read = true
		}
	}
	s.Messages = msgs
	return s
}

// CloseMatchResult dismisses the last match report.
func (s State) CloseMatchResult() State {
	s.LastResult = nil
	return s
}

func prepend(msgs []message.Message, m message.Message) []message.Message {
	out := make([]message.Message, 0, len(msgs)+1)
	out = append(out, m)
	return append(out, msgs...)
}
