package transfer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

// AcceptIncoming sells a listed player to the club behind its pending
// incoming offer. ok is false, and b is returned as is, when no such offer
// exists.
func AcceptIncoming(b Books, id league.PlayerID) (next Books, accepted league.TransferOffer, ok bool) {
	i := -1
	for j, o := range b.Offers {
		if o.Incoming && o.Status == league.OfferPending && o.PlayerID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return b, league.TransferOffer{}, false
	}
	accepted = b.Offers[i]

	p := indexOf(b.Players, id)
	if p < 0 || b.Players[p].TeamID != b.ClubID {
		return b, league.TransferOffer{}, false
	}

	next = b.clone()
	sold := &next.Players[p]
	sold.TeamID, sold.TeamName, sold.ForSale = accepted.TeamID, accepted.TeamName, false
	next.Cash = next.Cash.Add(accepted.Amount)
	next.Offers = withoutPlayer(next.Offers, id, func(league.TransferOffer) bool { return true })

	accepted.Status = league.OfferAccepted
	return next, accepted, true
}

// RejectIncoming drops every incoming offer on a player.
func RejectIncoming(b Books, id league.PlayerID) Books {
	next := b.clone()
	next.Offers = withoutPlayer(next.Offers, id, func(o league.TransferOffer) bool { return o.Incoming })
	return next
}

// MakeOutgoing records a pending bid on a market-pool player. The bid is
// refused before it is recorded when the player is not in the pool or the
// club cannot cover the amount; b is returned unchanged in both cases.
func MakeOutgoing(b Books, id league.PlayerID, amount decimal.Decimal, week int) (Books, error) {
	i := indexOf(b.Market, id)
	if i < 0 {
		return b, fmt.Errorf("player %d: %w", id, ErrNotInMarket)
	}
	if b.Cash.LessThan(amount) {
		return b, fmt.Errorf("bid %s with %s available: %w", amount, b.Cash, ErrInsufficientFunds)
	}

	next := b.clone()
	next.Offers = append(next.Offers, league.TransferOffer{
		ID:         uuid.New(),
		PlayerID:   id,
		PlayerName: b.Market[i].Name,
		TeamID:     b.ClubID,
		TeamName:   b.ClubName,
		Amount:     amount,
		Status:     league.OfferPending,
		Week:       week,
	})
	return next, nil
}

// SetForSale flags or unflags one of the club's own players. Players of
// other clubs are left alone.
func SetForSale(players []league.Player, club league.TeamID, id league.PlayerID, forSale bool) []league.Player {
	out := append([]league.Player(nil), players...)
	for i := range out {
		if out[i].ID == id && out[i].TeamID == club {
			out[i].ForSale = forSale
		}
	}
	return out
}

// PendingIncoming returns the pending incoming offers on a player.
func PendingIncoming(offers []league.TransferOffer, id league.PlayerID) []league.TransferOffer {
	var out []league.TransferOffer
	for _, o := range offers {
		if o.Incoming && o.Status == league.OfferPending && o.PlayerID == id {
			out = append(out, o)
		}
	}
	return out
}

func withoutPlayer(offers []league.TransferOffer, id league.PlayerID, match func(league.TransferOffer) bool) []league.TransferOffer {
	out := offers[:0:0]
	for _, o := range offers {
		if o.PlayerID == id && match(o) {
			continue
		}
		out = append(out, o)
	}
	return out
}
