// Package transfer runs the two-sided transfer market: resolution of the
// user's bids on market-pool players, AI bids on players the user listed for
// sale, and the user's direct actions on offers.
package transfer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/chance"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
)

var (
	// ErrInsufficientFunds is returned when a bid exceeds the club's cash.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNotInMarket is returned when a bid targets a player outside the market pool.
	ErrNotInMarket = errors.New("player not in transfer market")
)

// Acceptance thresholds as fractions of the target's market value.
var (
	normalBidRatio = decimal.RequireFromString("0.9")
	highBidRatio   = decimal.RequireFromString("1.1")
)

// AI bid range as fractions of the player's value.
const (
	minSuitorRatio = 0.8
	maxSuitorRatio = 1.2
)

// Books is the slice of game state the market reads and writes.
type Books struct {
	ClubID   league.TeamID
	ClubName string
	Cash     decimal.Decimal
	Players  []league.Player // every club's roster
	Market   []league.Player // free-agent pool
	Offers   []league.TransferOffer
}

// clone returns Books whose slices can be modified without touching b.
func (b Books) clone() Books {
	b.Players = append([]league.Player(nil), b.Players...)
	b.Market = append([]league.Player(nil), b.Market...)
	b.Offers = append([]league.TransferOffer(nil), b.Offers...)
	return b
}

// ResolveOutgoing settles every pending outgoing bid. Incoming offers pass
// through untouched; settled and lapsed outgoing offers are dropped.
func ResolveOutgoing(b Books, c league.Constants, src entropy.Source, out *message.Batch) Books {
	next := b.clone()
	next.Offers = next.Offers[:0]

	for _, offer := range b.Offers {
		if offer.Incoming {
			next.Offers = append(next.Offers, offer)
			continue
		}
		if offer.Status != league.OfferPending {
			continue
		}

		i := indexOf(next.Market, offer.PlayerID)
		if i < 0 {
			offer.Status = league.OfferRejected
			out.Add(message.TransferRejected{Offer: offer, Cancelled: true},
				fmt.Sprintf("Oferta por %s Cancelada", offer.PlayerName),
				fmt.Sprintf("A oferta por %s foi cancelada (jogador não disponível).", offer.PlayerName))
			continue
		}
		target := next.Market[i]

		if accepts(offer.Amount, target.Value, c, src) {
			offer.Status = league.OfferAccepted
			next.Market = append(next.Market[:i:i], next.Market[i+1:]...)
			target.TeamID, target.TeamName, target.ForSale = b.ClubID, b.ClubName, false
			next.Players = append(next.Players, target)
			next.Cash = next.Cash.Sub(offer.Amount)
			out.Add(message.TransferAccepted{Offer: offer},
				fmt.Sprintf("Oferta por %s Aceite!", target.Name),
				fmt.Sprintf("%s foi contratado por %s!", target.Name, message.FormatMoney(offer.Amount)))
			continue
		}

		offer.Status = league.OfferRejected
		out.Add(message.TransferRejected{Offer: offer},
			"Oferta Rejeitada",
			fmt.Sprintf("A oferta por %s foi rejeitada.", target.Name))
	}
	return next
}

// accepts runs the two independent acceptance trials. A bid at 90% of value
// rolls against the normal chance; failing that, a bid at 110% gets a second
// roll against the high chance.
func accepts(amount, value decimal.Decimal, c league.Constants, src entropy.Source) bool {
	if amount.GreaterThanOrEqual(value.Mul(normalBidRatio)) && chance.Roll(src, c.NormalAcceptChance) {
		return true
	}
	return amount.GreaterThanOrEqual(value.Mul(highBidRatio)) && chance.Roll(src, c.HighAcceptChance)
}

// SolicitIncoming gives every listed player of the user's club a chance to
// attract a bid from a random other club.
func SolicitIncoming(b Books, teams []league.Team, c league.Constants, src entropy.Source, out *message.Batch) Books {
	next := b.clone()

	var suitors []league.Team
	for _, t := range teams {
		if t.ID != b.ClubID {
			suitors = append(suitors, t)
		}
	}

	for _, p := range b.Players {
		if p.TeamID != b.ClubID || !p.ForSale {
			continue
		}
		if !c.AllowMultipleSuitors && hasPendingIncoming(next.Offers, p.ID) {
			continue
		}
		if !chance.Roll(src, c.AIOfferChance) {
			continue
		}
		suitor, ok := chance.Pick(src, suitors)
		if !ok {
			continue
		}

		ratio := decimal.NewFromFloat(chance.Uniform(src, minSuitorRatio, maxSuitorRatio))
		offer := league.TransferOffer{
			ID:         uuid.New(),
			PlayerID:   p.ID,
			PlayerName: p.Name,
			TeamID:     suitor.ID,
			TeamName:   suitor.Name,
			Amount:     p.Value.Mul(ratio).Floor(),
			Status:     league.OfferPending,
			Incoming:   true,
			Week:       out.Week,
		}
		next.Offers = append(next.Offers, offer)
		out.Add(message.TransferIncoming{Offer: offer},
			fmt.Sprintf("Oferta por %s", p.Name),
			fmt.Sprintf("%s fez uma oferta de %s.", suitor.Name, message.FormatMoney(offer.Amount)))
	}
	return next
}

func hasPendingIncoming(offers []league.TransferOffer, id league.PlayerID) bool {
	for _, o := range offers {
		if o.Incoming && o.Status == league.OfferPending && o.PlayerID == id {
			return true
		}
	}
	return false
}

func indexOf(players []league.Player, id league.PlayerID) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
