// Season boundary: title, prize, reputation and job offers, then the reset
// of the table and of per-season player stats.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/career"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/game"
	"github.com/sevenx777-dev/sevenxfoot/internal/lifecycle"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
	"github.com/sevenx777-dev/sevenxfoot/internal/table"
)

// rollover closes the season s is in. It fills the season fields of r and
// returns the club's cash after any prize.
func rollover(s game.State, r *game.WeekResult, cash decimal.Decimal, src entropy.Source, out *message.Batch) decimal.Decimal {
	c := s.Constants
	r.Rollover = true
	r.Week = 1
	r.Season = s.Season + 1

	champion, ok := table.Leader(r.Standings)
	if ok {
		r.Champion = champion.ID
		out.Add(message.Award, "Fim da Temporada!",
			fmt.Sprintf("A temporada %d chegou ao fim! O grande campeão foi %s!", s.Season, champion.Name))
	}

	won := ok && champion.ID == s.Club.ID
	if won {
		cash = cash.Add(c.LeaguePrize)
		out.Add(message.Finance, "Prémio de Campeão!",
			fmt.Sprintf("Você recebeu %s!", message.FormatMoney(c.LeaguePrize)))
	}
	if pos := table.Position(r.Standings, s.Club.ID); pos > 0 {
		r.ManagerReputationDelta += career.SeasonDelta(pos, len(r.Standings), won)
	}

	// Offers are judged on the reputation the manager ended the season with,
	// before this step's changes land.
	r.ManagerOffers = career.GenerateOffers(s.Teams, s.Club.ID, s.ManagerReputation, c, src)
	if n := len(r.ManagerOffers); n > 0 {
		out.Add(message.ManagerOffers{Offers: r.ManagerOffers}, "Oferta de Emprego!",
			fmt.Sprintf("Você recebeu %d nova(s) oferta(s) de emprego!", n))
	}

	r.Players = lifecycle.NewSeason(r.Players, r.Season)
	r.Standings = table.Reset(r.Standings)

	slog.Info("season rollover",
		"season", s.Season,
		"champion", champion.Name,
		"won", won,
		"manager_offers", len(r.ManagerOffers),
	)
	return cash
}
