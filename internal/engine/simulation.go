// Weekly step: salaries, matches, table, market, development and the season
// boundary, computed from one snapshot into a single result.
package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/career"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/game"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/lifecycle"
	"github.com/sevenx777-dev/sevenxfoot/internal/match"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
	"github.com/sevenx777-dev/sevenxfoot/internal/table"
	"github.com/sevenx777-dev/sevenxfoot/internal/transfer"
)

// Club morale swing per result of the user's match.
var moraleDelta = map[match.Outcome]int{
	match.Win:  3,
	match.Draw: 1,
	match.Loss: -4,
}

// AdvanceWeek computes the week after s. s is never modified; when the
// schedule references a club missing from the table the step fails as a
// whole and nothing is returned to commit.
func AdvanceWeek(s game.State, src entropy.Source, at time.Time) (game.WeekResult, error) {
	c := s.Constants
	out := message.NewBatch(s.Week, at)
	r := game.WeekResult{
		Week:      s.Week + 1,
		Season:    s.Season,
		Standings: s.Standings,
		Players:   s.Players,
		Morale:    s.Club.Morale,
	}

	// Salaries.
	wages := weeklyWages(s.Squad(), c.SalaryWeeklyDivisor)
	cash := s.Club.Cash.Sub(wages)
	out.Add(message.Finance, "Salários Semanais", fmt.Sprintf("Pagamento de %s.", message.FormatMoney(wages)))

	// Matches.
	for _, f := range league.FixturesForWeek(s.Schedule, s.Week) {
		result, players := match.Play(f, r.Players, c, src)
		rows, err := table.Record(r.Standings, f.Home, f.Away, result.HomeScore, result.AwayScore)
		if err != nil {
			return game.WeekResult{}, fmt.Errorf("week %d fixture %d-%d: %w", s.Week, f.Home, f.Away, err)
		}
		r.Players, r.Standings = players, rows

		if !f.Involves(s.Club.ID) {
			continue
		}
		outcome := result.OutcomeFor(s.Club.ID)
		r.Morale = league.Clamp(r.Morale+moraleDelta[outcome], 0, league.MaxMorale)
		r.ManagerReputationDelta += career.MatchDelta(outcome)
		res := result
		r.Result = &res
		out.Add(message.Result, resultTitle(outcome), scoreLine(res, r.Standings))
	}
	r.Standings = table.Sort(r.Standings)

	// Market: outgoing bids settle before new AI bids arrive.
	b := s.Books()
	b.Cash, b.Players = cash, r.Players
	b = transfer.ResolveOutgoing(b, c, src, out)
	b = transfer.SolicitIncoming(b, s.Teams, c, src, out)
	r.Players, r.Market, r.Offers, cash = b.Players, b.Market, b.Offers, b.Cash

	// Development.
	players, changes := lifecycle.Weekly(r.Players, c, src)
	r.Players = players
	if body := evolutionReport(changes, s.Club.ID); body != "" {
		out.Add(message.Evolution, "Evolução do Plantel", body)
	}
	r.Standings = table.RefreshOverall(r.Standings, r.Players)

	if r.Week > s.SeasonWeeks() {
		cash = rollover(s, &r, cash, src, out)
	}

	r.Cash = cash
	r.Messages = out.Messages

	slog.Info("weekly summary",
		"season", s.Season,
		"week", s.Week,
		"cash", cash.StringFixed(2),
		"morale", r.Morale,
		"position", table.Position(r.Standings, s.Club.ID),
		"offers", len(r.Offers),
		"messages", len(r.Messages),
	)
	return r, nil
}

// weeklyWages is the squad's salary bill for one week.
func weeklyWages(squad []league.Player, divisor int64) decimal.Decimal {
	total := decimal.Zero
	for _, p := range squad {
		total = total.Add(p.Salary)
	}
	return total.Div(decimal.NewFromInt(max(divisor, 1))).Round(2)
}

func resultTitle(o match.Outcome) string {
	switch o {
	case match.Win:
		return "Vitória!"
	case match.Draw:
		return "Empate"
	}
	return "Derrota"
}

func scoreLine(r match.Result, rows []league.Standing) string {
	name := func(id league.TeamID) string {
		if i := table.Position(rows, id); i > 0 {
			return rows[i-1].Name
		}
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("%s %d x %d %s", name(r.Fixture.Home), r.HomeScore, r.AwayScore, name(r.Fixture.Away))
}

func evolutionReport(changes []lifecycle.Change, club league.TeamID) string {
	var lines []string
	for _, ch := range changes {
		if ch.TeamID == club {
			lines = append(lines, fmt.Sprintf("%s: %d para %d", ch.Name, ch.From, ch.To))
		}
	}
	return strings.Join(lines, "\n")
}
