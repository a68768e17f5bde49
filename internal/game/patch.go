package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/table"
)

// Patch is a community data bundle. Empty sections leave the matching part
// of the league alone.
type Patch struct {
	Name      string            `yaml:"name"`
	Teams     []league.Team     `yaml:"teams"`
	Players   []league.Player   `yaml:"players"`
	Constants *league.Constants `yaml:"constants"`
}

type patchFile struct {
	Name      string          `yaml:"name"`
	Teams     []league.Team   `yaml:"teams"`
	Players   []league.Player `yaml:"players"`
	Constants yaml.Node       `yaml:"constants"`
}

// LoadPatch reads a patch bundle from a YAML file. Constants missing from
// the bundle's constants section take their default values.
func LoadPatch(path string) (Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Patch{}, fmt.Errorf("read patch: %w", err)
	}
	var raw patchFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Patch{}, fmt.Errorf("parse patch %s: %w", path, err)
	}
	p := Patch{Name: raw.Name, Teams: raw.Teams, Players: raw.Players}
	if !raw.Constants.IsZero() {
		c := league.DefaultConstants()
		if err := raw.Constants.Decode(&c); err != nil {
			return Patch{}, fmt.Errorf("parse patch constants: %w", err)
		}
		p.Constants = &c
	}
	return p, nil
}

// ApplyPatch replaces league data with the bundle's. Existing table rows keep
// their season record and take the patched name, logo and reputation; clubs
// new to the league join with an empty row and the schedule is rebuilt.
func (s State) ApplyPatch(p Patch) State {
	if len(p.Players) > 0 {
		players := append([]league.Player(nil), p.Players...)
		for _, pl := range players {
			s.IDs.Observe(pl.ID)
		}
		// Free agents stay in the market, so bundle IDs must not collide with them
		// or with each other.
		taken := make(map[league.PlayerID]bool, len(s.Market)+len(players))
		for _, m := range s.Market {
			taken[m.ID] = true
		}
		for i := range players {
			if players[i].ID <= 0 || taken[players[i].ID] {
				players[i].ID = s.IDs.Allocate()
			}
			taken[players[i].ID] = true
		}
		s.Players = players
	}
	if p.Constants != nil {
		s.Constants = *p.Constants
	}

	if len(p.Teams) > 0 {
		rows := make([]league.Standing, 0, len(s.Standings)+len(p.Teams))
		for _, row := range s.Standings {
			if t, ok := league.FindTeam(p.Teams, row.ID); ok {
				row.Team = t
			}
			rows = append(rows, row)
		}
		added := false
		for _, t := range p.Teams {
			if table.Position(rows, t.ID) == 0 {
				rows = append(rows, league.NewStanding(t, 0))
				added = true
			}
		}
		s.Standings = rows
		s.Teams = append([]league.Team(nil), p.Teams...)

		if t, ok := league.FindTeam(p.Teams, s.Club.ID); ok {
			s.Club.Name, s.Club.Reputation = t.Name, t.Reputation
		}
		if added {
			teams := make([]league.Team, len(rows))
			for i, row := range rows {
				teams[i] = row.Team
			}
			s.Schedule = league.GenerateSchedule(teams)
		}
	}

	s.Standings = table.Sort(table.RefreshOverall(s.Standings, s.Players))
	return s
}
