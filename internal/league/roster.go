package league

// SquadOf returns the players attached to a club, in roster order.
func SquadOf(players []Player, team TeamID) []Player {
	var squad []Player
	for _, p := range players {
		if p.TeamID == team {
			squad = append(squad, p)
		}
	}
	return squad
}

// AverageOverall returns the mean overall of a squad, 0 when empty.
func AverageOverall(squad []Player) float64 {
	if len(squad) == 0 {
		return 0
	}
	total := 0
	for _, p := range squad {
		total += p.Overall
	}
	return float64(total) / float64(len(squad))
}

// IndexPlayers maps player IDs to their slice positions.
func IndexPlayers(players []Player) map[PlayerID]int {
	idx := make(map[PlayerID]int, len(players))
	for i, p := range players {
		idx[p.ID] = i
	}
	return idx
}

// FindTeam looks a team up by ID.
func FindTeam(teams []Team, id TeamID) (Team, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// IDAllocator hands out player IDs for one game session. It lives on the
// game state so a new game starts from a clean counter.
type IDAllocator struct {
	Next PlayerID `json:"next"`
}

// Allocate returns the next unused ID.
func (a *IDAllocator) Allocate() PlayerID {
	if a.Next < 1 {
		a.Next = 1
	}
	id := a.Next
	a.Next++
	return id
}

// Observe bumps the counter past an ID that entered the session from outside.
func (a *IDAllocator) Observe(id PlayerID) {
	if id >= a.Next {
		a.Next = id + 1
	}
}
