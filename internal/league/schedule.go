package league

// bye pads odd-sized leagues; fixtures against it are dropped.
const bye TeamID = -1

// GenerateSchedule builds a double round-robin with the circle method. The
// second half mirrors the first with home and away swapped.
func GenerateSchedule(teams []Team) []Fixture {
	ids := make([]TeamID, 0, len(teams)+1)
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	if len(ids)%2 != 0 {
		ids = append(ids, bye)
	}

	n := len(ids)
	rounds := n - 1
	var first []Fixture
	for round := 0; round < rounds; round++ {
		for m := 0; m < n/2; m++ {
			home := (round + m) % (n - 1)
			away := (n - 1 - m + round) % (n - 1)
			if m == 0 {
				away = n - 1
			}
			first = append(first, Fixture{Week: round + 1, Home: ids[home], Away: ids[away]})
		}
	}

	schedule := make([]Fixture, 0, 2*len(first))
	for _, f := range first {
		if f.Home != bye && f.Away != bye {
			schedule = append(schedule, f)
		}
	}
	for _, f := range first {
		if f.Home != bye && f.Away != bye {
			schedule = append(schedule, Fixture{Week: f.Week + rounds, Home: f.Away, Away: f.Home})
		}
	}
	return schedule
}

// SeasonWeeks is the number of match weeks in a season: 2 × (teamCount − 1),
// counting the bye slot when the league has an odd number of clubs.
func SeasonWeeks(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	if teamCount%2 != 0 {
		teamCount++
	}
	return 2 * (teamCount - 1)
}

// FixturesForWeek filters the schedule down to one week.
func FixturesForWeek(schedule []Fixture, week int) []Fixture {
	var out []Fixture
	for _, f := range schedule {
		if f.Week == week {
			out = append(out, f)
		}
	}
	return out
}
