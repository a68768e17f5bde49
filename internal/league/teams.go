package league

// DefaultTeams is the stock league database of a new game.
func DefaultTeams() []Team {
	return []Team{
		{ID: 1, Name: "FC Santos", Reputation: 85},
		{ID: 2, Name: "Flamengo", Reputation: 90},
		{ID: 3, Name: "Palmeiras", Reputation: 88},
		{ID: 4, Name: "São Paulo", Reputation: 82},
		{ID: 5, Name: "Grêmio", Reputation: 78},
		{ID: 6, Name: "Internacional", Reputation: 76},
		{ID: 7, Name: "Atlético-MG", Reputation: 80},
		{ID: 8, Name: "Cruzeiro", Reputation: 70},
		{ID: 9, Name: "Fluminense", Reputation: 75},
		{ID: 10, Name: "Botafogo", Reputation: 68},
		{ID: 11, Name: "Corinthians", Reputation: 83},
		{ID: 12, Name: "Vasco", Reputation: 65},
	}
}
