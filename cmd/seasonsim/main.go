// Command seasonsim runs a football-management save game week by week.
// It resumes the saved game when there is one and saves after every week.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sevenx777-dev/sevenxfoot/internal/config"
	"github.com/sevenx777-dev/sevenxfoot/internal/engine"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/game"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
	"github.com/sevenx777-dev/sevenxfoot/internal/persistence"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	weeks := flag.Int("weeks", 1, "number of weeks to simulate")
	auto := flag.Bool("auto", false, "advance on the configured cron schedule until interrupted")
	fresh := flag.Bool("new", false, "start a new game even if a save exists")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	level, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// ── Database ──────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(cfg.Database.SQLitePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Database.SQLitePath)

	// ── Randomness ────────────────────────────────────────────────────
	var src entropy.Source = entropy.NewSeeded(cfg.Game.Seed)
	if client := entropy.NewClient(cfg.Entropy.RandomOrgKey); client != nil {
		slog.Info("random.org entropy enabled")
		src = client
	}

	// ── Load or start a game ──────────────────────────────────────────
	var state game.State
	if db.HasSavedGame() && !*fresh {
		state, err = db.LoadGame()
		if err != nil {
			slog.Error("failed to load game", "error", err)
			os.Exit(1)
		}
	} else {
		constants, err := cfg.Constants()
		if err != nil {
			slog.Error("failed to load constants", "error", err)
			os.Exit(1)
		}
		state, err = game.New(game.Options{
			ManagerName: cfg.Game.ManagerName,
			ClubID:      league.TeamID(cfg.Game.ClubID),
			Constants:   &constants,
			Seed:        cfg.Game.Seed,
		}, src, time.Now())
		if err != nil {
			slog.Error("failed to start game", "error", err)
			os.Exit(1)
		}
		if err := db.SaveGame(state); err != nil {
			slog.Error("initial save failed", "error", err)
		}
		slog.Info("new game", "manager", state.ManagerName, "club", state.Club.Name, "season", state.Season)
	}

	eng := engine.New(state, src, nil)
	eng.OnWeek = func(s game.State, r game.WeekResult) {
		if err := db.SaveGame(s); err != nil {
			slog.Error("weekly save failed", "error", err)
		}
		logMatch(r.Messages)
	}
	eng.OnSeason = func(s game.State, r game.WeekResult) {
		slog.Info("season closed", "champion", r.Champion, "new_season", s.Season, "manager_offers", len(s.ManagerOffers))
	}

	if *auto {
		runner, err := engine.NewRunner(eng, cfg.Schedule.AdvanceCron)
		if err != nil {
			slog.Error("invalid schedule", "error", err)
			os.Exit(1)
		}
		runner.Start()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	} else {
		for i := 0; i < *weeks; i++ {
			if _, err := eng.Advance(); err != nil {
				slog.Error("weekly step failed", "error", err)
				os.Exit(1)
			}
		}
	}

	printTable(eng.State())
}

func logMatch(msgs []message.Message) {
	for _, m := range msgs {
		if m.Kind() == message.KindResult {
			slog.Info("match", "title", m.Title, "score", m.Body)
		}
	}
}

func printTable(s game.State) {
	fmt.Printf("\nTemporada %d, semana %d. %s: %s em caixa, moral %d, reputação do técnico %d.\n",
		s.Season, s.Week, s.Club.Name, message.FormatMoney(s.Club.Cash), s.Club.Morale, s.ManagerReputation)
	fmt.Printf("%3s  %-16s %3s %3s %3s %3s %4s %4s\n", "#", "Clube", "J", "V", "E", "D", "SG", "Pts")
	for i, row := range s.Standings {
		marker := " "
		if row.ID == s.Club.ID {
			marker = "*"
		}
		fmt.Printf("%2d%s  %-16s %3d %3d %3d %3d %4d %4d\n",
			i+1, marker, row.Name, row.Played, row.Wins, row.Draws, row.Losses, row.GoalDiff, row.Points)
	}
	if n := s.Unread(); n > 0 {
		fmt.Printf("\n%d mensagem(ns) por ler.\n", n)
	}
}
