// Command patcher applies community data bundles (teams, players, constants)
// to the saved game.
//
//	patcher [-config config.yaml] [-dry-run] bundle.yaml...
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sevenx777-dev/sevenxfoot/internal/config"
	"github.com/sevenx777-dev/sevenxfoot/internal/game"
	"github.com/sevenx777-dev/sevenxfoot/internal/persistence"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	dryRun := flag.Bool("dry-run", false, "report what would change without saving")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: patcher [-config file] [-dry-run] bundle.yaml...")
		os.Exit(2)
	}

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

	db, err := persistence.Open(cfg.Database.SQLitePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	state, err := db.LoadGame()
	if err != nil {
		slog.Error("failed to load game", "path", cfg.Database.SQLitePath, "error", err)
		os.Exit(1)
	}

	for _, path := range flag.Args() {
		patch, err := game.LoadPatch(path)
		if err != nil {
			slog.Error("skipping bundle", "path", path, "error", err)
			continue
		}
		before := state
		state = state.ApplyPatch(patch)
		slog.Info("bundle applied",
			"path", path,
			"name", patch.Name,
			"teams", fmt.Sprintf("%d -> %d", len(before.Teams), len(state.Teams)),
			"players", fmt.Sprintf("%d -> %d", len(before.Players), len(state.Players)),
			"constants", patch.Constants != nil,
			"schedule_rebuilt", len(before.Schedule) != len(state.Schedule),
		)
	}

	if *dryRun {
		slog.Info("dry run, nothing saved")
		return
	}
	if err := db.SaveGame(state); err != nil {
		slog.Error("save failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Patched save: %d clubs, %d players.\n", len(state.Teams), len(state.Players))
}
