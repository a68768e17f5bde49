package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.SQLitePath != "data/sevenxfoot.db" || cfg.Schedule.AdvanceCron != "@every 30s" || cfg.Game.ClubID != 1 {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := `database:
  sqlite_path: from-file.db
game:
  seed: 7
  manager_name: Ana
  club_id: 3
log:
  level: debug
constants_file: ` + filepath.Join(dir, "constants.yaml") + `
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "constants.yaml"), []byte("league_prize: \"20000000\"\nai_offer_chance: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SEVENXFOOT_DB", "from-env.db")
	t.Setenv("SEVENXFOOT_SEED", "11")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.SQLitePath != "from-env.db" || cfg.Game.Seed != 11 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Game.ManagerName != "Ana" || cfg.Game.ClubID != 3 {
		t.Errorf("file values lost: %+v", cfg.Game)
	}
	if level, err := cfg.LogLevel(); err != nil || level != slog.LevelDebug {
		t.Errorf("level = %v, %v", level, err)
	}

	c, err := cfg.Constants()
	if err != nil {
		t.Fatal(err)
	}
	if c.AIOfferChance != 0.5 || c.LeaguePrize.IntPart() != 20_000_000 || c.SalaryWeeklyDivisor != 52 {
		t.Errorf("constants = %+v", c)
	}
}

func TestLoadBadSeed(t *testing.T) {
	t.Setenv("SEVENXFOOT_SEED", "abc")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric seed")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Log.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
	cfg.Log.Level = "warn"
	cfg.Game.ClubID = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative club id")
	}
}
