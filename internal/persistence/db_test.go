package persistence

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sevenx777-dev/sevenxfoot/internal/engine"
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
	"github.com/sevenx777-dev/sevenxfoot/internal/game"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "save.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func playedGame(t *testing.T) game.State {
	t.Helper()
	at := time.Date(2025, 4, 5, 15, 30, 0, 0, time.UTC)
	teams := league.DefaultTeams()[:4]
	s, err := game.New(game.Options{ManagerName: "Rui", ClubID: teams[0].ID, Teams: teams, Seed: 9}, entropy.NewSeeded(9), at)
	if err != nil {
		t.Fatal(err)
	}

	s = s.SetForSale(s.Squad()[0].ID, true)
	s.Constants.AIOfferChance = 1
	s, err = s.MakeOutgoingOffer(s.Market[0].ID, s.Market[0].Value)
	if err != nil {
		t.Fatal(err)
	}

	src := entropy.NewSeeded(10)
	for i := 0; i < 2; i++ {
		r, err := engine.AdvanceWeek(s, src, at)
		if err != nil {
			t.Fatal(err)
		}
		s = s.Commit(r)
	}
	s.ManagerOffers = []league.ManagerOffer{{TeamID: 2, TeamName: "Flamengo", TeamReputation: 90, SalaryIncrease: 10, ReputationChange: 8}}
	return s.MarkMessageRead(s.Messages[len(s.Messages)-1].ID)
}

func TestSaveAndLoadGame(t *testing.T) {
	db := openTemp(t)
	want := playedGame(t)

	if err := db.SaveGame(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !db.HasSavedGame() {
		t.Fatal("HasSavedGame = false after save")
	}

	got, err := db.LoadGame()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts := cmp.Options{cmp.AllowUnexported(message.Notice{}), cmpopts.EquateEmpty()}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("state changed across save (-want +got):\n%s", diff)
	}
	if len(got.Offers) == 0 || got.LastResult == nil {
		t.Errorf("fixture game lacks offers or a match report: offers=%d", len(got.Offers))
	}
}

func TestSaveReplacesPreviousGame(t *testing.T) {
	db := openTemp(t)
	s := playedGame(t)
	if err := db.SaveGame(s); err != nil {
		t.Fatal(err)
	}

	s = s.CloseMatchResult()
	s.Offers = nil
	s.Week = 5
	if err := db.SaveGame(s); err != nil {
		t.Fatal(err)
	}

	got, err := db.LoadGame()
	if err != nil {
		t.Fatal(err)
	}
	if got.Week != 5 || len(got.Offers) != 0 || got.LastResult != nil {
		t.Errorf("week=%d offers=%d last=%v", got.Week, len(got.Offers), got.LastResult)
	}
	if v, err := db.GetMeta("manager_name"); err != nil || v != "Rui" {
		t.Errorf("manager meta = %q, %v", v, err)
	}
}

func TestLoadWithoutSave(t *testing.T) {
	db := openTemp(t)
	if db.HasSavedGame() {
		t.Fatal("fresh file reports a saved game")
	}
	if _, err := db.LoadGame(); !errors.Is(err, ErrNoSavedGame) {
		t.Errorf("err = %v, want ErrNoSavedGame", err)
	}
}

func TestSavePatchedGameWithClashingIDs(t *testing.T) {
	db := openTemp(t)
	s := playedGame(t)

	var bundle []league.Player
	for id := league.PlayerID(1); id <= s.Market[0].ID; id++ {
		bundle = append(bundle, league.Player{ID: id, Name: "Reforço", TeamID: s.Club.ID, Overall: 60})
	}
	s = s.ApplyPatch(game.Patch{Players: bundle})

	if err := db.SaveGame(s); err != nil {
		t.Fatalf("save patched game: %v", err)
	}
	got, err := db.LoadGame()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Players) != len(bundle) || len(got.Market) != len(s.Market) {
		t.Errorf("loaded %d players and %d free agents, want %d and %d",
			len(got.Players), len(got.Market), len(bundle), len(s.Market))
	}
}
