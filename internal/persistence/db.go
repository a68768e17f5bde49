// Package persistence stores save games in a single SQLite file.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/sevenx777-dev/sevenxfoot/internal/game"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/match"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
)

// ErrNoSavedGame is returned by LoadGame when the file holds no game.
var ErrNoSavedGame = errors.New("no saved game")

// DB wraps a SQLite connection for save-game storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		seq INTEGER NOT NULL,
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		team_id INTEGER NOT NULL,
		team_name TEXT NOT NULL,
		position TEXT NOT NULL,
		age INTEGER NOT NULL,
		overall INTEGER NOT NULL,
		potential INTEGER NOT NULL,
		salary TEXT NOT NULL,
		contract INTEGER NOT NULL,
		morale INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		goals INTEGER NOT NULL,
		assists INTEGER NOT NULL,
		yellow_cards INTEGER NOT NULL,
		red_cards INTEGER NOT NULL,
		injury_weeks INTEGER NOT NULL,
		suspension_weeks INTEGER NOT NULL,
		value TEXT NOT NULL,
		for_sale INTEGER NOT NULL,
		in_market INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS teams (
		seq INTEGER NOT NULL,
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		logo_url TEXT NOT NULL,
		reputation INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS standings (
		position INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		logo_url TEXT NOT NULL,
		reputation INTEGER NOT NULL,
		played INTEGER NOT NULL,
		wins INTEGER NOT NULL,
		draws INTEGER NOT NULL,
		losses INTEGER NOT NULL,
		goals_for INTEGER NOT NULL,
		goals_against INTEGER NOT NULL,
		goal_diff INTEGER NOT NULL,
		points INTEGER NOT NULL,
		overall REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fixtures (
		seq INTEGER PRIMARY KEY,
		week INTEGER NOT NULL,
		home_team_id INTEGER NOT NULL,
		away_team_id INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transfer_offers (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		player_id INTEGER NOT NULL,
		player_name TEXT NOT NULL,
		offering_team_id INTEGER NOT NULL,
		offering_team_name TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		is_incoming INTEGER NOT NULL,
		week INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS manager_offers (
		seq INTEGER PRIMARY KEY,
		offering_team_id INTEGER NOT NULL,
		offering_team_name TEXT NOT NULL,
		offering_team_reputation INTEGER NOT NULL,
		salary_increase INTEGER NOT NULL,
		reputation_change INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		week INTEGER NOT NULL,
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		read INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		payload_json TEXT
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_players_team ON players(team_id);
	CREATE INDEX IF NOT EXISTS idx_offers_player ON transfer_offers(player_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type playerRow struct {
	Seq int `db:"seq"`
	league.Player
	InMarket bool `db:"in_market"`
}

type teamRow struct {
	Seq int `db:"seq"`
	league.Team
}

type standingRow struct {
	Position int `db:"position"`
	league.Standing
}

type fixtureRow struct {
	Seq int `db:"seq"`
	league.Fixture
}

type offerRow struct {
	Seq int `db:"seq"`
	league.TransferOffer
}

type managerOfferRow struct {
	Seq int `db:"seq"`
	league.ManagerOffer
}

type messageRow struct {
	Seq       int            `db:"seq"`
	ID        uuid.UUID      `db:"id"`
	Week      int            `db:"week"`
	Kind      message.Kind   `db:"kind"`
	Title     string         `db:"title"`
	Body      string         `db:"body"`
	Read      bool           `db:"read"`
	CreatedAt string         `db:"created_at"`
	Payload   sql.NullString `db:"payload_json"`
}

// Meta keys.
const (
	metaManagerName       = "manager_name"
	metaSeason            = "season"
	metaWeek              = "week"
	metaManagerReputation = "manager_reputation"
	metaNextPlayerID      = "next_player_id"
	metaClub              = "club_json"
	metaConstants         = "constants_json"
	metaLastResult        = "last_result_json"
)

// SaveGame writes the whole state in one transaction (full replace).
func (db *DB) SaveGame(s game.State) error {
	slog.Info("saving game", "season", s.Season, "week", s.Week, "players", len(s.Players)+len(s.Market))

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"players", "teams", "standings", "fixtures", "transfer_offers", "manager_offers", "messages", "game_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := savePlayers(tx, s.Players, false); err != nil {
		return err
	}
	if err := savePlayers(tx, s.Market, true); err != nil {
		return err
	}

	for i, t := range s.Teams {
		if _, err := tx.NamedExec(`INSERT INTO teams (seq, id, name, logo_url, reputation)
			VALUES (:seq, :id, :name, :logo_url, :reputation)`, teamRow{Seq: i, Team: t}); err != nil {
			return fmt.Errorf("insert team %d: %w", t.ID, err)
		}
	}

	for i, row := range s.Standings {
		if _, err := tx.NamedExec(`INSERT INTO standings
			(position, id, name, logo_url, reputation, played, wins, draws, losses,
			 goals_for, goals_against, goal_diff, points, overall)
			VALUES (:position, :id, :name, :logo_url, :reputation, :played, :wins, :draws, :losses,
			 :goals_for, :goals_against, :goal_diff, :points, :overall)`,
			standingRow{Position: i + 1, Standing: row}); err != nil {
			return fmt.Errorf("insert standing %d: %w", row.ID, err)
		}
	}

	for i, f := range s.Schedule {
		if _, err := tx.NamedExec(`INSERT INTO fixtures (seq, week, home_team_id, away_team_id)
			VALUES (:seq, :week, :home_team_id, :away_team_id)`, fixtureRow{Seq: i, Fixture: f}); err != nil {
			return fmt.Errorf("insert fixture: %w", err)
		}
	}

	for i, o := range s.Offers {
		if _, err := tx.NamedExec(`INSERT INTO transfer_offers
			(seq, id, player_id, player_name, offering_team_id, offering_team_name, amount, status, is_incoming, week)
			VALUES (:seq, :id, :player_id, :player_name, :offering_team_id, :offering_team_name, :amount, :status, :is_incoming, :week)`,
			offerRow{Seq: i, TransferOffer: o}); err != nil {
			return fmt.Errorf("insert offer %s: %w", o.ID, err)
		}
	}

	for i, o := range s.ManagerOffers {
		if _, err := tx.NamedExec(`INSERT INTO manager_offers
			(seq, offering_team_id, offering_team_name, offering_team_reputation, salary_increase, reputation_change)
			VALUES (:seq, :offering_team_id, :offering_team_name, :offering_team_reputation, :salary_increase, :reputation_change)`,
			managerOfferRow{Seq: i, ManagerOffer: o}); err != nil {
			return fmt.Errorf("insert manager offer %d: %w", o.TeamID, err)
		}
	}

	for i, m := range s.Messages {
		row, err := toMessageRow(i, m)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExec(`INSERT INTO messages
			(seq, id, week, kind, title, body, read, created_at, payload_json)
			VALUES (:seq, :id, :week, :kind, :title, :body, :read, :created_at, :payload_json)`, row); err != nil {
			return fmt.Errorf("insert message %s: %w", m.ID, err)
		}
	}

	meta := map[string]string{
		metaManagerName:       s.ManagerName,
		metaSeason:            strconv.Itoa(s.Season),
		metaWeek:              strconv.Itoa(s.Week),
		metaManagerReputation: strconv.Itoa(s.ManagerReputation),
		metaNextPlayerID:      strconv.FormatInt(int64(s.IDs.Next), 10),
	}
	for key, v := range map[string]any{metaClub: s.Club, metaConstants: s.Constants, metaLastResult: s.LastResult} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		meta[key] = string(data)
	}
	for key, value := range meta {
		if _, err := tx.Exec("INSERT INTO game_meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("save meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("game saved")
	return nil
}

func savePlayers(tx *sqlx.Tx, players []league.Player, market bool) error {
	stmt, err := tx.PrepareNamed(`INSERT INTO players
		(seq, id, name, team_id, team_name, position, age, overall, potential, salary, contract,
		 morale, energy, goals, assists, yellow_cards, red_cards, injury_weeks, suspension_weeks,
		 value, for_sale, in_market)
		VALUES (:seq, :id, :name, :team_id, :team_name, :position, :age, :overall, :potential, :salary, :contract,
		 :morale, :energy, :goals, :assists, :yellow_cards, :red_cards, :injury_weeks, :suspension_weeks,
		 :value, :for_sale, :in_market)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range players {
		if _, err := stmt.Exec(playerRow{Seq: i, Player: p, InMarket: market}); err != nil {
			return fmt.Errorf("insert player %d: %w", p.ID, err)
		}
	}
	return nil
}

func toMessageRow(seq int, m message.Message) (messageRow, error) {
	payload, err := message.EncodePayload(m.Event)
	if err != nil {
		return messageRow{}, fmt.Errorf("encode message %s: %w", m.ID, err)
	}
	return messageRow{
		Seq:       seq,
		ID:        m.ID,
		Week:      m.Week,
		Kind:      m.Kind(),
		Title:     m.Title,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339Nano),
		Payload:   sql.NullString{String: string(payload), Valid: payload != nil},
	}, nil
}

func (r messageRow) message() (message.Message, error) {
	ev, err := message.DecodeEvent(r.Kind, []byte(r.Payload.String))
	if err != nil {
		return message.Message{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return message.Message{}, fmt.Errorf("message %s timestamp: %w", r.ID, err)
	}
	return message.Message{
		ID:        r.ID,
		Week:      r.Week,
		Title:     r.Title,
		Body:      r.Body,
		Read:      r.Read,
		CreatedAt: at,
		Event:     ev,
	}, nil
}

// HasSavedGame reports whether the file holds a game.
func (db *DB) HasSavedGame() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM game_meta WHERE key = ?", metaSeason); err != nil {
		return false
	}
	return count > 0
}

// LoadGame reads the saved game back.
func (db *DB) LoadGame() (game.State, error) {
	if !db.HasSavedGame() {
		return game.State{}, ErrNoSavedGame
	}

	var s game.State
	meta, err := db.allMeta()
	if err != nil {
		return s, err
	}
	s.ManagerName = meta[metaManagerName]
	for key, into := range map[string]*int{metaSeason: &s.Season, metaWeek: &s.Week, metaManagerReputation: &s.ManagerReputation} {
		if *into, err = strconv.Atoi(meta[key]); err != nil {
			return s, fmt.Errorf("meta %s: %w", key, err)
		}
	}
	next, err := strconv.ParseInt(meta[metaNextPlayerID], 10, 64)
	if err != nil {
		return s, fmt.Errorf("meta %s: %w", metaNextPlayerID, err)
	}
	s.IDs.Next = league.PlayerID(next)
	if err := json.Unmarshal([]byte(meta[metaClub]), &s.Club); err != nil {
		return s, fmt.Errorf("decode club: %w", err)
	}
	if err := json.Unmarshal([]byte(meta[metaConstants]), &s.Constants); err != nil {
		return s, fmt.Errorf("decode constants: %w", err)
	}
	var last *match.Result
	if err := json.Unmarshal([]byte(meta[metaLastResult]), &last); err != nil {
		return s, fmt.Errorf("decode last result: %w", err)
	}
	s.LastResult = last

	if s.Players, err = db.loadPlayers(false); err != nil {
		return s, err
	}
	if s.Market, err = db.loadPlayers(true); err != nil {
		return s, err
	}

	var teams []teamRow
	if err := db.conn.Select(&teams, "SELECT * FROM teams ORDER BY seq"); err != nil {
		return s, fmt.Errorf("load teams: %w", err)
	}
	for _, t := range teams {
		s.Teams = append(s.Teams, t.Team)
	}

	var rows []standingRow
	if err := db.conn.Select(&rows, "SELECT * FROM standings ORDER BY position"); err != nil {
		return s, fmt.Errorf("load standings: %w", err)
	}
	for _, r := range rows {
		s.Standings = append(s.Standings, r.Standing)
	}

	var fixtures []fixtureRow
	if err := db.conn.Select(&fixtures, "SELECT * FROM fixtures ORDER BY seq"); err != nil {
		return s, fmt.Errorf("load fixtures: %w", err)
	}
	for _, f := range fixtures {
		s.Schedule = append(s.Schedule, f.Fixture)
	}

	var offers []offerRow
	if err := db.conn.Select(&offers, "SELECT * FROM transfer_offers ORDER BY seq"); err != nil {
		return s, fmt.Errorf("load offers: %w", err)
	}
	for _, o := range offers {
		s.Offers = append(s.Offers, o.TransferOffer)
	}

	var managerOffers []managerOfferRow
	if err := db.conn.Select(&managerOffers, "SELECT * FROM manager_offers ORDER BY seq"); err != nil {
		return s, fmt.Errorf("load manager offers: %w", err)
	}
	for _, o := range managerOffers {
		s.ManagerOffers = append(s.ManagerOffers, o.ManagerOffer)
	}

	var msgs []messageRow
	if err := db.conn.Select(&msgs, "SELECT * FROM messages ORDER BY seq"); err != nil {
		return s, fmt.Errorf("load messages: %w", err)
	}
	for _, r := range msgs {
		m, err := r.message()
		if err != nil {
			return s, fmt.Errorf("load message %s: %w", r.ID, err)
		}
		s.Messages = append(s.Messages, m)
	}

	slog.Info("game loaded", "season", s.Season, "week", s.Week, "club", s.Club.Name)
	return s, nil
}

func (db *DB) loadPlayers(market bool) ([]league.Player, error) {
	var rows []playerRow
	if err := db.conn.Select(&rows, "SELECT * FROM players WHERE in_market = ? ORDER BY seq", market); err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	players := make([]league.Player, 0, len(rows))
	for _, r := range rows {
		players = append(players, r.Player)
	}
	return players, nil
}

func (db *DB) allMeta() (map[string]string, error) {
	var rows []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	if err := db.conn.Select(&rows, "SELECT key, value FROM game_meta"); err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	meta := make(map[string]string, len(rows))
	for _, r := range rows {
		meta[r.Key] = r.Value
	}
	return meta, nil
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM game_meta WHERE key = ?", key)
	return value, err
}
