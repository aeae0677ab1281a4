package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/itbasis/go-clock"
	"github.com/mww/lolstats/model"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS matches (
	match_id                   TEXT    NOT NULL CHECK (match_id <> ''),
	player_name                TEXT    NOT NULL,
	champion_name              TEXT    NOT NULL DEFAULT '',
	kills                      INTEGER NOT NULL DEFAULT 0,
	deaths                     INTEGER NOT NULL DEFAULT 0,
	assists                    INTEGER NOT NULL DEFAULT 0,
	win                        BOOLEAN NOT NULL DEFAULT 0,
	game_creation              INTEGER NOT NULL DEFAULT 0,
	game_duration              INTEGER NOT NULL DEFAULT 0,
	bounty_level               INTEGER NOT NULL DEFAULT 0,
	damage_dealt_to_objectives INTEGER NOT NULL DEFAULT 0,
	double_kills               INTEGER NOT NULL DEFAULT 0,
	triple_kills               INTEGER NOT NULL DEFAULT 0,
	gold_earned                INTEGER NOT NULL DEFAULT 0,
	updated                    INTEGER NOT NULL,
	PRIMARY KEY (match_id, player_name)
);
CREATE INDEX IF NOT EXISTS idx_matches_player_created ON matches (player_name, game_creation DESC);`

type sqliteDB struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLite opens (creating if needed) the database file at path.
func NewSQLite(ctx context.Context, path string, clock clock.Clock) (DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating directory for %s: %w", path, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}

	// SQLite only allows one writer at a time. With a single connection the
	// pragmas below also stay in effect for the life of the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("error setting pragmas on %s: %w", path, err)
	}

	return &sqliteDB{db: db, clock: clock}, nil
}

func (db *sqliteDB) EnsureSchema(ctx context.Context) error {
	if _, err := db.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("error creating matches table: %w", err)
	}
	return nil
}

func (db *sqliteDB) SaveMatches(ctx context.Context, matches []model.MatchParticipation) error {
	const query = `INSERT INTO matches (` + matchColumns + `, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (match_id, player_name) DO UPDATE SET
			champion_name=excluded.champion_name,
			kills=excluded.kills,
			deaths=excluded.deaths,
			assists=excluded.assists,
			win=excluded.win,
			game_creation=excluded.game_creation,
			game_duration=excluded.game_duration,
			bounty_level=excluded.bounty_level,
			damage_dealt_to_objectives=excluded.damage_dealt_to_objectives,
			double_kills=excluded.double_kills,
			triple_kills=excluded.triple_kills,
			gold_earned=excluded.gold_earned,
			updated=excluded.updated`

	if len(matches) == 0 {
		return nil
	}

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing match insert: %w", err)
	}
	defer stmt.Close()

	updated := db.clock.Now().UTC().UnixMilli()
	for _, m := range matches {
		_, err := stmt.ExecContext(ctx,
			m.MatchID,
			m.PlayerName,
			m.ChampionName,
			m.Kills,
			m.Deaths,
			m.Assists,
			m.Win,
			m.GameCreation,
			m.GameDuration,
			m.BountyLevel,
			m.DamageDealtToObjectives,
			m.DoubleKills,
			m.TripleKills,
			m.GoldEarned,
			updated)
		if err != nil {
			return fmt.Errorf("error saving match %s for %s: %w", m.MatchID, m.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error commiting transaction: %w", err)
	}
	return nil
}

func (db *sqliteDB) GetPlayerMatches(ctx context.Context, playerName string) ([]model.MatchParticipation, error) {
	const query = `SELECT ` + matchColumns + `
		FROM matches WHERE player_name=?
		ORDER BY game_creation DESC, match_id DESC`

	rows, err := db.db.QueryContext(ctx, query, playerName)
	if err != nil {
		return nil, fmt.Errorf("error querying matches for %s: %w", playerName, err)
	}
	defer rows.Close()

	results := make([]model.MatchParticipation, 0, 16)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning match: %w", err)
		}
		results = append(results, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading matches for %s: %w", playerName, err)
	}

	return results, nil
}

func (db *sqliteDB) Close() {
	db.db.Close()
}
