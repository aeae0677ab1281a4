package db

import (
	"context"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mww/lolstats/model"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS matches (
	match_id                   TEXT        NOT NULL CHECK (match_id <> ''),
	player_name                TEXT        NOT NULL,
	champion_name              TEXT        NOT NULL DEFAULT '',
	kills                      INTEGER     NOT NULL DEFAULT 0,
	deaths                     INTEGER     NOT NULL DEFAULT 0,
	assists                    INTEGER     NOT NULL DEFAULT 0,
	win                        BOOLEAN     NOT NULL DEFAULT FALSE,
	game_creation              BIGINT      NOT NULL DEFAULT 0,
	game_duration              INTEGER     NOT NULL DEFAULT 0,
	bounty_level               INTEGER     NOT NULL DEFAULT 0,
	damage_dealt_to_objectives INTEGER     NOT NULL DEFAULT 0,
	double_kills               INTEGER     NOT NULL DEFAULT 0,
	triple_kills               INTEGER     NOT NULL DEFAULT 0,
	gold_earned                INTEGER     NOT NULL DEFAULT 0,
	updated                    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (match_id, player_name)
);
CREATE INDEX IF NOT EXISTS idx_matches_player_created ON matches (player_name, game_creation DESC);`

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewPostgres(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

func (db *postgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("error creating matches table: %w", err)
	}
	return nil
}

func (db *postgresDB) SaveMatches(ctx context.Context, matches []model.MatchParticipation) error {
	const query = `INSERT INTO matches (` + matchColumns + `, updated)
		VALUES (@matchID, @playerName, @championName, @kills, @deaths, @assists, @win,
			@gameCreation, @gameDuration, @bountyLevel, @damageDealtToObjectives,
			@doubleKills, @tripleKills, @goldEarned, @updated)
		ON CONFLICT (match_id, player_name) DO UPDATE SET
			champion_name=EXCLUDED.champion_name,
			kills=EXCLUDED.kills,
			deaths=EXCLUDED.deaths,
			assists=EXCLUDED.assists,
			win=EXCLUDED.win,
			game_creation=EXCLUDED.game_creation,
			game_duration=EXCLUDED.game_duration,
			bounty_level=EXCLUDED.bounty_level,
			damage_dealt_to_objectives=EXCLUDED.damage_dealt_to_objectives,
			double_kills=EXCLUDED.double_kills,
			triple_kills=EXCLUDED.triple_kills,
			gold_earned=EXCLUDED.gold_earned,
			updated=EXCLUDED.updated`

	if len(matches) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updated := db.clock.Now().UTC()
	for _, m := range matches {
		if _, err := tx.Exec(ctx, query, namedArgsForMatch(&m, updated)); err != nil {
			return fmt.Errorf("error saving match %s for %s: %w", m.MatchID, m.PlayerName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) GetPlayerMatches(ctx context.Context, playerName string) ([]model.MatchParticipation, error) {
	const query = `SELECT ` + matchColumns + `
		FROM matches WHERE player_name=@playerName
		ORDER BY game_creation DESC, match_id DESC`

	args := pgx.NamedArgs{
		"playerName": playerName,
	}
	rows, err := db.pool.Query(ctx, query, args)
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

func (db *postgresDB) Close() {
	db.pool.Close()
}

func namedArgsForMatch(m *model.MatchParticipation, updated time.Time) pgx.NamedArgs {
	return pgx.NamedArgs{
		"matchID":                 m.MatchID,
		"playerName":              m.PlayerName,
		"championName":            m.ChampionName,
		"kills":                   m.Kills,
		"deaths":                  m.Deaths,
		"assists":                 m.Assists,
		"win":                     m.Win,
		"gameCreation":            m.GameCreation,
		"gameDuration":            m.GameDuration,
		"bountyLevel":             m.BountyLevel,
		"damageDealtToObjectives": m.DamageDealtToObjectives,
		"doubleKills":             m.DoubleKills,
		"tripleKills":             m.TripleKills,
		"goldEarned":              m.GoldEarned,
		"updated":                 updated,
	}
}
