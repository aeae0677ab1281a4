package db

import (
	"context"
	"strings"

	"github.com/itbasis/go-clock"
	"github.com/mww/lolstats/model"
)

type DB interface {
	// Creates the matches table if it does not exist yet. Safe to call more than once.
	EnsureSchema(ctx context.Context) error

	// Inserts the matches, replacing any existing row with the same match id and
	// player name. Either all of the matches are saved or none are.
	SaveMatches(ctx context.Context, matches []model.MatchParticipation) error
	// Look up all of the stored matches for a player (gameName#tagLine), the most
	// recent match is returned first. Returns an empty slice if the player is unknown.
	GetPlayerMatches(ctx context.Context, playerName string) ([]model.MatchParticipation, error)

	Close()
}

// New opens the store described by dsn. postgres:// and postgresql:// URLs are
// opened with pgx, anything else is treated as the path of a SQLite database
// file, which is created if it does not exist.
func New(ctx context.Context, dsn string, clock clock.Clock) (DB, error) {
	if isPostgres(dsn) {
		return NewPostgres(ctx, dsn, clock)
	}
	return NewSQLite(ctx, dsn, clock)
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// scanner is implemented by both pgx.Row(s) and *sql.Row(s).
type scanner interface {
	Scan(dest ...any) error
}

const matchColumns = `match_id, player_name, champion_name, kills, deaths, assists, win,
			game_creation, game_duration, bounty_level, damage_dealt_to_objectives,
			double_kills, triple_kills, gold_earned`

func scanMatch(row scanner) (*model.MatchParticipation, error) {
	var m model.MatchParticipation
	err := row.Scan(
		&m.MatchID,
		&m.PlayerName,
		&m.ChampionName,
		&m.Kills,
		&m.Deaths,
		&m.Assists,
		&m.Win,
		&m.GameCreation,
		&m.GameDuration,
		&m.BountyLevel,
		&m.DamageDealtToObjectives,
		&m.DoubleKills,
		&m.TripleKills,
		&m.GoldEarned)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
