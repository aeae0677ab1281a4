package testutils

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/lolstats/db"
	"github.com/mww/lolstats/model"
)

// The time the mock clock of a TestDB starts at.
var TestStart = time.Date(2024, time.June, 21, 12, 0, 0, 0, time.UTC)

var (
	AnaLeeSin = model.MatchParticipation{
		MatchID:                 "BR1_3003",
		PlayerName:              "Ana#BR1",
		ChampionName:            "Lee Sin",
		Kills:                   10,
		Deaths:                  2,
		Assists:                 8,
		Win:                     true,
		GameCreation:            1718900000000,
		GameDuration:            1865,
		BountyLevel:             2,
		DamageDealtToObjectives: 15432,
		DoubleKills:             2,
		TripleKills:             1,
		GoldEarned:              14000,
	}
	AnaViego = model.MatchParticipation{
		MatchID:                 "BR1_3002",
		PlayerName:              "Ana#BR1",
		ChampionName:            "Viego",
		Kills:                   4,
		Deaths:                  6,
		Assists:                 5,
		GameCreation:            1718800000000,
		GameDuration:            1540,
		DamageDealtToObjectives: 3120,
		DoubleKills:             1,
		GoldEarned:              9000,
	}
	AnaGraves = model.MatchParticipation{
		MatchID:      "BR1_3000",
		PlayerName:   "Ana#BR1",
		ChampionName: "Graves",
		Kills:        5,
		Deaths:       3,
		Assists:      2,
		Win:          true,
		GameCreation: 1718600000000,
		GameDuration: 2011,
		GoldEarned:   11000,
	}
)

type TestDB struct {
	DB    db.DB
	Clock *clock.Mock
}

// NewTestDB opens a SQLite database in a temp dir of tb, creates the schema
// and loads the Ana#BR1 sample matches. It is closed when the test ends.
func NewTestDB(tb testing.TB) *TestDB {
	tb.Helper()
	t := NewEmptyTestDB(tb)
	if err := InsertTestMatches(t.DB); err != nil {
		tb.Fatalf("error populating test db: %v", err)
	}
	return t
}

// NewEmptyTestDB is NewTestDB without the sample matches.
func NewEmptyTestDB(tb testing.TB) *TestDB {
	tb.Helper()

	clock := clock.NewMock()
	clock.Set(TestStart)

	ctx := context.Background()
	d, err := db.New(ctx, filepath.Join(tb.TempDir(), "matches.db"), clock)
	if err != nil {
		tb.Fatalf("error opening test db: %v", err)
	}
	tb.Cleanup(d.Close)

	if err := d.EnsureSchema(ctx); err != nil {
		tb.Fatalf("error creating schema in test db: %v", err)
	}

	return &TestDB{
		DB:    d,
		Clock: clock,
	}
}

func InsertTestMatches(db db.DB) error {
	matches := []model.MatchParticipation{
		AnaGraves,
		AnaLeeSin,
		AnaViego,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.SaveMatches(ctx, matches)
}
