package db

import (
	"context"
	"reflect"
	"testing"

	"github.com/mww/lolstats/model"
)

// runStoreTests exercises a store through the DB interface. Each backend's
// test file calls it with a freshly created store.
func runStoreTests(t *testing.T, newDB func(t *testing.T) DB) {
	tests := []struct {
		name string
		fn   func(t *testing.T, db DB)
	}{
		{"unknownPlayer", testStore_unknownPlayer},
		{"saveAndLoad", testStore_saveAndLoad},
		{"ordering", testStore_ordering},
		{"upsert", testStore_upsert},
		{"separatePlayers", testStore_separatePlayers},
		{"atomicBatch", testStore_atomicBatch},
		{"emptyBatch", testStore_emptyBatch},
		{"ensureSchemaTwice", testStore_ensureSchemaTwice},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := newDB(t)
			tc.fn(t, db)
		})
	}
}

func testStore_unknownPlayer(t *testing.T, db DB) {
	matches, err := db.GetPlayerMatches(context.Background(), "Nobody#BR1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)
	assertFatalf(t, matches != nil, "expected an empty slice, got nil")
	assertEquals(t, "len(matches)", 0, len(matches))
}

func testStore_saveAndLoad(t *testing.T, db DB) {
	ctx := context.Background()
	m := testMatch("BR1_1", "Ana#BR1", 1718900000000)
	m.ChampionName = "Lee Sin"
	m.Kills = 10
	m.Deaths = 2
	m.Assists = 8
	m.Win = true
	m.GameDuration = 1800
	m.BountyLevel = 2
	m.DamageDealtToObjectives = 15432
	m.DoubleKills = 2
	m.TripleKills = 1
	m.GoldEarned = 14000

	err := db.SaveMatches(ctx, []model.MatchParticipation{m})
	assertFatalf(t, err == nil, "error saving matches: %v", err)

	matches, err := db.GetPlayerMatches(ctx, "Ana#BR1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)
	assertFatalf(t, len(matches) == 1, "expected 1 match, got %d", len(matches))
	if !reflect.DeepEqual(m, matches[0]) {
		t.Errorf("stored match does not match, expected: %+v, got: %+v", m, matches[0])
	}
}

func testStore_ordering(t *testing.T, db DB) {
	ctx := context.Background()
	err := db.SaveMatches(ctx, []model.MatchParticipation{
		testMatch("BR1_100", "Ana#BR1", 100),
		testMatch("BR1_300", "Ana#BR1", 300),
		testMatch("BR1_200", "Ana#BR1", 200),
	})
	assertFatalf(t, err == nil, "error saving matches: %v", err)

	// Same creation time, the higher match id comes first.
	err = db.SaveMatches(ctx, []model.MatchParticipation{testMatch("BR1_201", "Ana#BR1", 200)})
	assertFatalf(t, err == nil, "error saving matches: %v", err)

	matches, err := db.GetPlayerMatches(ctx, "Ana#BR1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)

	expected := []string{"BR1_300", "BR1_201", "BR1_200", "BR1_100"}
	assertFatalf(t, len(matches) == len(expected), "expected %d matches, got %d", len(expected), len(matches))
	for i, id := range expected {
		assertEquals(t, "matchID", id, matches[i].MatchID)
	}
}

func testStore_upsert(t *testing.T, db DB) {
	ctx := context.Background()
	first := testMatch("BR1_1", "Ana#BR1", 100)
	first.Kills = 1
	first.GoldEarned = 500

	second := first
	second.Kills = 7
	second.GoldEarned = 9000
	second.Win = true

	err := db.SaveMatches(ctx, []model.MatchParticipation{first})
	assertFatalf(t, err == nil, "error saving first version: %v", err)
	err = db.SaveMatches(ctx, []model.MatchParticipation{second})
	assertFatalf(t, err == nil, "error saving second version: %v", err)

	matches, err := db.GetPlayerMatches(ctx, "Ana#BR1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)
	assertFatalf(t, len(matches) == 1, "expected 1 match after upsert, got %d", len(matches))
	if !reflect.DeepEqual(second, matches[0]) {
		t.Errorf("expected the second write to win, expected: %+v, got: %+v", second, matches[0])
	}
}

func testStore_separatePlayers(t *testing.T, db DB) {
	ctx := context.Background()
	err := db.SaveMatches(ctx, []model.MatchParticipation{
		testMatch("BR1_1", "Ana#BR1", 100),
		testMatch("BR1_1", "Bia#BR1", 100),
		testMatch("BR1_2", "Bia#BR1", 200),
	})
	assertFatalf(t, err == nil, "error saving matches: %v", err)

	ana, err := db.GetPlayerMatches(ctx, "Ana#BR1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)
	assertEquals(t, "len(ana)", 1, len(ana))

	bia, err := db.GetPlayerMatches(ctx, "Bia#BR1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)
	assertEquals(t, "len(bia)", 2, len(bia))

	// Names are matched exactly.
	lower, err := db.GetPlayerMatches(ctx, "ana#br1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)
	assertEquals(t, "len(lower)", 0, len(lower))
}

func testStore_atomicBatch(t *testing.T, db DB) {
	ctx := context.Background()
	err := db.SaveMatches(ctx, []model.MatchParticipation{
		testMatch("BR1_1", "Ana#BR1", 100),
		testMatch("", "Ana#BR1", 200),
	})
	assertFatalf(t, err != nil, "expected an error saving a match without an id")

	matches, err := db.GetPlayerMatches(ctx, "Ana#BR1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)
	assertEquals(t, "len(matches)", 0, len(matches))
}

func testStore_emptyBatch(t *testing.T, db DB) {
	err := db.SaveMatches(context.Background(), nil)
	assertFatalf(t, err == nil, "error saving an empty batch: %v", err)
}

func testStore_ensureSchemaTwice(t *testing.T, db DB) {
	ctx := context.Background()
	err := db.SaveMatches(ctx, []model.MatchParticipation{testMatch("BR1_1", "Ana#BR1", 100)})
	assertFatalf(t, err == nil, "error saving matches: %v", err)

	err = db.EnsureSchema(ctx)
	assertFatalf(t, err == nil, "error running EnsureSchema again: %v", err)

	matches, err := db.GetPlayerMatches(ctx, "Ana#BR1")
	assertFatalf(t, err == nil, "error reading matches: %v", err)
	assertEquals(t, "len(matches)", 1, len(matches))
}

func testMatch(matchID, playerName string, created int64) model.MatchParticipation {
	return model.MatchParticipation{
		MatchID:      matchID,
		PlayerName:   playerName,
		ChampionName: "Graves",
		GameCreation: created,
	}
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	t.Helper()
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}
