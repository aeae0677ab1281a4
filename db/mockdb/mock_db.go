package mockdb

import (
	"context"

	"github.com/mww/lolstats/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) EnsureSchema(ctx context.Context) error {
	args := db.Called(ctx)
	return args.Error(0)
}

func (db *DB) SaveMatches(ctx context.Context, matches []model.MatchParticipation) error {
	args := db.Called(ctx, matches)
	return args.Error(0)
}

func (db *DB) GetPlayerMatches(ctx context.Context, playerName string) ([]model.MatchParticipation, error) {
	args := db.Called(ctx, playerName)

	var r []model.MatchParticipation
	if args.Get(0) != nil {
		r = args.Get(0).([]model.MatchParticipation)
	}
	return r, args.Error(1)
}

func (db *DB) Close() {
	db.Called()
}
