package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/mww/lolstats/db"
	"github.com/mww/lolstats/model"
	"github.com/mww/lolstats/riot"
)

const (
	DefaultMatchCount = 10
	MaxMatchCount     = 100
)

var (
	ErrInvalidPlayer    = errors.New("name and tag are required")
	ErrInvalidCount     = fmt.Errorf("count must be between 1 and %d", MaxMatchCount)
	ErrStoreUnavailable = errors.New("database unavailable")
	ErrAPIKeyMissing    = errors.New("riot api key not configured")
	ErrNoData           = errors.New("no data found for player")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Look up the stored matches for a player, most recent first. A player
	// with nothing stored gets an empty slice, not an error.
	GetPlayerMatches(ctx context.Context, id model.RiotID) ([]model.MatchParticipation, error)
	// Fetch the player's recent matches from the Riot API, store them and
	// return the player's full stored history. An empty server or a count
	// of 0 uses the defaults.
	RefreshPlayer(ctx context.Context, id model.RiotID, server string, count int) ([]model.MatchParticipation, error)
	GetPlayerSummary(ctx context.Context, id model.RiotID) (*model.Summary, error)
	// Reports what the service can do right now. Never touches the network
	// or the database.
	Status() Status
}

type Status struct {
	APIKeyConfigured bool
	StoreAvailable   bool
}

type Options struct {
	DefaultServer string
	DefaultCount  int
}

type controller struct {
	clock         clock.Clock
	riot          riot.Client
	db            db.DB
	defaultServer string
	defaultCount  int
}

// New creates the controller. riot is nil when no api key is configured and
// db is nil when the database could not be opened, in both cases the
// operations that need them fail instead of the whole service.
func New(clock clock.Clock, riot riot.Client, db db.DB, opts Options) (C, error) {
	if model.ParseRegion(opts.DefaultServer) == nil {
		return nil, fmt.Errorf("default server %q is not a known server", opts.DefaultServer)
	}
	if opts.DefaultCount == 0 {
		opts.DefaultCount = DefaultMatchCount
	}
	if opts.DefaultCount < 1 || opts.DefaultCount > MaxMatchCount {
		return nil, fmt.Errorf("default count %d: %w", opts.DefaultCount, ErrInvalidCount)
	}

	c := &controller{
		clock:         clock,
		riot:          riot,
		db:            db,
		defaultServer: opts.DefaultServer,
		defaultCount:  opts.DefaultCount,
	}
	return c, nil
}

func (c *controller) Status() Status {
	return Status{
		APIKeyConfigured: c.riot != nil,
		StoreAvailable:   c.db != nil,
	}
}
