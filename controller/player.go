package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mww/lolstats/model"
	"github.com/mww/lolstats/riot"
)

func (c *controller) GetPlayerMatches(ctx context.Context, id model.RiotID) ([]model.MatchParticipation, error) {
	if !id.Valid() {
		return nil, ErrInvalidPlayer
	}
	if c.db == nil {
		return nil, ErrStoreUnavailable
	}
	return c.db.GetPlayerMatches(ctx, id.String())
}

func (c *controller) RefreshPlayer(ctx context.Context, id model.RiotID, server string, count int) ([]model.MatchParticipation, error) {
	if !id.Valid() {
		return nil, ErrInvalidPlayer
	}
	if server == "" {
		server = c.defaultServer
	}
	if count == 0 {
		count = c.defaultCount
	}
	if count < 1 || count > MaxMatchCount {
		return nil, ErrInvalidCount
	}
	if c.db == nil {
		return nil, ErrStoreUnavailable
	}
	if c.riot == nil {
		return nil, ErrAPIKeyMissing
	}

	// Once started the refresh runs to completion even if the caller goes
	// away, the matches are still worth keeping.
	ctx = context.WithoutCancel(ctx)

	start := c.clock.Now()
	slog.Info("refresh player starting", "player", id.String(), "server", server, "count", count)

	matches, err := c.riot.FetchRecentMatches(ctx, id, server, count)
	if err != nil {
		if riot.IsNotFound(err) {
			slog.Info("no riot data for player", "player", id.String(), "server", server, "reason", err)
		} else {
			slog.Error("riot api failure", "player", id.String(), "server", server, "error", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	if err := c.db.SaveMatches(ctx, matches); err != nil {
		return nil, fmt.Errorf("error saving matches for %s: %w", id, err)
	}

	history, err := c.db.GetPlayerMatches(ctx, id.String())
	if err != nil {
		return nil, err
	}

	slog.Info("refresh player finished", "player", id.String(), "fetched", len(matches),
		"stored", len(history), "took", c.clock.Since(start))
	return history, nil
}

func (c *controller) GetPlayerSummary(ctx context.Context, id model.RiotID) (*model.Summary, error) {
	matches, err := c.GetPlayerMatches(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.Summarize(id.String(), matches), nil
}
