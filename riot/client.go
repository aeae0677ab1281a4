package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mww/lolstats/model"
	"golang.org/x/sync/errgroup"
)

const (
	riotURLFormat = "https://%s.api.riotgames.com"

	headerRiotToken = "X-Riot-Token"

	DefaultWorkers = 4
	DefaultTimeout = 1 * time.Minute
)

type Client interface {
	// Looks up the player's most recent count matches on the given server and
	// returns the player's stats for each, most recent first. Matches whose
	// details cannot be loaded are skipped.
	FetchRecentMatches(ctx context.Context, id model.RiotID, server string, count int) ([]model.MatchParticipation, error)
}

type client struct {
	baseURL    func(routing string) string
	key        string
	workers    int
	httpClient *http.Client
}

func New(key string, timeout time.Duration, workers int) (Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	c := &client{
		baseURL: func(routing string) string {
			return fmt.Sprintf(riotURLFormat, routing)
		},
		key:     key,
		workers: workers,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	return c, nil
}

// NewForTest sends every request to url regardless of the routing region.
func NewForTest(url, key string) Client {
	return &client{
		baseURL:    func(string) string { return url },
		key:        key,
		workers:    2,
		httpClient: http.DefaultClient,
	}
}

func (c *client) FetchRecentMatches(ctx context.Context, id model.RiotID, server string, count int) ([]model.MatchParticipation, error) {
	region := model.ParseRegion(server)
	if region == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownServer, server)
	}

	puuid, err := c.getPUUID(ctx, id, region)
	if err != nil {
		return nil, err
	}

	matchIDs, err := c.getMatchIDs(ctx, puuid, region, count)
	if err != nil {
		return nil, err
	}
	if len(matchIDs) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoMatches, id)
	}

	// Each detail lands at the index of its id so the result keeps the order
	// of the id list no matter which request finishes first.
	found := make([]*model.MatchParticipation, len(matchIDs))
	failed := make([]error, len(matchIDs))
	g := new(errgroup.Group)
	g.SetLimit(c.workers)
	for i, matchID := range matchIDs {
		g.Go(func() error {
			m, err := c.getMatch(ctx, matchID, region)
			if err != nil {
				slog.Warn("skipping match", "match", matchID, "player", id.String(), "error", err)
				failed[i] = err
				return nil
			}
			found[i] = m.participation(matchID, puuid, id.String())
			return nil
		})
	}
	g.Wait()

	result := make([]model.MatchParticipation, 0, len(matchIDs))
	for _, p := range found {
		if p != nil {
			result = append(result, *p)
		}
	}
	if len(result) == 0 {
		// Only report an upstream failure when nothing could be loaded at all.
		var upstream *UpstreamError
		for _, err := range failed {
			if errors.As(err, &upstream) && upstream.StatusCode != http.StatusNotFound {
				return nil, upstream
			}
		}
		return nil, fmt.Errorf("%w: no match details available for %s", ErrNoMatches, id)
	}

	return result, nil
}

func (c *client) getPUUID(ctx context.Context, id model.RiotID, region *model.Region) (string, error) {
	var acc account
	err := c.riotRequest(ctx, &acc, "account", region,
		"/riot/account/v1/accounts/by-riot-id/%s/%s", url.PathEscape(id.GameName), url.PathEscape(id.TagLine))
	if err != nil {
		return "", err
	}
	if acc.PUUID == "" {
		return "", fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return acc.PUUID, nil
}

func (c *client) getMatchIDs(ctx context.Context, puuid string, region *model.Region, count int) ([]string, error) {
	var ids []string
	err := c.riotRequest(ctx, &ids, "match-ids", region,
		"/lol/match/v5/matches/by-puuid/%s/ids?count=%d", url.PathEscape(puuid), count)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *client) getMatch(ctx context.Context, matchID string, region *model.Region) (*match, error) {
	var m match
	err := c.riotRequest(ctx, &m, "match", region, "/lol/match/v5/matches/%s", url.PathEscape(matchID))
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *client) riotRequest(ctx context.Context, res any, op string, region *model.Region, path string, args ...any) error {
	p := fmt.Sprintf(path, args...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s", c.baseURL(region.Routing), p), nil)
	if err != nil {
		return fmt.Errorf("error creating riot http request: %w", err)
	}
	req.Header.Add(headerRiotToken, c.key)
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		switch op {
		case "account":
			return ErrPlayerNotFound
		case "match-ids":
			return ErrNoMatches
		}
	}
	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("error parsing response from riot: %w", err)}
	}

	return nil
}
