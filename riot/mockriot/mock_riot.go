package mockriot

import (
	"context"

	"github.com/mww/lolstats/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) FetchRecentMatches(ctx context.Context, id model.RiotID, server string, count int) ([]model.MatchParticipation, error) {
	args := c.Called(ctx, id, server, count)

	var r []model.MatchParticipation
	if args.Get(0) != nil {
		r = args.Get(0).([]model.MatchParticipation)
	}
	return r, args.Error(1)
}
