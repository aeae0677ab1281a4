package mockcontroller

import (
	"context"

	"github.com/mww/lolstats/controller"
	"github.com/mww/lolstats/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) GetPlayerMatches(ctx context.Context, id model.RiotID) ([]model.MatchParticipation, error) {
	args := c.Called(ctx, id)

	var res []model.MatchParticipation
	if args.Get(0) != nil {
		res = args.Get(0).([]model.MatchParticipation)
	}

	return res, args.Error(1)
}

func (c *C) RefreshPlayer(ctx context.Context, id model.RiotID, server string, count int) ([]model.MatchParticipation, error) {
	args := c.Called(ctx, id, server, count)

	var res []model.MatchParticipation
	if args.Get(0) != nil {
		res = args.Get(0).([]model.MatchParticipation)
	}

	return res, args.Error(1)
}

func (c *C) GetPlayerSummary(ctx context.Context, id model.RiotID) (*model.Summary, error) {
	args := c.Called(ctx, id)

	var s *model.Summary
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Summary)
	}

	return s, args.Error(1)
}

func (c *C) Status() controller.Status {
	args := c.Called()
	return args.Get(0).(controller.Status)
}
