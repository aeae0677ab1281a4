package model

import (
	"fmt"
	"strings"
	"time"
)

// RiotID is the player facing handle, gameName#tagLine.
type RiotID struct {
	GameName string
	TagLine  string
}

func (id RiotID) String() string {
	return fmt.Sprintf("%s#%s", id.GameName, id.TagLine)
}

func (id RiotID) Valid() bool {
	return strings.TrimSpace(id.GameName) != "" && strings.TrimSpace(id.TagLine) != ""
}

// MatchParticipation is how a single player did in a single match. There is
// at most one per (MatchID, PlayerName).
type MatchParticipation struct {
	MatchID                 string `json:"matchId"`
	PlayerName              string `json:"playerName"`
	ChampionName            string `json:"championName"`
	Kills                   int    `json:"kills"`
	Deaths                  int    `json:"deaths"`
	Assists                 int    `json:"assists"`
	Win                     bool   `json:"win"`
	GameCreation            int64  `json:"gameCreation"` // epoch millis
	GameDuration            int    `json:"gameDuration"` // seconds
	BountyLevel             int    `json:"bountyLevel"`
	DamageDealtToObjectives int    `json:"damageDealtToObjectives"`
	DoubleKills             int    `json:"doubleKills"`
	TripleKills             int    `json:"tripleKills"`
	GoldEarned              int    `json:"goldEarned"`
}

func (m *MatchParticipation) Created() time.Time {
	return time.UnixMilli(m.GameCreation).UTC()
}

func (m *MatchParticipation) Duration() time.Duration {
	return time.Duration(m.GameDuration) * time.Second
}

func (m *MatchParticipation) KDA() string {
	return fmt.Sprintf("%d/%d/%d", m.Kills, m.Deaths, m.Assists)
}
