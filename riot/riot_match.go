package riot

import "github.com/mww/lolstats/model"

// account-v1 response, only the fields we use.
type account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// match-v5 response.
type match struct {
	Metadata *matchMetadata `json:"metadata"`
	Info     *matchInfo     `json:"info"`
}

type matchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type matchInfo struct {
	GameCreation int64         `json:"gameCreation"`
	GameDuration int           `json:"gameDuration"`
	Participants []participant `json:"participants"`
}

type participant struct {
	PUUID                   string `json:"puuid"`
	ChampionName            string `json:"championName"`
	Kills                   int    `json:"kills"`
	Deaths                  int    `json:"deaths"`
	Assists                 int    `json:"assists"`
	Win                     bool   `json:"win"`
	BountyLevel             int    `json:"bountyLevel"`
	DamageDealtToObjectives int    `json:"damageDealtToObjectives"`
	DoubleKills             int    `json:"doubleKills"`
	TripleKills             int    `json:"tripleKills"`
	GoldEarned              int    `json:"goldEarned"`
}

// participation finds the participant with the given puuid and converts it
// into a model.MatchParticipation. Returns nil if the player is not part of
// the match.
func (m *match) participation(matchID, puuid, playerName string) *model.MatchParticipation {
	if m == nil || m.Info == nil {
		return nil
	}

	for _, p := range m.Info.Participants {
		if p.PUUID != puuid {
			continue
		}
		return &model.MatchParticipation{
			MatchID:                 matchID,
			PlayerName:              playerName,
			ChampionName:            p.ChampionName,
			Kills:                   p.Kills,
			Deaths:                  p.Deaths,
			Assists:                 p.Assists,
			Win:                     p.Win,
			GameCreation:            m.Info.GameCreation,
			GameDuration:            m.Info.GameDuration,
			BountyLevel:             p.BountyLevel,
			DamageDealtToObjectives: p.DamageDealtToObjectives,
			DoubleKills:             p.DoubleKills,
			TripleKills:             p.TripleKills,
			GoldEarned:              p.GoldEarned,
		}
	}
	return nil
}
