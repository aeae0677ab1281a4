package model

import "math"

// Summary aggregates the stored matches of one player.
type Summary struct {
	PlayerName    string               `json:"playerName"`
	Games         int                  `json:"games"`
	Wins          int                  `json:"wins"`
	WinRate       float64              `json:"winRate"` // percent, 0-100
	AvgKills      float64              `json:"avgKills"`
	AvgDeaths     float64              `json:"avgDeaths"`
	AvgAssists    float64              `json:"avgAssists"`
	AvgGoldEarned float64              `json:"avgGoldEarned"`
	KDARatio      float64              `json:"kdaRatio"`
	TopChampion   string               `json:"topChampion"`
	RecentMatches []MatchParticipation `json:"recentMatches"`
}

// Number of matches copied into Summary.RecentMatches.
const summaryRecent = 5

// Summarize computes the averages over matches. The matches are expected to
// already be sorted newest first, the first few are kept as RecentMatches.
func Summarize(playerName string, matches []MatchParticipation) *Summary {
	s := &Summary{
		PlayerName:    playerName,
		Games:         len(matches),
		RecentMatches: make([]MatchParticipation, 0, summaryRecent),
	}
	if len(matches) == 0 {
		return s
	}

	var kills, deaths, assists, gold int
	champs := make(map[string]int)
	for i, m := range matches {
		kills += m.Kills
		deaths += m.Deaths
		assists += m.Assists
		gold += m.GoldEarned
		if m.Win {
			s.Wins++
		}
		if m.ChampionName != "" {
			champs[m.ChampionName]++
		}
		if i < summaryRecent {
			s.RecentMatches = append(s.RecentMatches, m)
		}
	}

	// Ties go to the champion played most recently.
	for _, m := range matches {
		if m.ChampionName != "" && champs[m.ChampionName] > champs[s.TopChampion] {
			s.TopChampion = m.ChampionName
		}
	}

	n := float64(len(matches))
	s.WinRate = round2(float64(s.Wins) / n * 100)
	s.AvgKills = round2(float64(kills) / n)
	s.AvgDeaths = round2(float64(deaths) / n)
	s.AvgAssists = round2(float64(assists) / n)
	s.AvgGoldEarned = round2(float64(gold) / n)
	s.KDARatio = round2(float64(kills+assists) / float64(max(deaths, 1)))

	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
