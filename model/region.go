package model

import (
	"slices"
	"strings"
)

// Region holds the two routing values the Riot API needs for a game server.
// Platform is the server host (e.g. br1), Routing is the regional cluster
// (e.g. americas) that serves the account and match-v5 endpoints.
type Region struct {
	server   string
	Platform string
	Routing  string
}

// String returns the short server code, e.g. "br".
func (r *Region) String() string {
	return r.server
}

const (
	RoutingAmericas = "americas"
	RoutingEurope   = "europe"
	RoutingAsia     = "asia"
	RoutingSEA      = "sea"
)

var (
	REGION_BR   *Region = &Region{server: "br", Platform: "br1", Routing: RoutingAmericas}
	REGION_NA   *Region = &Region{server: "na", Platform: "na1", Routing: RoutingAmericas}
	REGION_LAN  *Region = &Region{server: "lan", Platform: "la1", Routing: RoutingAmericas}
	REGION_LAS  *Region = &Region{server: "las", Platform: "la2", Routing: RoutingAmericas}
	REGION_EUW  *Region = &Region{server: "euw", Platform: "euw1", Routing: RoutingEurope}
	REGION_EUNE *Region = &Region{server: "eune", Platform: "eun1", Routing: RoutingEurope}
	REGION_TR   *Region = &Region{server: "tr", Platform: "tr1", Routing: RoutingEurope}
	REGION_RU   *Region = &Region{server: "ru", Platform: "ru", Routing: RoutingEurope}
	REGION_JP   *Region = &Region{server: "jp", Platform: "jp1", Routing: RoutingAsia}
	REGION_KR   *Region = &Region{server: "kr", Platform: "kr", Routing: RoutingAsia}
	REGION_OCE  *Region = &Region{server: "oce", Platform: "oc1", Routing: RoutingSEA}
	REGION_PH   *Region = &Region{server: "ph", Platform: "ph2", Routing: RoutingSEA}
	REGION_SG   *Region = &Region{server: "sg", Platform: "sg2", Routing: RoutingSEA}
	REGION_TW   *Region = &Region{server: "tw", Platform: "tw2", Routing: RoutingSEA}
	REGION_TH   *Region = &Region{server: "th", Platform: "th2", Routing: RoutingSEA}
	REGION_VN   *Region = &Region{server: "vn", Platform: "vn2", Routing: RoutingSEA}
)

var regionMap = buildRegionMap()

// ParseRegion looks up a server code, case insensitive. Returns nil if the
// code is not a known server.
func ParseRegion(server string) *Region {
	return regionMap[strings.ToLower(strings.TrimSpace(server))]
}

// ServerCodes lists every known server code in alphabetical order.
func ServerCodes() []string {
	codes := make([]string, 0, len(regionMap))
	for c := range regionMap {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

func buildRegionMap() map[string]*Region {
	regions := []*Region{
		REGION_BR, REGION_NA, REGION_LAN, REGION_LAS,
		REGION_EUW, REGION_EUNE, REGION_TR, REGION_RU,
		REGION_JP, REGION_KR,
		REGION_OCE, REGION_PH, REGION_SG, REGION_TW, REGION_TH, REGION_VN,
	}

	m := make(map[string]*Region, len(regions))
	for _, r := range regions {
		m[r.server] = r
	}
	return m
}
