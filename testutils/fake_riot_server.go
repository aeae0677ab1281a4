package testutils

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

// The API key the fake server expects in the X-Riot-Token header.
const RiotAPIKey = "RGAPI-test-key"

// Puuids of the accounts known to the fake server.
const (
	PUUIDAna    = "puuid-ana-0001"
	PUUIDLonely = "puuid-lonely-0002"
	PUUIDGhost  = "puuid-ghost-0003"
	PUUIDFlaky  = "puuid-flaky-0004"
)

//go:embed riotdata
var riotdata embed.FS

// FakeRiotServer serves a small slice of the account-v1 and match-v5 APIs.
//   - Ana#BR1 has four match ids, BR1_3001 has no details (404).
//   - Lonely#BR1 exists but has no matches.
//   - Ghost#BR1 has one match that does not include them.
//   - Flaky#BR1 has two matches whose details always fail with a 500.
//   - Broken#500 makes the account lookup fail with a 500.
//
// Every other Riot ID is answered with a 404.
type FakeRiotServer struct {
	s        *httptest.Server
	requests atomic.Int32
}

func NewFakeRiotServer() *FakeRiotServer {
	f := &FakeRiotServer{}

	r := chi.NewRouter()
	r.Use(f.countRequests)
	r.Use(checkRiotToken)
	r.Get("/riot/account/v1/accounts/by-riot-id/{gameName}/{tagLine}", accountHandler)
	r.Route("/lol/match/v5/matches", func(r chi.Router) {
		r.Get("/by-puuid/{puuid}/ids", matchIDsHandler)
		r.Get("/{matchID}", matchHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeRiotServer) Close() {
	f.s.Close()
}

func (f *FakeRiotServer) URL() string {
	return f.s.URL
}

// Requests returns how many requests the server has received so far.
func (f *FakeRiotServer) Requests() int {
	return int(f.requests.Load())
}

func (f *FakeRiotServer) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func checkRiotToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != RiotAPIKey {
			riotStatus(w, http.StatusUnauthorized, "Unknown apikey")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accountHandler(w http.ResponseWriter, r *http.Request) {
	gameName := chi.URLParam(r, "gameName")
	tagLine := chi.URLParam(r, "tagLine")

	if gameName == "Broken" && tagLine == "500" {
		riotStatus(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if strings.ToUpper(tagLine) != "BR1" {
		riotStatus(w, http.StatusNotFound, "Data not found - No results found for player with riot id")
		return
	}

	switch strings.ToLower(gameName) {
	case "ana":
		serveRiotFile(w, "account_ana.json")
	case "lonely":
		serveRiotFile(w, "account_lonely.json")
	case "ghost":
		serveRiotFile(w, "account_ghost.json")
	case "flaky":
		serveRiotFile(w, "account_flaky.json")
	default:
		riotStatus(w, http.StatusNotFound, "Data not found - No results found for player with riot id")
	}
}

func matchIDsHandler(w http.ResponseWriter, r *http.Request) {
	var name string
	switch chi.URLParam(r, "puuid") {
	case PUUIDAna:
		name = "match_ids_ana.json"
	case PUUIDGhost:
		name = "match_ids_ghost.json"
	case PUUIDFlaky:
		name = "match_ids_flaky.json"
	default:
		// Players without matches get an empty list, not a 404.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
		return
	}

	b, err := riotdata.ReadFile(fmt.Sprintf("riotdata/%s", name))
	if err != nil {
		log.Printf("error reading riotdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		log.Printf("error parsing riotdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	count := 20 // the default of the real API
	if c := r.URL.Query().Get("count"); c != "" {
		count, err = strconv.Atoi(c)
		if err != nil || count < 0 || count > 100 {
			riotStatus(w, http.StatusBadRequest, "Bad request - count")
			return
		}
	}
	if count < len(ids) {
		ids = ids[:count]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ids)
}

func matchHandler(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	if strings.HasPrefix(matchID, "BR1_500") {
		riotStatus(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	name := fmt.Sprintf("match_%s.json", matchID)
	if _, err := fs.Stat(riotdata, fmt.Sprintf("riotdata/%s", name)); err != nil {
		riotStatus(w, http.StatusNotFound, "Data not found - match file not found")
		return
	}
	serveRiotFile(w, name)
}

func riotStatus(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"status":{"message":%q,"status_code":%d}}`, msg, code)
}

func serveRiotFile(w http.ResponseWriter, name string) {
	b, err := riotdata.ReadFile(fmt.Sprintf("riotdata/%s", name))
	if err != nil {
		log.Printf("error reading riotdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
