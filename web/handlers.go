package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mww/lolstats/controller"
	"github.com/mww/lolstats/model"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

type refreshRequest struct {
	Name   string `json:"name"`
	Tag    string `json:"tag"`
	Server string `json:"server"`
	Count  *int   `json:"count"`
}

type refreshResponse struct {
	Message string                     `json:"message"`
	Matches []model.MatchParticipation `json:"matches"`
}

func rootHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"servers": model.ServerCodes(),
		}
		render.HTML(w, http.StatusOK, "index", data)
	}
}

func healthHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := ctrl.Status()
		status := "ok"
		if !s.StoreAvailable {
			status = "degraded"
		}
		render.JSON(w, http.StatusOK, healthResponse{
			Status:           status,
			APIKeyConfigured: s.APIKeyConfigured,
		})
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render, defaultServer string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		id := riotID(q.Get("name"), q.Get("tag"))
		if !id.Valid() {
			renderError(render, w, http.StatusBadRequest, "Missing name or tag parameter")
			return
		}

		// Stored matches are keyed by player only, the server is accepted but
		// does not narrow the result.
		server := q.Get("server")
		if server == "" {
			server = defaultServer
		}

		matches, err := ctrl.GetPlayerMatches(r.Context(), id)
		if err != nil {
			slog.Error("error reading player matches", "player", id.String(), "server", server, "error", err)
			renderControllerError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

func refreshPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(render, w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		id := riotID(req.Name, req.Tag)
		if !id.Valid() {
			renderError(render, w, http.StatusBadRequest, "Missing name or tag field")
			return
		}

		count := 0
		if req.Count != nil {
			count = *req.Count
			if count < 1 || count > controller.MaxMatchCount {
				renderError(render, w, http.StatusBadRequest, controller.ErrInvalidCount.Error())
				return
			}
		}

		matches, err := ctrl.RefreshPlayer(r.Context(), id, strings.TrimSpace(req.Server), count)
		if err != nil {
			renderControllerError(render, w, err)
			return
		}

		render.JSON(w, http.StatusCreated, refreshResponse{
			Message: "Data updated",
			Matches: matches,
		})
	}
}

func playerSummaryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		id := riotID(q.Get("name"), q.Get("tag"))
		if !id.Valid() {
			renderError(render, w, http.StatusBadRequest, "Missing name or tag parameter")
			return
		}

		s, err := ctrl.GetPlayerSummary(r.Context(), id)
		if err != nil {
			slog.Error("error building player summary", "player", id.String(), "error", err)
			renderControllerError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, s)
	}
}

func riotID(name, tag string) model.RiotID {
	return model.RiotID{
		GameName: strings.TrimSpace(name),
		TagLine:  strings.TrimSpace(tag),
	}
}

// renderControllerError maps the controller errors onto status codes. Anything
// unexpected is a 500 and its details stay in the log.
func renderControllerError(render *render.Render, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, controller.ErrInvalidPlayer):
		renderError(render, w, http.StatusBadRequest, "Missing name or tag")
	case errors.Is(err, controller.ErrInvalidCount):
		renderError(render, w, http.StatusBadRequest, controller.ErrInvalidCount.Error())
	case errors.Is(err, controller.ErrNoData):
		renderError(render, w, http.StatusNotFound, "No data found for player")
	case errors.Is(err, controller.ErrAPIKeyMissing):
		renderError(render, w, http.StatusInternalServerError, "Riot API key not configured")
	case errors.Is(err, controller.ErrStoreUnavailable):
		renderError(render, w, http.StatusInternalServerError, "Database unavailable")
	default:
		slog.Error("unexpected controller error", "error", err)
		renderError(render, w, http.StatusInternalServerError, "Internal server error")
	}
}

func renderError(render *render.Render, w http.ResponseWriter, status int, msg string) {
	render.JSON(w, status, errorResponse{Error: msg})
}
