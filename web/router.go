package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mww/lolstats/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(recoverer(render))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderError(render, w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		renderError(render, w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", rootHandler(render))
	r.Get("/health", healthHandler(ctrl, render))

	r.Route("/player", func(r chi.Router) {
		r.Get("/", getPlayerHandler(ctrl, render, opts.DefaultServer))
		r.Post("/", refreshPlayerHandler(ctrl, render))
		r.Get("/summary", playerSummaryHandler(ctrl, render))
	})

	return r
}

// recoverer turns a panic in a handler into the JSON 500 envelope.
func recoverer(render *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					slog.Error("panic serving request", "method", r.Method, "path", r.URL.Path,
						"request_id", middleware.GetReqID(r.Context()), "panic", rvr)
					renderError(render, w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
