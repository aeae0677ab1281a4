package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/mww/lolstats/config"
	"github.com/mww/lolstats/controller"
	"github.com/mww/lolstats/db"
	"github.com/mww/lolstats/logger"
	"github.com/mww/lolstats/riot"
	"github.com/mww/lolstats/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fatal("error loading .env file", err)
	}

	var cfg config.Config
	if err := config.ReadEnvConfig(&cfg); err != nil {
		fatal("invalid configuration", err)
	}
	logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stdout)

	clock := clock.New()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Without a database the service still starts, health reports degraded
	// and the player endpoints answer with a 500.
	var store db.DB
	s, err := db.New(ctx, cfg.Database, clock)
	if err != nil {
		slog.Error("cannot open database, running degraded", "error", err)
	} else {
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			fatal("error creating database schema", err)
		}
		defer s.Close()
		store = s
	}

	var riotClient riot.Client
	if cfg.RiotAPIKey != "" {
		riotClient, err = riot.New(cfg.RiotAPIKey, cfg.UpstreamTimeout, cfg.FetchWorkers)
		if err != nil {
			fatal("error creating riot client", err)
		}
	} else {
		slog.Warn("RIOT_API_KEY is not set, refreshing players is disabled")
	}

	ctrl, err := controller.New(clock, riotClient, store, controller.Options{
		DefaultServer: cfg.DefaultServer,
		DefaultCount:  cfg.DefaultMatchCount,
	})
	if err != nil {
		fatal("error creating a new controller", err)
	}

	server, err := web.NewServer(ctrl, web.Options{
		Port:           cfg.Port,
		DefaultServer:  cfg.DefaultServer,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		fatal("error creating new web server", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 15*time.Second); err != nil {
			slog.Error("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	slog.Info("server shutdown")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
