package cmd

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"stockfolio/config"
	"stockfolio/database"
	"stockfolio/routes"
)

type serveCmd struct {
	migrate bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API server" }
func (*serveCmd) Usage() string {
	return `stockfolio serve [-migrate]

  Starts the REST API on SERVER_PORT and serves until SIGINT or SIGTERM,
  then drains in-flight requests for up to 10 seconds.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.migrate, "migrate", true, "Migrate the schema before serving.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, db, status := bootstrap()
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeDB(log, db)

	if c.migrate {
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Error("Failed to migrate database")
			return subcommands.ExitFailure
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := config.InitRedis(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Failed to connect to Redis")
		return subcommands.ExitFailure
	}
	if rdb == nil {
		log.Warn("REDIS_ADDR not set: refresh tokens, rate limiting and quote caching are disabled")
	} else {
		defer rdb.Close()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router, err := routes.SetupRouter(routes.Deps{Config: cfg, DB: db, Redis: rdb, Log: log, Registry: reg})
	if err != nil {
		log.WithError(err).Error("Failed to set up router")
		return subcommands.ExitFailure
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server starting to listen on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("HTTP server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server forced to shut down")
		return subcommands.ExitFailure
	}
	log.Info("Server exited gracefully")
	return subcommands.ExitSuccess
}
