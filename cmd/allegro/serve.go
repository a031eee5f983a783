package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/allegro-music/allegro/internal/api"
	httpserver "github.com/allegro-music/allegro/internal/infrastructure/http"
	"github.com/allegro-music/allegro/internal/infrastructure/http/handlers"
	"github.com/allegro-music/allegro/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on $PORT and serve until SIGINT or SIGTERM.

Login throttling is enabled when REDIS_ADDR is set, the audit trail when
MONGO_URI is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := requireNoArgs(args); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	readiness := handlers.NewReadinessHandler().
		With("postgres", a.db.Ping)
	if a.redis != nil {
		readiness.With("redis", handlers.RedisCheck(a.redis))
	}
	if a.audit != nil {
		readiness.With("mongodb", handlers.MongoCheck(a.audit))
	}

	if a.dispatcher != nil {
		// Workers drain on their own context so queued events are written
		// after the server stops accepting requests.
		a.dispatcher.Start(context.WithoutCancel(ctx))
		defer a.dispatcher.Stop()
	}

	e := api.NewRouter(api.Deps{
		Auth:      a.auth,
		Catalog:   a.catalog(),
		Readiness: readiness,
		Logger:    logger.Component("http"),
	})

	return httpserver.NewServer(e, a.cfg.Port, logger.Component("http")).Run(ctx)
}
