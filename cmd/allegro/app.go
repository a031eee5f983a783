package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/allegro-music/allegro/internal/core/ports"
	"github.com/allegro-music/allegro/internal/core/service"
	"github.com/allegro-music/allegro/internal/infrastructure/config"
	"github.com/allegro-music/allegro/internal/infrastructure/db/mongo"
	"github.com/allegro-music/allegro/internal/infrastructure/db/postgres"
	"github.com/allegro-music/allegro/internal/infrastructure/db/redis"
	"github.com/allegro-music/allegro/internal/infrastructure/queue"
	"github.com/allegro-music/allegro/pkg/logger"
)

// app holds the connections and services of one process. The Redis and
// MongoDB fields stay nil unless configured and requested.
type app struct {
	cfg *config.Config
	log zerolog.Logger

	db    *postgres.DB
	redis *goredis.Client
	mongo *mongodriver.Client
	audit *mongodriver.Database

	dispatcher *queue.Dispatcher
	auth       *service.AuthService
}

// openApp loads the configuration, initialises logging and connects to
// Postgres. With full set it also connects the optional throttle and audit
// stores.
func openApp(ctx context.Context, full bool) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	a := &app{cfg: cfg, log: log}

	a.db, err = postgres.Connect(ctx, postgres.Config{
		URL:            cfg.Postgres.URL,
		MaxConns:       cfg.Postgres.MaxConns,
		AcquireTimeout: cfg.Postgres.AcquireTimeout,
	}, logger.Component("postgres"))
	if err != nil {
		return nil, err
	}
	if cfg.Postgres.EnsureSchema {
		if err := a.db.EnsureSchema(ctx); err != nil {
			a.close()
			return nil, err
		}
	}

	var opts []service.AuthOption
	if full && cfg.Redis.Addr != "" {
		a.redis, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		opts = append(opts, service.WithLoginLimiter(
			redis.NewLoginLimiter(a.redis, cfg.Redis.MaxFailures, cfg.Redis.Lockout),
		))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	}

	if full && cfg.Mongo.URI != "" {
		a.mongo, a.audit, err = mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		repo := mongo.NewAuditRepository(a.audit)
		if err := repo.EnsureIndexes(ctx); err != nil {
			a.close()
			return nil, err
		}
		a.dispatcher = queue.NewDispatcher(cfg.Audit.Workers, repo, logger.Component("audit"))
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	}

	a.auth = service.NewAuthService(
		postgres.NewUserRepository(a.db),
		postgres.NewAdminRepository(a.db),
		cfg.SessionTTL,
		logger.Component("auth"),
		opts...,
	)
	return a, nil
}

func (a *app) catalog() *service.CatalogService {
	var publisher ports.AuditPublisher
	if a.dispatcher != nil {
		publisher = a.dispatcher
	}
	return service.NewCatalogService(a.auth, service.CatalogRepositories{
		Contributors: postgres.NewContributorRepository(a.db),
		Pieces:       postgres.NewPieceRepository(a.db),
		Releases:     postgres.NewReleaseRepository(a.db),
		Recordings:   postgres.NewRecordingRepository(a.db),
	}, publisher, logger.Component("catalog"))
}

// close releases every connection that was opened. The dispatcher must
// already be stopped.
func (a *app) close() {
	if a.mongo != nil {
		if err := mongo.Disconnect(a.mongo); err != nil {
			a.log.Error().Err(err).Msg("closing mongodb")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error().Err(err).Msg("closing redis")
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

func requireNoArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return nil
}
