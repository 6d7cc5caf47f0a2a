package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"incidentTrust/internal/api"
	"incidentTrust/internal/api/handlers/http/system"
	"incidentTrust/internal/config"
	"incidentTrust/internal/metrics"
	"incidentTrust/internal/redis"
	"incidentTrust/internal/service"
	"incidentTrust/internal/storage/memory"
	"incidentTrust/internal/storage/mongo"
	"incidentTrust/internal/storage/postgres"
	"incidentTrust/internal/workers"
	"incidentTrust/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Mongo      *mongo.Mongo
	Redis      *redis.Redis
	Auditor    *service.Auditor
	Dispatcher *workers.AuditDispatcher
	Registry   *prometheus.Registry

	workersWG sync.WaitGroup
}

// stores is the pair of ports the selected driver provides.
type stores struct {
	incidents service.IncidentStore
	guests    service.GuestStore
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{logger: logger}
	checks := map[string]system.Check{}

	st, err := c.initStore(ctx, cfg, checks)
	if err != nil {
		c.ShutdownAll()
		return nil, err
	}

	if cfg.UsesRedis() {
		logger.Info("Initializing Redis")
		c.Redis, err = redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		client := c.Redis.Client
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	if cfg.Store.GuestStore == config.GuestStoreRedis {
		st.guests = redis.NewGuestStore(c.Redis.Client, logger)
		logger.Info("Guest sessions stored in redis")
	}

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(c.Registry)

	var hook service.AuditHook = service.NewLogAuditHook(logger)
	if cfg.Audit.Hook == config.AuditRedis {
		queue := redis.NewAuditQueue(c.Redis.Client, cfg.Audit.QueueKey)
		hook = queue
		metrics.RegisterQueueDepth(c.Registry, "audit_queue_depth", "Audit events waiting in the redis queue", queue.Len)
		if cfg.Audit.SinkURL != "" {
			c.Dispatcher = workers.NewAuditDispatcher(logger, workers.AuditDispatcherConfig{
				URL:      cfg.Audit.SinkURL,
				Timeout:  cfg.Audit.Timeout,
				Retries:  cfg.Audit.Retries,
				PoolSize: cfg.Audit.Workers,
			}, queue, m)
		}
	}
	c.Auditor = service.NewAuditor(hook, logger, m)

	opts := service.Options{
		Logger:                logger,
		Policy:                &cfg.Scoring,
		StoreTimeout:          cfg.Store.Timeout,
		DuplicateRadiusMeters: cfg.Store.DuplicateRadiusMeters,
		GuestMaxActions:       cfg.Guest.MaxActions,
		GuestTTL:              cfg.Guest.TTL,
		Metrics:               m,
		Auditor:               c.Auditor,
	}

	srv, err := service.New(st.incidents, st.guests, opts)
	if err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	c.HttpServer = api.NewServer(ctx, cfg, logger, srv, checks, c.Registry)
	logger.Info("Initialized server")

	return c, nil
}

func (c *Components) initStore(ctx context.Context, cfg *config.Config, checks map[string]system.Check) (stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		c.logger.Info("Initializing Postgres")
		pg, err := postgres.NewPostgres(ctx, cfg, c.logger)
		if err != nil {
			c.logger.Error("Failed to init postgres", slog.Any("error", err))
			return stores{}, fmt.Errorf("failed to init postgres: %w", err)
		}
		c.Postgres = pg
		checks["postgres"] = pg.Pool.Ping
		return stores{incidents: pg.Incidents, guests: pg.Guests}, nil

	case config.DriverMongo:
		c.logger.Info("Initializing MongoDB")
		mg, err := mongo.NewMongo(ctx, cfg, c.logger)
		if err != nil {
			c.logger.Error("Failed to init mongo", slog.Any("error", err))
			return stores{}, fmt.Errorf("failed to init mongo: %w", err)
		}
		c.Mongo = mg
		checks["mongo"] = func(ctx context.Context) error { return mg.Client.Ping(ctx, nil) }
		return stores{incidents: mg.Incidents, guests: mg.Guests}, nil

	case config.DriverMemory:
		c.logger.Warn("Using in-memory store; state is lost on restart")
		st := memory.New()
		return stores{incidents: st, guests: st}, nil
	}
	return stores{}, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// StartWorkers launches background workers bound to ctx.
func (c *Components) StartWorkers(ctx context.Context) {
	if c.Dispatcher == nil {
		return
	}
	c.workersWG.Add(1)
	go func() {
		defer c.workersWG.Done()
		c.Dispatcher.Run(ctx)
	}()
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

// ShutdownAll waits for workers and pending audit events, then closes
// connections. Call it after the contexts passed to the workers are done.
func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	c.workersWG.Wait()
	c.Auditor.Wait()

	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.Mongo.Close(ctx); err != nil {
			c.logger.Error("Mongo close failed", slog.String("err", err.Error()))
		}
		cancel()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
