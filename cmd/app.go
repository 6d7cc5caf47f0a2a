package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"incidentTrust/internal/components"
	"incidentTrust/internal/config"
	"incidentTrust/internal/storage/mongo"
	"incidentTrust/internal/storage/postgres"
)

// NewRootCommand builds the incident-trust CLI. Without a subcommand it
// serves the HTTP API.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "incident-trust",
		Short:         "Incident lifecycle and trust engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(cmd.Context())
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and indexes of the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return Migrate(ctx)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Maximum time for the migration")

	return cmd
}

func Serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := components.SetupLogger(cfg.Env)
	if cfg.APIKey == "" {
		logger.Warn("API_KEY is empty; admin routes rely on role headers only")
	}

	appCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	comps, err := components.InitComponents(appCtx, cfg, logger)
	if err != nil {
		logger.Error("could not init components", "err", err)
		return err
	}

	runCtx, stop := context.WithCancel(appCtx)
	defer stop()

	comps.StartWorkers(runCtx)

	var (
		wg        sync.WaitGroup
		serverErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if serverErr = comps.HttpServer.Run(runCtx); serverErr != nil {
			logger.Error("http server failed", "err", serverErr)
			stop()
		}
		logger.Info("http server stopped")
	}()

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quitChan:
		logger.Info("captured signal, initiating shutdown", "signal", sig.String())
	case <-runCtx.Done():
	}
	stop()

	wg.Wait()

	logger.Info("shutting down the services...")
	comps.ShutdownAll()
	logger.Info("gracefully shutting down the servers")

	return serverErr
}

func Migrate(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := components.SetupLogger(cfg.Env)

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pg, err := postgres.NewPostgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer pg.Close()
		return postgres.Migrate(ctx, pg.Pool, logger)

	case config.DriverMongo:
		mg, err := mongo.NewMongo(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer mg.Close(context.Background())
		return mongo.EnsureIndexes(ctx, mg.Client.Database(cfg.Mongo.Database))

	default:
		logger.Info("nothing to migrate", "driver", cfg.Store.Driver)
		return nil
	}
}
