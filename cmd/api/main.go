// @title formflow API
// @version 1.0
// @description Multi-tenant form builder with versioned forms and submission analytics.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/api/routes"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/cache"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/config/db"
	"github.com/linskybing/formflow/internal/cron"
	"github.com/linskybing/formflow/internal/logger"
	"github.com/linskybing/formflow/internal/observability"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "formflow"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "formflow",
		Short:         "Versioned form builder API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedCommand())
	return root
}

// bootstrap loads configuration, the logger and the database shared by all
// commands.
func bootstrap() (*zap.Logger, error) {
	config.LoadConfig()

	log, err := logger.Init(config.LogLevel, config.LogFormat)
	if err != nil {
		return nil, err
	}
	if err := db.Init(log); err != nil {
		return nil, err
	}
	if err := db.Migrate(db.DB); err != nil {
		return nil, err
	}
	return log, nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := bootstrap()
			if err != nil {
				return err
			}
			log.Info("migration complete")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo tenants, users and forms into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := bootstrap()
			if err != nil {
				return err
			}
			svc := application.New(repository.NewRepositories(db.DB), application.Deps{Logger: log})
			seeded, err := svc.Seeder.Seed(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("seed finished", zap.Bool("written", seeded))
			return nil
		},
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, log)
		},
	}
}

func serve(ctx context.Context, log *zap.Logger) error {
	middleware.Init()

	shutdownTracing, err := observability.InitTracing(ctx, serviceName, config.OtelStdout)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps := application.Deps{
		Metrics: observability.NewMetrics(registry),
		Logger:  log,
	}

	if config.RedisAddr != "" {
		redisCache, err := cache.NewRedisStatsCache(config.RedisAddr, config.RedisPassword, config.RedisDB, config.StatsCacheTTL, log)
		if err != nil {
			return err
		}
		defer func() { _ = redisCache.Close() }()
		deps.StatsCache = redisCache
	}

	if config.MinioEndpoint != "" {
		store, err := storage.NewMinioStore(ctx, storage.MinioOptions{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			Bucket:    config.MinioBucket,
			UseSSL:    config.MinioUseSSL,
			PublicURL: config.MinioPublicURL,
		}, log)
		if err != nil {
			return err
		}
		deps.Store = store
	}

	svc := application.New(repository.NewRepositories(db.DB), deps)
	if config.SeedOnStart {
		if _, err := svc.Seeder.Seed(ctx); err != nil {
			return err
		}
	}

	cron.StartCleanupTask(ctx, svc.Audit, config.AuditRetentionDays, log.Named("cron"))

	if config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.NewEngine(log, serviceName)
	routes.RegisterRoutes(router, db.DB, svc, registry)

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting API server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
