package main

import (
	"context"
	"log/slog"
	"os"

	"agora/config"
	"agora/internal/delivery"
	"agora/internal/delivery/http"
	"agora/internal/errors"
	"agora/internal/infra/auth"
	"agora/internal/infra/auth/oauth"
	logs "agora/internal/infra/log"
	"agora/internal/infra/metrics"
	"agora/internal/infra/persistence/migrations"
	"agora/internal/infra/persistence/postgres"
	"agora/internal/infra/pubsub"
	"agora/internal/infra/sanitizer"
	"agora/internal/infra/storage"
	"agora/internal/usecase/impl"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the session reconciler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}

			if cfg.Migrations.AutoMigrate {
				if err := migrateUp(cfg); err != nil {
					return err
				}
			}

			app := fx.New(
				fx.Supply(cfg),
				injectInfra(),
				injectRepo(),
				injectService(),
				injectUsecase(),
				injectDelivery(),
				fx.Invoke(startServer),
			)
			app.Run()

			return app.Err()
		},
	}
}

func migrateUp(cfg *config.Config) error {
	if cfg.Migrations.DatabaseURL == "" {
		return errors.New("migrations.autoMigrate requires migrations.databaseUrl")
	}

	m, err := migrations.NewMigrator(cfg.Migrations.DatabaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	return migrations.Up(m)
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			logs.New,
			context.Background,
			postgres.New,
			storage.New,
		),
		pubsub.Module,
		metrics.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		postgres.NewProfileRepository,
		postgres.NewIdentityRepository,
		postgres.NewRefreshTokenRepository,
		postgres.NewTransactionManager,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewBcryptHasher,
		auth.NewJWTService,
		oauth.NewRegistry,
		auth.NewLocalIdentityProvider,
		sanitizer.New,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewSessionReconciler,
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		http.Module,
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
