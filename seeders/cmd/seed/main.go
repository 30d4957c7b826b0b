package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"event-rental/internal/repositories"
	"event-rental/internal/services"
	"event-rental/migrations"
	"event-rental/pkg/config"
	"event-rental/pkg/database/postgresql"
	applogger "event-rental/pkg/logger"
	"event-rental/seeders"
)

type env struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
	seeder *seeders.Seeder
}

func main() {
	e := &env{}
	if err := rootCommand(e).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Migrate and fill the event-rental database",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.cfg = config.New()
			e.logger = applogger.NewLogger(e.cfg.Log)

			pool, err := postgresql.ConnectDB(cmd.Context(), e.cfg.Postgres.DSN, e.logger)
			if err != nil {
				return err
			}
			e.pool = pool
			if err := migrations.Up(cmd.Context(), pool, e.logger); err != nil {
				return err
			}

			e.seeder = seeders.New(
				repositories.NewEmployeeRepository(pool, e.logger),
				services.NewTaxonomyResolver(repositories.NewTaxonomyRepository(pool, e.logger), nil, e.logger),
				repositories.NewTxManager(pool),
				e.logger,
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.pool != nil {
				e.pool.Close()
			}
			_ = e.logger.Sync()
		},
	}

	var password string
	employees := &cobra.Command{
		Use:   "employees",
		Short: "Create one employee per role and the superuser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.seeder.SeedEmployees(cmd.Context(), seedPassword(password, e.logger))
		},
	}
	employees.Flags().StringVar(&password, "password", "", "password for every seeded account (default $SEED_PASSWORD)")

	inventory := &cobra.Command{
		Use:   "inventory",
		Short: "Add common equipment types and brands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.seeder.SeedTaxonomies(cmd.Context())
		},
	}

	all := &cobra.Command{
		Use:   "all",
		Short: "Run every seeder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.seeder.SeedEmployees(cmd.Context(), seedPassword(password, e.logger)); err != nil {
				return fmt.Errorf("employees: %w", err)
			}
			if err := e.seeder.SeedTaxonomies(cmd.Context()); err != nil {
				return fmt.Errorf("inventory: %w", err)
			}
			return nil
		},
	}
	all.Flags().StringVar(&password, "password", "", "password for every seeded account (default $SEED_PASSWORD)")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Only apply pending migrations",
		RunE:  func(cmd *cobra.Command, args []string) error { return nil },
	}

	root.AddCommand(employees, inventory, all, migrate)
	return root
}

func seedPassword(flagValue string, logger *zap.Logger) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("SEED_PASSWORD"); env != "" {
		return env
	}
	logger.Warn("no seed password given, using the default")
	return "changeme"
}
