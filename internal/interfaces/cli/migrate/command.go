// Package migrate implements the database migration commands.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyforge/internal/infrastructure/config"
	"keyforge/internal/infrastructure/database"
	"keyforge/internal/infrastructure/migration"
	"keyforge/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run schema migrations or inspect which tables the schema manages.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the managed model set",
		RunE:  runStatus,
	}
}

func initEnv() (logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return logger.NewLogger(), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running migrations", "environment", env)

	if err := migration.Run(database.Get(), log); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	db := database.Get()
	migrator := db.Migrator()

	fmt.Printf("\nMigration Status (%s):\n", env)
	for _, model := range migration.AutoMigrateModels() {
		stmt := db.Model(model).Statement
		if err := stmt.Parse(model); err != nil {
			log.Warnw("failed to parse model", "error", err)
			continue
		}
		state := "missing"
		if migrator.HasTable(model) {
			state = "present"
		}
		fmt.Printf("  %-20s %s\n", stmt.Schema.Table, state)
	}

	return nil
}
