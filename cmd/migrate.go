package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewradar/review-api/internal/database"
	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply the run-history database schema.

This runs GORM auto migration for the query run and stored review
tables at the configured database path.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.QueryRun{}, &models.StoredReview{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied at %s\n", cfg.Database.Path)
	return nil
}
