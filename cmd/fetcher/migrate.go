package main

import (
	"errors"
	"log"

	"go-linkedin-fetcher/internal/config"
	"go-linkedin-fetcher/internal/database"

	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create the search_runs and job_records tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}

		repo, err := database.ConnectDB(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.Migrate(cmd.Context()); err != nil {
			return err
		}
		log.Println("✅ Schema is up to date.")
		return nil
	},
}

func init() {
	rootCMD.AddCommand(migrateCMD)
}
