package main

import (
	"fmt"
	"os"

	"app/internal/catalog"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/infra/api"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool

	cfg     config.Config
	querier catalog.Querier
)

var rootCmd = &cobra.Command{
	Use:   "browse",
	Short: "Storefront catalog browser",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env は任意
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// DATABASE_URL があればローカルカタログ、なければREST API
		if cfg.DatabaseURL != "" {
			gormDB, err := db.Connect(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			if err := gormDB.AutoMigrate(&model.Product{}); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			querier = infraRepo.NewCatalogGormRepository(gormDB)
			return nil
		}

		querier = api.NewClient(cfg.APIBaseURL, cfg.APIToken)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
