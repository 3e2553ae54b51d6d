package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/importer"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "load-csv",
	Short: "load-csv - bulk-load fixture CSV files into the database",
	Long: `load-csv imports one fixed-schema CSV file per entity type
(users, categories, genres, titles, genre-title links, reviews and
comments) and upserts rows by natural key, so repeated runs are safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		db, err := database.ConnectDB(cfg, logger)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		return importer.New(db, logger).Load(cmd.Context(), dataDir)
	},
}

func init() {
	rootCmd.Flags().StringVar(&dataDir, "dir", "static/data", "directory with the fixture CSV files")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
