// Package cli is the storefront command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	config "github.com/Wesley-SdS/modern-ecommerce/configs"
	"github.com/Wesley-SdS/modern-ecommerce/internal/db"
	"github.com/Wesley-SdS/modern-ecommerce/internal/logger"
)

var (
	configPath string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "storefront",
		Short: "Storefront and back-office API",
		Long: `storefront serves the catalog, cart, checkout and admin API.

Configuration comes from an optional YAML file and the environment
(POSTGRES_HOST, SESSION_SECRET, STRIPE_SECRET_KEY, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

func Execute(version string) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// bootstrap loads the config, sets up logging and opens the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database connected")
	return cfg, gdb, nil
}
