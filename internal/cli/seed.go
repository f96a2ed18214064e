package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Wesley-SdS/modern-ecommerce/internal/db"
	"github.com/Wesley-SdS/modern-ecommerce/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, categories, products and banners",
	Long: `Load demo data. Without --file the built-in fixtures are used.

Examples:
  storefront seed
  storefront seed --file fixtures.yaml`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML fixtures file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixtures := seed.Default()
	if seedFile != "" {
		data, err := os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("read fixtures: %w", err)
		}
		if fixtures, err = seed.Parse(data); err != nil {
			return err
		}
	}

	_, gdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		return err
	}
	return seed.Run(cmd.Context(), gdb, fixtures)
}
