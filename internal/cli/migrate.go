package cli

import (
	"github.com/spf13/cobra"

	"github.com/Wesley-SdS/modern-ecommerce/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gdb, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		return db.Migrate(gdb)
	},
}
