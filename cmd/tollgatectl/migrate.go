package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/app"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE:  migrateUpCmdRun,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE:  migrateStatusCmdRun,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func migrateUpCmdRun(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	return printSchemaVersion(cmd, db)
}

func migrateStatusCmdRun(cmd *cobra.Command, args []string) error {
	db, err := sqlite.NewStore(app.DSN(rootArgs.databaseFile))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return printSchemaVersion(cmd, db)
}

func printSchemaVersion(cmd *cobra.Command, db *sqlite.Store) error {
	version, dirty, ok, err := db.MigrationVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	switch {
	case !ok:
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "schema: not initialized")
	case dirty:
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema: version %d (dirty)\n", version)
	default:
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema: version %d\n", version)
	}
	return err
}
