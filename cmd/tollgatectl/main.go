package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/app"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

var (
	VERSION = "0.0.0-dev.0"
)

var rootCmd = &cobra.Command{
	Use:               "tollgatectl",
	Version:           VERSION,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	Short:             "Operator tooling for a tollgate database",
	Long: `tollgatectl works directly against the tollgate SQLite database.
It reads the same TOLLGATE_* environment variables (and .env file) as the
service; flags take precedence.`,
}

type rootFlags struct {
	timeout      time.Duration
	databaseFile string
	pepperFile   string
	logLevel     string
}

var rootArgs = rootFlags{
	timeout: time.Minute,
}

func init() {
	cfg := app.LoadConfig()
	rootArgs.databaseFile = cfg.DatabaseFile
	rootArgs.pepperFile = cfg.PepperFile

	rootCmd.PersistentFlags().DurationVar(&rootArgs.timeout, "timeout", rootArgs.timeout,
		"The length of time to wait before giving up on the current operation.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.databaseFile, "database", rootArgs.databaseFile,
		"Path to the SQLite database file.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.pepperFile, "pepper-file", rootArgs.pepperFile,
		"Path to the password pepper file.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.logLevel, "log-level", "warn",
		"Log level (debug, info, warn, error).")
	rootCmd.SetOut(os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrf("✗ %v\n", err)
		os.Exit(1)
	}
}

// commandContext returns a context carrying a logger that writes to the
// command's error stream, bounded by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	logger := slog.New(slogx.NewHandler(slogx.Config{
		Level:  rootArgs.logLevel,
		Format: "text",
		Output: cmd.ErrOrStderr(),
	}))
	ctx := slogx.WithContext(context.Background(), logger)
	return context.WithTimeout(ctx, rootArgs.timeout)
}

// openStore opens the database with migrations applied.
func openStore() (*sqlite.Store, error) {
	return app.OpenStore(rootArgs.databaseFile)
}

func printTable(writer io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
