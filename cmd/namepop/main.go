package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/namepop"
	"github.com/jward/namepop/internal/ingest"
	"github.com/jward/namepop/internal/logging"
	"github.com/jward/namepop/internal/server"
)

var flagDB string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "namepop",
	Short:         "Historical name-popularity statistics",
	Long:          "Namepop loads raw yearly birth-count files into a SQLite database and answers popularity queries over them, either programmatically or via an HTTP API.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "data/names.sqlite", "database path")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(serveCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load <dir>",
	Short: "Load raw yearly count files into the database",
	Long:  "Reads every yobNNNN.txt file in the given directory, computes per-gender popularity ranks, and commits each year to the database in a single transaction.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	start := time.Now()

	logger, err := logging.New()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	db, err := namepop.Open(flagDB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ingest.LoadDirectory(db.Store(), logger, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Loaded %s in %s\n", args[0], time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Database: %s\n", flagDB)
	return nil
}

var (
	flagAddr   string
	flagStatic string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the query API over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().StringVar(&flagStatic, "static", "static", "static assets directory (empty to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := logging.New()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	db, err := namepop.Open(flagDB)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(db.Queries(), logger, flagStatic)
	return srv.Run(ctx, flagAddr)
}
