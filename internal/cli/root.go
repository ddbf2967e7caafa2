// Package cli implements the rogue-docs CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rogue-resident/rogue-docs/internal/archive"
	"github.com/rogue-resident/rogue-docs/internal/config"
	"github.com/rogue-resident/rogue-docs/internal/content"
	"github.com/rogue-resident/rogue-docs/internal/logger"
	"github.com/rogue-resident/rogue-docs/internal/records"
)

var (
	configFile string
	outputFlag string

	cfg  *config.Config
	zlog = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "rogue-docs",
	Short: "Browse and export Rogue Resident design documentation",
	Long: "Reads game-system records (cards, stars, mentors, bosses, interfaces) and Markdown design " +
		"documents, and renders them into exports for AI assistants, developers and team reviews.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zlog.Sync()
	},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default: ./rogue-docs.yaml or ~/.rogue-docs/rogue-docs.yaml)")
	pf.StringVarP(&outputFlag, "output", "o", "json", "Output format: json or text")
	pf.String("data-dir", "", "Directory with <category>.json|yaml record files (default: data)")
	pf.String("content-dir", "", "Directory with Markdown design documents (default: content)")
	pf.StringP("db", "d", "", "Export archive path (default: $ROGUE_DOCS_DB or ~/.rogue-docs/exports.db)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: console or json")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	l, err := logger.New(c.Log.Level, c.Log.Format)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	cfg, zlog = c, l
	zlog.Debug("config loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.String("content_dir", cfg.ContentDir),
		zap.String("db", cfg.DB))
	return nil
}

func openArchive() (*archive.SQLiteStore, error) {
	return archive.NewSQLiteStore(cfg.DB)
}

func recordStore() *records.FileStore {
	return records.NewFileStore(cfg.DataDir, zlog)
}

func contentLoader() *content.Loader {
	return content.NewLoader(cfg.ContentDir, zlog)
}

func printJSON(v interface{}) {
	_ = writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func textOutput() bool {
	return outputFlag == "text"
}

func exitErr(msg string, err error) {
	zlog.Debug(msg, zap.Error(err))
	_ = zlog.Sync()
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
