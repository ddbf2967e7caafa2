package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rogue-resident/rogue-docs/internal/export"
	"github.com/rogue-resident/rogue-docs/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render an export document",
		Long: "Render game-system records, and optionally the design documents, into one of the " +
			"export formats: " + strings.Join(formatNames(), ", ") + ".",
		Run: runExport,
	}

	cmd.Flags().StringP("format", "f", string(model.FormatClaudeContext), "Export format")
	cmd.Flags().StringP("systems", "s", "", "Categories to include (comma-separated, required)")
	cmd.Flags().BoolP("related", "r", false, "Include the Markdown design documents")
	cmd.Flags().Int("max-tokens", 0, "Token budget recorded with the export")
	cmd.Flags().String("out", "", "Write content to a file instead of stdout")
	cmd.Flags().Bool("no-archive", false, "Do not save the export to the archive")
	cmd.Flags().Bool("pretty", false, "Render Markdown for the terminal")

	RootCmd.AddCommand(cmd)
}

// exportOptions are the flag values of the export command.
type exportOptions struct {
	format    string
	systems   string
	related   bool
	maxTokens int
	out       string
	noArchive bool
	pretty    bool
}

func runExport(cmd *cobra.Command, args []string) {
	var opts exportOptions
	opts.format, _ = cmd.Flags().GetString("format")
	opts.systems, _ = cmd.Flags().GetString("systems")
	opts.related, _ = cmd.Flags().GetBool("related")
	opts.maxTokens, _ = cmd.Flags().GetInt("max-tokens")
	opts.out, _ = cmd.Flags().GetString("out")
	opts.noArchive, _ = cmd.Flags().GetBool("no-archive")
	opts.pretty, _ = cmd.Flags().GetBool("pretty")

	if err := doExport(cmd.Context(), cmd.OutOrStdout(), opts); err != nil {
		exitErr("export", err)
	}
}

func doExport(ctx context.Context, w io.Writer, opts exportOptions) error {
	systems := splitList(opts.systems)
	if len(systems) == 0 {
		return errors.New("--systems must name at least one category")
	}
	if opts.maxTokens < 0 {
		return fmt.Errorf("--max-tokens must not be negative, got %d", opts.maxTokens)
	}

	req := model.ExportRequest{
		Format:         model.Format(opts.format),
		IncludeSystems: systems,
		IncludeRelated: opts.related,
		MaxTokens:      opts.maxTokens,
	}

	gen := export.New(recordStore(), contentLoader(), zlog)
	res, err := gen.Generate(ctx, req)
	if err != nil {
		var ufe *export.UnknownFormatError
		if errors.As(err, &ufe) {
			return fmt.Errorf("%w (see 'rogue-docs formats')", err)
		}
		return err
	}

	var archiveID string
	if !opts.noArchive {
		archiveID = archiveExport(ctx, req, res)
	}

	if opts.out != "" {
		if err := os.WriteFile(opts.out, []byte(res.Content), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		zlog.Info("export written", zap.String("path", opts.out), zap.Int("bytes", len(res.Content)))
	}

	switch {
	case opts.pretty:
		rendered, err := renderMarkdown(res.Content)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		_, err = fmt.Fprint(w, rendered)
		return err
	case textOutput():
		if opts.out == "" {
			_, err := fmt.Fprint(w, res.Content)
			return err
		}
		return nil
	default:
		return writeJSON(w, exportOutput{ExportResult: res, ArchiveID: archiveID, Path: opts.out})
	}
}

type exportOutput struct {
	*model.ExportResult
	ArchiveID string `json:"archive_id,omitempty"`
	Path      string `json:"path,omitempty"`
}

// archiveExport saves res and returns its id. Archive failures are logged
// and do not fail the export.
func archiveExport(ctx context.Context, req model.ExportRequest, res *model.ExportResult) string {
	a, err := openArchive()
	if err != nil {
		zlog.Warn("archive unavailable", zap.String("db", cfg.DB), zap.Error(err))
		return ""
	}
	defer a.Close()

	rec, err := a.Save(ctx, req, res)
	if err != nil {
		zlog.Warn("archive save failed", zap.Error(err))
		return ""
	}
	zlog.Debug("export archived", zap.String("id", rec.ID))
	return rec.ID
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatNames() []string {
	names := make([]string, len(model.Formats))
	for i, f := range model.Formats {
		names[i] = string(f)
	}
	return names
}
