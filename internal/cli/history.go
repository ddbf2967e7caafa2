package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rogue-resident/rogue-docs/internal/archive"
	"github.com/rogue-resident/rogue-docs/internal/model"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse archived exports",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived exports, newest first",
		Args:  cobra.NoArgs,
		Run:   runHistoryList,
	}
	listCmd.Flags().String("export-format", "", "Filter by export format")
	listCmd.Flags().StringP("system", "s", "", "Filter by included category")
	listCmd.Flags().IntP("limit", "l", 20, "Max results")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an archived export",
		Args:  cobra.ExactArgs(1),
		Run:   runHistoryGet,
	}
	getCmd.Flags().Bool("pretty", false, "Render Markdown for the terminal")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over archived exports",
		Args:  cobra.MinimumNArgs(1),
		Run:   runHistorySearch,
	}
	searchCmd.Flags().String("export-format", "", "Filter by export format")
	searchCmd.Flags().IntP("limit", "l", 10, "Max results")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an archived export",
		Args:  cobra.ExactArgs(1),
		Run:   runHistoryRm,
	}
	rmCmd.Flags().Bool("hard", false, "Permanent delete (irreversible)")

	historyCmd.AddCommand(listCmd, getCmd, searchCmd, rmCmd)
	RootCmd.AddCommand(historyCmd)
}

// historyEntry is an archived export without its content.
type historyEntry struct {
	ID           string       `json:"id"`
	Format       model.Format `json:"format"`
	Systems      []string     `json:"systems"`
	ApproxTokens int          `json:"approx_tokens"`
	GeneratedAt  string       `json:"generated_at"`
}

func entries(recs []model.ExportRecord) []historyEntry {
	out := make([]historyEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, historyEntry{
			ID:           r.ID,
			Format:       r.Format,
			Systems:      r.Systems,
			ApproxTokens: r.ApproxTokens,
			GeneratedAt:  r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out
}

// parseFormatFilter validates an optional --export-format value.
func parseFormatFilter(s string) (model.Format, error) {
	if s == "" {
		return "", nil
	}
	return model.ParseFormat(s)
}

func printEntries(cmd *cobra.Command, recs []model.ExportRecord) {
	list := entries(recs)
	if textOutput() {
		for _, e := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
				e.ID, e.Format, strings.Join(e.Systems, ","), e.GeneratedAt)
		}
		return
	}
	printJSON(list)
}

func runHistoryList(cmd *cobra.Command, args []string) {
	formatStr, _ := cmd.Flags().GetString("export-format")
	system, _ := cmd.Flags().GetString("system")
	limit, _ := cmd.Flags().GetInt("limit")

	format, err := parseFormatFilter(formatStr)
	if err != nil {
		exitErr("history list", err)
	}

	a, err := openArchive()
	if err != nil {
		exitErr("open archive", err)
	}
	defer a.Close()

	recs, err := a.List(cmd.Context(), archive.ListParams{
		Format: format,
		System: system,
		Limit:  limit,
	})
	if err != nil {
		exitErr("history list", err)
	}
	printEntries(cmd, recs)
}

func runHistoryGet(cmd *cobra.Command, args []string) {
	pretty, _ := cmd.Flags().GetBool("pretty")

	a, err := openArchive()
	if err != nil {
		exitErr("open archive", err)
	}
	defer a.Close()

	rec, err := a.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("history get", err)
	}

	switch {
	case pretty:
		rendered, err := renderMarkdown(rec.Content)
		if err != nil {
			exitErr("render", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
	case textOutput():
		fmt.Fprint(cmd.OutOrStdout(), rec.Content)
	default:
		printJSON(rec)
	}
}

func runHistorySearch(cmd *cobra.Command, args []string) {
	formatStr, _ := cmd.Flags().GetString("export-format")
	limit, _ := cmd.Flags().GetInt("limit")

	format, err := parseFormatFilter(formatStr)
	if err != nil {
		exitErr("history search", err)
	}

	a, err := openArchive()
	if err != nil {
		exitErr("open archive", err)
	}
	defer a.Close()

	recs, err := a.Search(cmd.Context(), archive.SearchParams{
		Query:  strings.Join(args, " "),
		Format: format,
		Limit:  limit,
	})
	if err != nil {
		exitErr("history search", err)
	}
	printEntries(cmd, recs)
}

func runHistoryRm(cmd *cobra.Command, args []string) {
	hard, _ := cmd.Flags().GetBool("hard")

	a, err := openArchive()
	if err != nil {
		exitErr("open archive", err)
	}
	defer a.Close()

	if err := a.Rm(cmd.Context(), archive.RmParams{ID: args[0], Hard: hard}); err != nil {
		exitErr("history rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"hard":%t}`+"\n", args[0], hard)
}
