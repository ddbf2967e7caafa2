package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

func init() {
	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Browse the Markdown design documents",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List design documents",
		Args:  cobra.NoArgs,
		Run:   runDocsList,
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one design document",
		Args:  cobra.ExactArgs(1),
		Run:   runDocsShow,
	}
	showCmd.Flags().Bool("pretty", false, "Render Markdown for the terminal")

	docsCmd.AddCommand(listCmd, showCmd)
	RootCmd.AddCommand(docsCmd)
}

// docSummary is a document without its body.
type docSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Version     string `json:"version,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
}

func runDocsList(cmd *cobra.Command, args []string) {
	docs := contentLoader().Load(cmd.Context())

	summaries := make([]docSummary, 0, docs.Len())
	for doc := range docs.Values() {
		summaries = append(summaries, summarize(doc))
	}

	if textOutput() {
		for _, s := range summaries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, s.Title)
		}
		return
	}
	printJSON(summaries)
}

func runDocsShow(cmd *cobra.Command, args []string) {
	pretty, _ := cmd.Flags().GetBool("pretty")

	doc, err := contentLoader().Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("docs show", err)
	}

	switch {
	case pretty:
		rendered, err := renderMarkdown(doc.Body)
		if err != nil {
			exitErr("render", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
	case textOutput():
		fmt.Fprint(cmd.OutOrStdout(), doc.Body)
	default:
		printJSON(doc)
	}
}

func summarize(doc model.ContentDocument) docSummary {
	return docSummary{
		ID:          doc.ID,
		Title:       doc.Title,
		Version:     doc.Version,
		LastUpdated: doc.LastUpdated,
	}
}
