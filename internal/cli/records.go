package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rogue-resident/rogue-docs/internal/records"
)

func init() {
	recordsCmd := &cobra.Command{
		Use:   "records <category>",
		Short: "Dump the system records of a category",
		Args:  cobra.ExactArgs(1),
		Run:   runRecords,
	}
	recordsCmd.Flags().Bool("ids-only", false, "Only output record ids")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories with a backing data file",
		Args:  cobra.NoArgs,
		Run:   runCategories,
	}

	RootCmd.AddCommand(recordsCmd, categoriesCmd)
}

func runRecords(cmd *cobra.Command, args []string) {
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	systems, err := recordStore().GetAll(cmd.Context(), args[0])
	if err != nil {
		exitErr("records", err)
	}

	if idsOnly || textOutput() {
		for id, rec := range systems.All() {
			if idsOnly {
				fmt.Fprintln(cmd.OutOrStdout(), id)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, rec.Info.Name)
		}
		return
	}
	printJSON(systems)
}

func runCategories(cmd *cobra.Command, args []string) {
	cats, err := records.Categories(cfg.DataDir)
	if err != nil {
		exitErr("categories", err)
	}
	if textOutput() {
		for _, c := range cats {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return
	}
	if cats == nil {
		cats = []string{}
	}
	printJSON(cats)
}
