package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show export archive statistics",
		Args:  cobra.NoArgs,
		Run:   runStats,
	}
	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a, err := openArchive()
	if err != nil {
		exitErr("open archive", err)
	}
	defer a.Close()

	st, err := a.Stats(cmd.Context(), cfg.DB)
	if err != nil {
		exitErr("stats", err)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "db: %s (%d bytes)\n", st.DBPath, st.DBSizeBytes)
		fmt.Fprintf(cmd.OutOrStdout(), "exports: %d active, %d total\n", st.ActiveExports, st.TotalExports)
		for _, f := range st.Formats {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %d (~%d tokens)\n", f.Format, f.Count, f.ApproxTokens)
		}
		return
	}
	printJSON(st)
}
