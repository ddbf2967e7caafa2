package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the supported export formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if textOutput() {
				for _, name := range formatNames() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return
			}
			printJSON(formatNames())
		},
	}
	RootCmd.AddCommand(cmd)
}
