package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rogue-resident/rogue-docs/internal/records"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate [category...]",
		Short: "Check star and card cross-references",
		Long: "Check that every star and card named in cross_references exists. " +
			"With no arguments every category with a data file is checked.",
		Run: runValidate,
	}

	RootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	categories := args
	if len(categories) == 0 {
		var err error
		if categories, err = records.Categories(cfg.DataDir); err != nil {
			exitErr("validate", err)
		}
	}

	problems, err := records.Validate(cmd.Context(), recordStore(), categories)
	if err != nil {
		exitErr("validate", err)
	}

	if textOutput() {
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s: %s\n", p.Category, p.System, p.Message)
		}
		if len(problems) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
		}
	} else {
		if problems == nil {
			problems = []records.Problem{}
		}
		printJSON(map[string]any{
			"ok":         len(problems) == 0,
			"categories": categories,
			"problems":   problems,
		})
	}

	if len(problems) > 0 {
		_ = zlog.Sync()
		os.Exit(1)
	}
}
