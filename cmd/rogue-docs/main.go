package main

import (
	"os"

	"github.com/rogue-resident/rogue-docs/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
