package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "referee",
	Short: "Heuristic reference finder for Wikidata-style items",
}

func execute() error {
	rootCmd.PersistentFlags().String("config", "", "path to referee.yaml")
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
