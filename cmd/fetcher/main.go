package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCMD = &cobra.Command{
	Use:   "fetcher",
	Short: "Search LinkedIn Jobs and extract the result cards",
	Long: `fetcher logs into LinkedIn, submits a job search on whichever search
layout the page serves, scrolls the results and prints title, company and
location for each card.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runSearch,
}

func init() {
	rootCMD.PersistentFlags().StringP("config", "c", "", "path to config.yaml (default configs/config.yaml)")
}

func main() {
	if err := rootCMD.Execute(); err != nil {
		os.Exit(1)
	}
}
