package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixlaga/atmodeller"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of atmodeller",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("atmodeller version %s\n", strings.TrimSpace(atmodeller.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
