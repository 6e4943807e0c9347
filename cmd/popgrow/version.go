package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"popgrow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of popgrow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("popgrow version %s\n", strings.TrimSpace(popgrow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
