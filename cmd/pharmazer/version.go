package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pharmazer version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pharmazer", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
