package main

import (
	"fmt"

	"github.com/aretw0/conduit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of conduit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("conduit version %s\n", conduit.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
