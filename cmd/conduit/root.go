package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "conduit",
	Short: "Conduit is a plug-pipeline engine for serverless HTTP apps",
	Long:  `Conduit composes ordered plug pipelines over request/response conns, with effectful steps and dynamic routing.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "conduit.yaml", "Path to the configuration file")
}
