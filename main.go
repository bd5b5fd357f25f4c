package main

import (
	"os"

	"github.com/spf13/cobra"

	"chilume_backend/internals/logger"
)

var rootCmd = &cobra.Command{
	Use:           "chilume",
	Short:         "Registration backend for the Chilume college fest",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	logger.InitZap()
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.LogE("command failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}
