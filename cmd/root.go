// Package cmd implements the frakt-worker CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "frakt-worker",
	Short: "A fractal-computation worker for the distributed imaging pipeline",
	Long: `frakt-worker connects to a dispatcher, computes the fractal fragment it is
assigned, and reports the result back — repeating until told to stop.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (optional; defaults and env vars apply when omitted)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
}

func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
