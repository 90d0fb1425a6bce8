// Package cmd implements the knight command-line interpreter.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "knight",
	Short: "knight runs Knight programming language programs",
	Long: `knight is an interpreter for the Knight programming language:
a minimal, prefix-notation language designed to be easy to implement
and hard to write large programs in.`,
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic information to stderr")
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "knight:", err)
	os.Exit(1)
}
