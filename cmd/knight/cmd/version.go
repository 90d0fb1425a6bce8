package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version, GitCommit, and BuildDate are overridden at build time via
// -ldflags "-X ...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the knight version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("knight %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
