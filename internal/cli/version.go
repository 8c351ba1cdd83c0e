package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info, set via SetVersionInfo from main at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo stores build-time version metadata for the version command.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wscrape %s (commit %s, built %s)\n", version, commit, date)
	},
}
