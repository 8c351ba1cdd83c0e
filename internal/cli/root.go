// Package cli wires the wscrape commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wscrape/wscrape/internal/config"
	"github.com/wscrape/wscrape/pkg/sshutil"
)

// Persistent flags
var (
	configFlag   string
	insecureFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "wscrape",
	Short: "Capture remote login sessions into a relational store",
	Long: `wscrape periodically connects to a remote host over SSH, runs the
status command that lists logged-in users, parses its tabular output,
and persists every session row into a relational store.

It is a long-lived poller: transient failures of the remote connection
or the output format never stop the loop.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if insecureFlag {
			sshutil.StrictHostKeyChecking = false
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"path to config file (default: .wscrape.yaml, then ~/.config/wscrape/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&insecureFlag, "insecure-host-key", false,
		"skip SSH host key verification (for CI/automation)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig finds and loads the config file honoring the --config flag.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}
