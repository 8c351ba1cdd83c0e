package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/wscrape/wscrape/internal/config"
	"github.com/wscrape/wscrape/internal/logger"
	"github.com/wscrape/wscrape/internal/scrape"
	"github.com/wscrape/wscrape/internal/store"
	"github.com/wscrape/wscrape/pkg/sshutil"
)

var captureSave bool

// captureCmd performs a single capture and prints the parsed table.
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Run the status command once and print the parsed sessions",
	Long: `Execute the status command on the remote host a single time and print
the parsed login sessions. With --save the batch is also persisted.

Examples:
  wscrape capture
  wscrape capture --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return captureCommand(captureSave)
	},
}

func init() {
	captureCmd.Flags().BoolVar(&captureSave, "save", false, "also persist the captured batch")
}

func captureCommand(save bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var entries []store.LoginEntry
	if save {
		scraper, err := scrape.Connect(cfg, scrape.WithLogger(logger.NewEnvLogger("[wscrape]")))
		if err != nil {
			return err
		}
		defer scraper.Dispose()

		entries, err = scraper.CaptureOnce()
		if err != nil {
			return err
		}
	} else {
		// Display-only: no store connection needed.
		remoteCreds, err := config.LoadCredentials(cfg.Remote.Credentials)
		if err != nil {
			return err
		}
		client, err := sshutil.Dial(cfg.Remote.Host, remoteCreds, 10*time.Second)
		if err != nil {
			return err
		}
		defer client.Close()

		raw, err := scrape.Execute(client)
		if err != nil {
			return err
		}
		entries = scrape.Parse(raw)
	}

	printEntries(entries)
	return nil
}

func printEntries(entries []store.LoginEntry) {
	if len(entries) == 0 {
		fmt.Println("No sessions captured")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tUSER\tTTY\tFROM\tLOGIN@\tIDLE\tJCPU\tPCPU\tWHAT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.RecordTime, e.User, e.TTY, e.From, e.LoginAt, e.Idle, e.JCPU, e.PCPU, e.What)
	}
	w.Flush()
}
