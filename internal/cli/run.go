package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wscrape/wscrape/internal/logger"
	"github.com/wscrape/wscrape/internal/scrape"
	"github.com/wscrape/wscrape/internal/store"
)

var runOnce bool

// runCmd starts the capture loop and keeps it running until interrupted.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the capture loop",
	Long: `Connect to the remote host and the store, then capture the status
report every interval until interrupted.

Examples:
  wscrape run
  wscrape run --once
  wscrape run --config /etc/wscrape.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(runOnce)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runOnce, "once", false, "perform a single capture cycle and exit")
}

func runCommand(once bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewEnvLogger("[wscrape]")
	observer := scrape.ObserverFunc(func(entries []store.LoginEntry) {
		log.Info("captured %d sessions", len(entries))
	})

	scraper, err := scrape.Connect(cfg, scrape.WithObserver(observer), scrape.WithLogger(log))
	if err != nil {
		return err
	}
	defer scraper.Dispose()

	if once {
		entries, err := scraper.CaptureOnce()
		if err != nil {
			return err
		}
		fmt.Printf("Captured %d sessions\n", len(entries))
		return nil
	}

	scraper.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("Shutting down...")
	scraper.Stop()
	return nil
}
