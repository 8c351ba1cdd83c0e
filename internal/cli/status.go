package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wscrape/wscrape/internal/config"
	"github.com/wscrape/wscrape/internal/logger"
	"github.com/wscrape/wscrape/internal/store"
)

var statusLimit int

// statusCmd reports what has been captured so far, without touching SSH.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show persisted capture totals and the most recent sessions",
	Long: `Open the store and print the total number of persisted sessions plus
the most recent entries. Does not connect to the remote host.

Examples:
  wscrape status
  wscrape status --limit 25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(statusLimit)
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 10, "number of recent entries to show")
}

func statusCommand(limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storeCreds, err := config.LoadCredentials(cfg.Store.Credentials)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.DSN, storeCreds, logger.NewEnvLogger("[store]"))
	if err != nil {
		return err
	}
	defer st.Close()

	repo := store.NewLoginRepository(st.DB(), logger.NewEnvLogger("[store]"))

	count, err := repo.Count()
	if err != nil {
		return err
	}
	fmt.Printf("%d sessions persisted\n", count)

	entries, err := repo.Recent(limit)
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}
