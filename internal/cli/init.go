package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wscrape/wscrape/internal/config"
	"github.com/wscrape/wscrape/internal/errors"
	"gopkg.in/yaml.v3"
)

var initForce bool

// initCmd scaffolds a config file and credential templates.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .wscrape.yaml configuration",
	Long: `Initialize a new wscrape configuration in the current directory.

Creates .wscrape.yaml with sensible defaults plus two credential file
templates (store.json and remote.json) that you fill in by hand.

Examples:
  wscrape init
  wscrape init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
}

const credentialTemplate = `{
  "user": "CHANGE_ME",
  "pass": "CHANGE_ME"
}
`

func initCommand(force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory", "")
	}

	configPath := filepath.Join(cwd, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.ErrConfig,
			config.ConfigFileName+" already exists",
			"Use --force to overwrite it")
	}

	cfg := config.Config{
		Store: config.StoreConfig{
			DSN:         "logins.db",
			Credentials: "store.json",
		},
		Remote: config.RemoteConfig{
			Host:        "example-host",
			Credentials: "remote.json",
		},
		Capture: config.CaptureConfig{
			IntervalMS: config.DefaultIntervalMS,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot render the sample config", "")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write "+config.ConfigFileName,
			"Check directory permissions")
	}
	fmt.Println("Created", config.ConfigFileName)

	for _, name := range []string{"store.json", "remote.json"} {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Println("Kept existing", name)
			continue
		}
		// Credentials are secrets: owner-only permissions.
		if err := os.WriteFile(path, []byte(credentialTemplate), 0600); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot write "+name, "Check directory permissions")
		}
		fmt.Println("Created", name)
	}

	fmt.Println("\nEdit the credential files, then start capturing with: wscrape run")
	return nil
}
