package scrape

import (
	"fmt"
	"strings"

	"github.com/wscrape/wscrape/internal/errors"
	"github.com/wscrape/wscrape/pkg/sshutil"
)

// Execute runs the status command over an established session and returns
// its raw text output. The command channel it opens is scoped to this one
// invocation; failures mean the session is no longer usable for this cycle
// and are recoverable at the loop level.
func Execute(client sshutil.SSHClient) (string, error) {
	stdout, stderr, code, err := client.Exec(statusCommand)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", errors.New(errors.ErrExec,
			fmt.Sprintf("Status command exited with %d: %s", code, strings.TrimSpace(string(stderr))),
			"Check the command is available on the remote host")
	}
	return string(stdout), nil
}
