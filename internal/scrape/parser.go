package scrape

import (
	"regexp"
	"strings"
	"time"

	"github.com/wscrape/wscrape/internal/store"
)

// statusCommand is the fixed remote command whose output lists the
// currently logged-in users and their session info.
const statusCommand = "w"

var (
	// headerTimeRe finds the HH:MM:SS current time in the summary line.
	headerTimeRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)

	// rowRe matches one session row: seven whitespace-delimited columns
	// followed by the WHAT remainder, which may contain embedded spaces.
	rowRe = regexp.MustCompile(`^\s*(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S.*?)\s*$`)
)

// Parse extracts login entries from the raw status command output,
// stamping them with the current wall-clock date. See ParseAt.
func Parse(raw string) []store.LoginEntry {
	return ParseAt(raw, time.Now())
}

// ParseAt is Parse with an injected clock, so output is deterministic
// under test. The record time combines now's date with the time-of-day
// from the output's summary line; if the summary carries no HH:MM:SS,
// entries get the date alone rather than failing the parse. The first
// two lines (summary and column headers) are always skipped, and any
// later line that doesn't match the eight-column shape is silently
// dropped without affecting adjacent rows.
func ParseAt(raw string, now time.Time) []store.LoginEntry {
	lines := strings.Split(raw, "\n")

	recordTime := now.Format("2006-01-02")
	if tod := headerTimeRe.FindString(lines[0]); tod != "" {
		recordTime += " " + tod
	}

	if len(lines) <= 2 {
		return nil
	}

	var entries []store.LoginEntry
	for _, line := range lines[2:] {
		m := rowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, store.LoginEntry{
			User:       m[1],
			RecordTime: recordTime,
			TTY:        m[2],
			From:       m[3],
			LoginAt:    m[4],
			Idle:       m[5],
			JCPU:       m[6],
			PCPU:       m[7],
			What:       m[8],
		})
	}
	return entries
}
